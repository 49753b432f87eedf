//go:build !cgo

package ui

import (
	"context"
	"image"

	"go.uber.org/zap"

	"github.com/ironsheep/group-photo-labeler/internal/box"
	"github.com/ironsheep/group-photo-labeler/internal/names"
	"github.com/ironsheep/group-photo-labeler/internal/render"
	"github.com/ironsheep/group-photo-labeler/internal/session"
)

// Frontend is unavailable without cgo.
type Frontend struct{}

// NewFrontend always reports ErrEditorUnavailable in builds without cgo.
func NewFrontend(*zap.Logger) (*Frontend, error) {
	return nil, ErrEditorUnavailable
}

func (f *Frontend) Run(work func() error) error { return work() }

func (f *Frontend) Edit(context.Context, image.Image, *session.Session, render.Style) error {
	return ErrEditorUnavailable
}

func (f *Frontend) Names(context.Context, []box.Box, names.Options) (names.Result, error) {
	return names.Result{}, ErrEditorUnavailable
}

func (f *Frontend) Show(context.Context, image.Image) error {
	return ErrEditorUnavailable
}
