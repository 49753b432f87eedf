// Package names collects a name for every numbered face.
//
// Names come from three places, applied in this order by the pipeline: a
// names CSV (Merge), an optional terminal prompt, and an interactive form.
// Interactive providers are tried in capability order with First: when a
// provider cannot run here (no display, no GUI build) it returns an error
// matching ErrUnavailable and the next one takes over.
package names

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/group-photo-labeler/internal/box"
	"github.com/ironsheep/group-photo-labeler/internal/render"
)

// ErrUnavailable reports that a provider cannot run in this environment.
var ErrUnavailable = errors.New("name provider unavailable")

// Options is what a provider may show and let the user adjust.
type Options struct {
	// Image is the source photo, used for face thumbnails. May be nil.
	Image image.Image

	Style        render.Style
	AppendLegend bool
}

// Result is the outcome of a name entry round.
type Result struct {
	// Names maps ID to the entered name. An empty string clears the name.
	Names map[int]string

	// Style and AppendLegend are the render settings after the round.
	// Providers without settings return the values from Options.
	Style        render.Style
	AppendLegend bool
}

// Provider asks for names.
type Provider interface {
	Names(ctx context.Context, boxes []box.Box, opts Options) (Result, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, boxes []box.Box, opts Options) (Result, error)

// Names calls f.
func (f ProviderFunc) Names(ctx context.Context, boxes []box.Box, opts Options) (Result, error) {
	return f(ctx, boxes, opts)
}

type chain []Provider

// First returns a provider that tries each of providers in order and uses
// the first one that is available. Nil providers are skipped.
func First(providers ...Provider) Provider {
	var c chain
	for _, p := range providers {
		if p != nil {
			c = append(c, p)
		}
	}
	return c
}

func (c chain) Names(ctx context.Context, boxes []box.Box, opts Options) (Result, error) {
	var errs []error
	for _, p := range c {
		res, err := p.Names(ctx, boxes, opts)
		if err == nil {
			return res, nil
		}
		if !errors.Is(err, ErrUnavailable) {
			return Result{}, err
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return Result{}, fmt.Errorf("%w: no providers configured", ErrUnavailable)
	}
	return Result{}, errors.Join(errs...)
}

// Merge copies names from table onto boxes by ID. Only non-empty names
// override; a box whose ID is missing from table keeps its name.
func Merge(boxes []box.Box, table map[int]string) []box.Box {
	out := append([]box.Box(nil), boxes...)
	for i := range out {
		if name := table[out[i].ID]; name != "" {
			out[i].Name = name
		}
	}
	return out
}

// Apply sets names entered by a provider. Every ID present in entered is
// applied, including empty names.
func Apply(boxes []box.Box, entered map[int]string) []box.Box {
	out := append([]box.Box(nil), boxes...)
	for i := range out {
		if name, ok := entered[out[i].ID]; ok {
			out[i].Name = name
		}
	}
	return out
}
