package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ironsheep/group-photo-labeler/internal/box"
)

// Output file suffixes, appended to the output stem.
const (
	SuffixCSV       = "_legende.csv"
	SuffixText      = "_legende.txt"
	SuffixAnnotated = "_nummeriert.jpg"
	SuffixLegend    = "_mit_legende.jpg"
)

// OutputPaths are the files produced for one photo.
type OutputPaths struct {
	CSV       string
	Text      string
	Annotated string
	Legend    string
}

// Paths derives the output file names from stem, a path without extension
// such as "out/team".
func Paths(stem string) OutputPaths {
	return OutputPaths{
		CSV:       stem + SuffixCSV,
		Text:      stem + SuffixText,
		Annotated: stem + SuffixAnnotated,
		Legend:    stem + SuffixLegend,
	}
}

// Stem returns the file name of path without directory and extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}

// DefaultBoxesCSV is the boxes CSV expected next to the input image when
// none is given explicitly.
func DefaultBoxesCSV(imagePath string) string {
	return filepath.Join(filepath.Dir(imagePath), Stem(imagePath)+SuffixCSV)
}

// CheckInput returns an error wrapping ErrInputNotFound when path does not
// exist.
func CheckInput(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return fmt.Errorf("failed to access %s: %w", path, err)
	}
	return nil
}

// LoadBoxes reads the boxes CSV at path.
func LoadBoxes(path string) (BoxTable, error) {
	if err := CheckInput(path); err != nil {
		return BoxTable{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return BoxTable{}, fmt.Errorf("failed to open boxes csv: %w", err)
	}
	defer f.Close()
	t, err := ReadBoxes(f)
	if err != nil {
		return BoxTable{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// LoadNames reads the names CSV at path.
func LoadNames(path string) (NameTable, error) {
	if err := CheckInput(path); err != nil {
		return NameTable{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return NameTable{}, fmt.Errorf("failed to open names csv: %w", err)
	}
	defer f.Close()
	t, err := ReadNames(f)
	if err != nil {
		return NameTable{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// SaveTables writes the boxes CSV and the legend text for boxes.
func SaveTables(p OutputPaths, boxes []box.Box) error {
	if err := WriteFileAtomic(p.CSV, func(w io.Writer) error { return WriteBoxes(w, boxes) }); err != nil {
		return err
	}
	return WriteFileAtomic(p.Text, func(w io.Writer) error { return WriteLegendText(w, boxes) })
}

// WriteFileAtomic writes path through a temporary file in the same
// directory and renames it into place once write has succeeded. On any
// error the temporary file is removed and path is left untouched.
func WriteFileAtomic(path string, write func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to set mode on %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	return nil
}
