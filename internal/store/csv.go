// Package store reads and writes the flat files that outlive a labeling run:
// the boxes CSV, the names CSV and the plain-text legend.
//
// Boxes CSV: header id,name,x,y,w,h, one row per face in ID order. The name
// column is optional on read. Geometry may be written with decimals by other
// tools; values are truncated toward zero.
//
// Names CSV: needs id and name columns, extra columns are ignored.
//
// Reading is lenient: a leading UTF-8 byte order mark is dropped, and rows
// whose numbers cannot be parsed are skipped and reported instead of failing
// the whole file. A missing required column is a *SchemaError.
package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/ironsheep/group-photo-labeler/internal/box"
	"github.com/ironsheep/group-photo-labeler/internal/legend"
)

const bom = "\ufeff"

// BoxesHeader is the header row written to boxes CSV files.
var BoxesHeader = []string{"id", "name", "x", "y", "w", "h"}

// BoxTable is the result of reading a boxes CSV.
type BoxTable struct {
	// Boxes sorted by ID. Rows with equal IDs keep their file order.
	Boxes []box.Box

	// Skipped lists rows that could not be parsed.
	Skipped []*RowError
}

// NameTable is the result of reading a names CSV.
type NameTable struct {
	// Names maps ID to trimmed name. A later row wins over an earlier one.
	Names map[int]string

	Skipped []*RowError
}

// WriteBoxes writes boxes in the given order. Lines end in CRLF.
func WriteBoxes(w io.Writer, boxes []box.Box) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(BoxesHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, b := range boxes {
		row := []string{
			strconv.Itoa(b.ID),
			b.Name,
			strconv.Itoa(b.X),
			strconv.Itoa(b.Y),
			strconv.Itoa(b.W),
			strconv.Itoa(b.H),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row for id %d: %w", b.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteLegendText writes one "{id}: {name}" line per box.
func WriteLegendText(w io.Writer, boxes []box.Box) error {
	for _, e := range legend.Entries(boxes) {
		if _, err := io.WriteString(w, e.Text()+"\n"); err != nil {
			return fmt.Errorf("failed to write legend text: %w", err)
		}
	}
	return nil
}

// ReadBoxes parses a boxes CSV. Rows with a width or height that is not
// positive are skipped.
func ReadBoxes(r io.Reader) (BoxTable, error) {
	var table BoxTable
	err := readTable(r, "boxes", []string{"id", "x", "y", "w", "h"}, func(line int, get func(string) (string, bool)) *RowError {
		id, rerr := intField(line, "id", get)
		if rerr != nil {
			return rerr
		}
		var geom [4]int
		for i, col := range []string{"x", "y", "w", "h"} {
			v, rerr := truncField(line, col, get)
			if rerr != nil {
				return rerr
			}
			geom[i] = v
		}
		if geom[2] <= 0 {
			return &RowError{Line: line, Column: "w", Err: errNotPositive}
		}
		if geom[3] <= 0 {
			return &RowError{Line: line, Column: "h", Err: errNotPositive}
		}
		name, _ := get("name")
		table.Boxes = append(table.Boxes, box.Box{
			X: geom[0], Y: geom[1], W: geom[2], H: geom[3],
			ID:   id,
			Name: strings.TrimSpace(name),
		})
		return nil
	}, &table.Skipped)
	if err != nil {
		return BoxTable{}, err
	}
	sort.SliceStable(table.Boxes, func(i, j int) bool {
		return table.Boxes[i].ID < table.Boxes[j].ID
	})
	return table, nil
}

// ReadNames parses a names CSV.
func ReadNames(r io.Reader) (NameTable, error) {
	table := NameTable{Names: map[int]string{}}
	err := readTable(r, "names", []string{"id", "name"}, func(line int, get func(string) (string, bool)) *RowError {
		id, rerr := intField(line, "id", get)
		if rerr != nil {
			return rerr
		}
		name, _ := get("name")
		table.Names[id] = strings.TrimSpace(name)
		return nil
	}, &table.Skipped)
	if err != nil {
		return NameTable{}, err
	}
	return table, nil
}

// readTable validates the header and hands each data row to fn. Rows that
// fn rejects, or that the CSV reader cannot parse, are appended to skipped.
func readTable(r io.Reader, table string, required []string, fn func(line int, get func(string) (string, bool)) *RowError, skipped *[]*RowError) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	// Hand-edited names may carry quotes in unquoted fields.
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &SchemaError{Table: table, Missing: required}
	}
	if err != nil {
		return fmt.Errorf("failed to read %s csv header: %w", table, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], bom)
	}
	columns := make(map[string]int, len(header))
	for i, h := range header {
		columns[strings.TrimSpace(h)] = i
	}
	var missing []string
	for _, col := range required {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Table: table, Missing: missing}
	}

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				*skipped = append(*skipped, &RowError{Line: perr.StartLine, Err: perr.Err})
				continue
			}
			return fmt.Errorf("failed to read %s csv: %w", table, err)
		}
		line, _ := cr.FieldPos(0)
		get := func(col string) (string, bool) {
			i, ok := columns[col]
			if !ok || i >= len(record) {
				return "", false
			}
			return record[i], true
		}
		if rerr := fn(line, get); rerr != nil {
			*skipped = append(*skipped, rerr)
		}
	}
}

var (
	errMissingField = errors.New("missing field")
	errNotPositive  = errors.New("must be positive")
)

func intField(line int, col string, get func(string) (string, bool)) (int, *RowError) {
	s, ok := get(col)
	if !ok {
		return 0, &RowError{Line: line, Column: col, Err: errMissingField}
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &RowError{Line: line, Column: col, Err: err}
	}
	return v, nil
}

// truncField accepts integers and decimals, truncating toward zero.
func truncField(line int, col string, get func(string) (string, bool)) (int, *RowError) {
	s, ok := get(col)
	if !ok {
		return 0, &RowError{Line: line, Column: col, Err: errMissingField}
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &RowError{Line: line, Column: col, Err: err}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0, &RowError{Line: line, Column: col, Err: fmt.Errorf("value %q out of range", s)}
	}
	return int(f), nil
}
