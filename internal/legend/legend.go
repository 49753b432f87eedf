// Package legend composes the "ID: Name" strip appended below a labeled
// photo.
//
// # Layout
//
// The strip is white and StripHeight pixels tall. A title sits in the top
// margin; entries follow in columns of ColWidth pixels separated by ColGap.
// Entries fill the first column top to bottom before moving to the next, and
// every column holds ceil(n/cols) entries except possibly the last.
//
// Entries that would fall below the strip are dropped, and so is every entry
// after them. A long group therefore gets a partial legend rather than an
// error; the full list is always in the TXT and CSV output.
package legend

import (
	"image"
	"image/color"
	"strconv"

	"github.com/ironsheep/group-photo-labeler/internal/box"
	"github.com/ironsheep/group-photo-labeler/internal/imaging"
)

// Placeholder stands in for an empty name.
const Placeholder = "—"

// DefaultTitle is the heading drawn at the top of the strip.
const DefaultTitle = "Legende (ID: Name)"

// Entry is one legend line.
type Entry struct {
	ID   int
	Name string
}

// Text formats the entry as "{id}: {name}", using Placeholder for an empty
// name.
func (e Entry) Text() string {
	name := e.Name
	if name == "" {
		name = Placeholder
	}
	return strconv.Itoa(e.ID) + ": " + name
}

// Entries converts numbered boxes to legend entries, keeping their order.
func Entries(boxes []box.Box) []Entry {
	out := make([]Entry, len(boxes))
	for i, b := range boxes {
		out[i] = Entry{ID: b.ID, Name: b.Name}
	}
	return out
}

// Geometry configures the strip layout. It is passed by value.
type Geometry struct {
	StripHeight int
	Margin      int
	LineHeight  int
	ColGap      int
	ColWidth    int
	TitleScale  float64
	FontScale   float64
	Thickness   int
	Title       string
}

// DefaultGeometry returns the standard strip layout.
func DefaultGeometry() Geometry {
	return Geometry{
		StripHeight: 260,
		Margin:      16,
		LineHeight:  34,
		ColGap:      48,
		ColWidth:    420,
		TitleScale:  1.1,
		FontScale:   0.85,
		Thickness:   2,
		Title:       DefaultTitle,
	}
}

// Columns returns how many columns fit into a strip width pixels wide.
// The result is at least 1.
func Columns(width int, g Geometry) int {
	step := g.ColWidth + g.ColGap
	if step <= 0 {
		return 1
	}
	return max(1, floorDiv(width-2*g.Margin+g.ColGap, step))
}

// Slot is the baseline position of one entry.
type Slot struct {
	Index int
	X, Y  int
}

// Layout places n entries on a strip width pixels wide. The result holds
// only the entries that fit, in entry order.
func Layout(n, width int, g Geometry) []Slot {
	if n <= 0 {
		return nil
	}
	cols := Columns(width, g)
	perCol := (n + cols - 1) / cols
	slots := make([]Slot, 0, n)
	for i := 0; i < n; i++ {
		c, r := i/perCol, i%perCol
		if c >= cols {
			break
		}
		x := g.Margin + c*(g.ColWidth+g.ColGap)
		y := g.Margin + (r+2)*g.LineHeight
		if y+g.Margin > g.StripHeight {
			break
		}
		slots = append(slots, Slot{Index: i, X: x, Y: y})
	}
	return slots
}

// TitleBaseline returns the y coordinate of the title baseline.
func TitleBaseline(g Geometry) int {
	return g.Margin + int(float64(g.LineHeight)*0.7)
}

// Compose renders entries onto a new white strip width pixels wide.
func Compose(entries []Entry, width int, g Geometry) (*image.NRGBA, error) {
	strip := imaging.NewBlankCanvas(width, g.StripHeight, color.White)

	font, err := imaging.NewFont(g.FontScale, g.Thickness)
	if err != nil {
		return nil, err
	}
	for _, s := range Layout(len(entries), width, g) {
		strip.DrawText(font, s.X, s.Y, entries[s.Index].Text(), color.Black)
	}

	title := g.Title
	if title == "" {
		title = DefaultTitle
	}
	titleFont, err := imaging.NewFont(g.TitleScale, g.Thickness)
	if err != nil {
		return nil, err
	}
	strip.DrawText(titleFont, g.Margin, TitleBaseline(g), title, color.Black)
	return strip.Image(), nil
}

// Append stacks strip below img. A strip of a different width is first
// resized horizontally to match.
func Append(img, strip image.Image) (*image.NRGBA, error) {
	w := img.Bounds().Dx()
	if strip.Bounds().Dx() != w {
		strip = imaging.ResizeWidth(strip, w)
	}
	return imaging.StackVertical(img, strip)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
