package names

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ironsheep/group-photo-labeler/internal/box"
)

// Terminal prompts for one name per line. End of input counts as an empty
// answer for every remaining face.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer

	// pending is the read still in flight after a canceled prompt.
	pending chan line
}

// NewTerminal reads answers from in and writes prompts to out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

type line struct {
	text string
	err  error
}

// Names asks for every box in order. Answers are trimmed.
func (t *Terminal) Names(ctx context.Context, boxes []box.Box, opts Options) (Result, error) {
	res := Result{
		Names:        make(map[int]string, len(boxes)),
		Style:        opts.Style,
		AppendLegend: opts.AppendLegend,
	}
	fmt.Fprintln(t.out, "\nBitte Namen zu den Personen eingeben (Enter = unbekannt).")

	eof := false
	for _, b := range boxes {
		if eof {
			res.Names[b.ID] = ""
			continue
		}
		fmt.Fprintf(t.out, "Name für ID %d (%s): ", b.ID, b)
		l, err := t.readLine(ctx)
		if err != nil {
			return Result{}, err
		}
		if l.err != nil {
			eof = true
			fmt.Fprintln(t.out)
		}
		res.Names[b.ID] = strings.TrimSpace(l.text)
	}
	return res, nil
}

// readLine waits for one line or for ctx to end. A read error ends input
// and is reported in line.err together with any partial text.
//
// A read cannot be interrupted, so on cancellation its goroutine stays
// blocked on in until a line arrives. The next call picks up that line
// instead of starting a second reader.
func (t *Terminal) readLine(ctx context.Context) (line, error) {
	if t.pending == nil {
		ch := make(chan line, 1)
		go func() {
			s, err := t.in.ReadString('\n')
			ch <- line{text: s, err: err}
		}()
		t.pending = ch
	}
	select {
	case <-ctx.Done():
		return line{}, ctx.Err()
	case l := <-t.pending:
		t.pending = nil
		return l, nil
	}
}
