package svgpath

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/npillmayer/blobgen"
	"github.com/npillmayer/blobgen/shape"
	tdstrconv "github.com/tdewolff/parse/v2/strconv"
)

var (
	// ErrSyntax indicates malformed path data.
	ErrSyntax = errors.New("bad path data")
	// ErrNotABlob indicates path data which does not describe a closed ring
	// of cubic curves.
	ErrNotABlob = errors.New("path is not a closed cubic ring")
)

// Parse reads path data consisting of absolute M, C and Z commands, which is
// what Serialize produces. Numbers may be separated by whitespace and/or
// commas; a command letter may be followed by several coordinate sets.
func Parse(d string) ([]Command, error) {
	b := []byte(d)
	var cmds []Command
	var cmd byte
	i := skipSeparators(b, 0)
	for i < len(b) {
		if isCommand(b[i]) {
			cmd = b[i]
			i = skipSeparators(b, i+1)
			if cmd == 'Z' || cmd == 'z' {
				cmds = append(cmds, Close{})
				continue
			}
		} else if cmd == 0 || cmd == 'Z' || cmd == 'z' {
			return nil, fmt.Errorf("%w: unexpected %q at position %d", ErrSyntax, b[i], i+1)
		}
		switch cmd {
		case 'M':
			var p blobgen.Pair
			var err error
			if p, i, err = readPair(b, i); err != nil {
				return nil, err
			}
			cmds = append(cmds, MoveTo{Point: p})
			cmd = 'C' // implicit repetitions are not line-tos in our dialect
		case 'C':
			var pts [3]blobgen.Pair
			for k := range pts {
				var err error
				if pts[k], i, err = readPair(b, i); err != nil {
					return nil, err
				}
			}
			cmds = append(cmds, CubicTo{Control1: pts[0], Control2: pts[1], Point: pts[2]})
		default:
			return nil, fmt.Errorf("%w: unsupported command '%c' at position %d", ErrSyntax, cmd, i)
		}
	}
	return cmds, nil
}

// Ring converts a command list back into an anchor ring with fresh ids.
// The list must have the shape produced by Commands.
func Ring(cmds []Command) (shape.Ring, error) {
	if len(cmds) < 2 {
		return nil, fmt.Errorf("%w: %d commands", ErrNotABlob, len(cmds))
	}
	start, ok := cmds[0].(MoveTo)
	if !ok {
		return nil, fmt.Errorf("%w: must start with a move-to", ErrNotABlob)
	}
	if _, ok := cmds[len(cmds)-1].(Close); !ok {
		return nil, fmt.Errorf("%w: must end with a close-path", ErrNotABlob)
	}
	curves := cmds[1 : len(cmds)-1]
	n := len(curves)
	pos := make([]blobgen.Pair, n)
	in := make([]blobgen.Pair, n)
	out := make([]blobgen.Pair, n)
	for k, c := range curves {
		cubic, ok := c.(CubicTo)
		if !ok {
			return nil, fmt.Errorf("%w: command %d is not a curve", ErrNotABlob, k+1)
		}
		i := (k + 1) % n // the last curve arrives at anchor 0
		pos[i], in[i], out[i] = cubic.Point, cubic.Control2, cubic.Control1
	}
	if n > 0 && !pos[0].Equal(start.Point) {
		return nil, fmt.Errorf("%w: closing curve ends at %s, not at %s", ErrNotABlob, pos[0], start.Point)
	}
	tracer().Debugf("read ring of %d anchors", n)
	return shape.Assemble(pos, in, out)
}

// ParseRing is Parse followed by Ring.
func ParseRing(d string) (shape.Ring, error) {
	cmds, err := Parse(d)
	if err != nil {
		return nil, err
	}
	return Ring(cmds)
}

func readPair(b []byte, i int) (blobgen.Pair, int, error) {
	x, i, err := readNumber(b, i)
	if err != nil {
		return 0, i, err
	}
	y, i, err := readNumber(b, i)
	if err != nil {
		return 0, i, err
	}
	return blobgen.P(x, y), i, nil
}

func readNumber(b []byte, i int) (float64, int, error) {
	if i >= len(b) {
		return 0, i, fmt.Errorf("%w: number expected at end of data", ErrSyntax)
	}
	_, n := tdstrconv.ParseFloat(b[i:]) // token length only, its value may be off by one ulp
	if n == 0 {
		return 0, i, fmt.Errorf("%w: number expected at position %d", ErrSyntax, i+1)
	}
	f, err := strconv.ParseFloat(string(b[i:i+n]), 64)
	if err != nil {
		return 0, i, fmt.Errorf("%w: bad number %q at position %d", ErrSyntax, b[i:i+n], i+1)
	}
	return f, skipSeparators(b, i+n), nil
}

func skipSeparators(b []byte, i int) int {
	for i < len(b) {
		switch b[i] {
		case ' ', '\t', '\n', '\r', '\f', ',':
			i++
		default:
			return i
		}
	}
	return i
}

func isCommand(c byte) bool {
	if c == 'e' || c == 'E' { // exponent
		return false
	}
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
