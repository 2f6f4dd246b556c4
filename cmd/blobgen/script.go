package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/blobgen"
	"github.com/npillmayer/blobgen/editor"
	"github.com/npillmayer/blobgen/shape"
)

// An edit script has one event per line; '#' starts a comment. Anchors are
// addressed by their index in the current ring.
//
//	down <index> anchor|in|out
//	move <x> <y>
//	up
//	complexity <n>
//	smoothness <s>
//	octaves <n>
//	fill <color>
//	hobby | tangent
//	regenerate
func runScript(s *editor.Session, path string) error {
	var in io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	return replay(s, in)
}

func replay(s *editor.Session, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if err := step(s, fields); err != nil {
			if errors.Is(err, editor.ErrUnknownAnchor) {
				continue // stale anchors are ignored, as in the UI
			}
			return fmt.Errorf("line %d: %w", lineno, err)
		}
	}
	return scanner.Err()
}

func step(s *editor.Session, fields []string) error {
	args := fields[1:]
	switch fields[0] {
	case "down":
		if len(args) != 2 {
			return errors.New("usage: down <index> anchor|in|out")
		}
		i, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		kind, err := parseKind(args[1])
		if err != nil {
			return err
		}
		r := s.Ring()
		if i < 0 || i >= r.N() {
			return fmt.Errorf("anchor index %d out of range", i)
		}
		return s.PointerDown(r[i].ID, kind, r[i].Position)
	case "move":
		at, err := parsePair(args)
		if err != nil {
			return err
		}
		return s.PointerMove(at)
	case "up":
		s.PointerUp()
	case "complexity":
		if len(args) != 1 {
			return errors.New("usage: complexity <n>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		s.SetComplexity(n)
	case "smoothness":
		if len(args) != 1 {
			return errors.New("usage: smoothness <s>")
		}
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return err
		}
		s.SetSmoothness(v)
	case "octaves":
		if len(args) != 1 {
			return errors.New("usage: octaves <n>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		s.SetOctaves(n)
	case "fill":
		s.SetFillColor(strings.Join(args, " "))
	case "hobby":
		s.SetMode(shape.ModeHobby)
	case "tangent":
		s.SetMode(shape.ModeTangent)
	case "regenerate":
		return s.Regenerate()
	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
	return nil
}

func parseKind(s string) (editor.Kind, error) {
	switch s {
	case "anchor":
		return editor.Anchor, nil
	case "in":
		return editor.InboundHandle, nil
	case "out":
		return editor.OutboundHandle, nil
	}
	return 0, fmt.Errorf("unknown element %q", s)
}

func parsePair(args []string) (blobgen.Pair, error) {
	if len(args) != 2 {
		return 0, errors.New("usage: move <x> <y>")
	}
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, err
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return 0, err
	}
	return blobgen.P(x, y), nil
}
