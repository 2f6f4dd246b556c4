package raster

import (
	"encoding/hex"
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
	"golang.org/x/image/colornames"
)

// ErrBadColor is returned for fill or stroke values which are not a CSS color.
var ErrBadColor = errors.New("unrecognized color")

// ParseColor resolves a CSS color value as it may appear in an SVG fill
// attribute: #rgb, #rgba, #rrggbb, #rrggbbaa, a named color, rgb(…) and
// rgba(…), or none/transparent.
func ParseColor(s string) (color.Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "none" || v == "transparent":
		return color.Transparent, nil
	case strings.HasPrefix(v, "#"):
		c, ok := parseHexColor(v[1:])
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrBadColor, s)
		}
		return c, nil
	case strings.HasPrefix(v, "rgb(") || strings.HasPrefix(v, "rgba("):
		c, ok := parseRGBFunc(v)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrBadColor, s)
		}
		return c, nil
	}
	if c, ok := colornames.Map[v]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrBadColor, s)
}

func parseHexColor(h string) (color.Color, bool) {
	switch len(h) {
	case 3, 4:
		var b strings.Builder
		for _, c := range h {
			b.WriteRune(c)
			b.WriteRune(c)
		}
		h = b.String()
	case 6, 8:
	default:
		return nil, false
	}
	if len(h) == 6 {
		h += "ff"
	}
	ch, err := hex.DecodeString(h)
	if err != nil {
		return nil, false
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, true
}

// rgb(255, 0, 0), rgb(100%, 0%, 0%), rgba(255, 0, 0, 0.5)
func parseRGBFunc(v string) (color.Color, bool) {
	lp, rp := strings.IndexByte(v, '('), strings.LastIndexByte(v, ')')
	if rp != len(v)-1 || rp < lp {
		return nil, false
	}
	args := strings.FieldsFunc(v[lp+1:rp], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(args) != 3 && len(args) != 4 {
		return nil, false
	}
	var ch [4]uint8
	ch[3] = 255
	for i, a := range args {
		pct := strings.HasSuffix(a, "%")
		num := []byte(strings.TrimSuffix(a, "%"))
		f, n := strconv.ParseFloat(num)
		if n == 0 || n != len(num) {
			return nil, false
		}
		switch {
		case pct:
			f = f / 100 * 255
		case i == 3:
			f *= 255 // alpha is given as 0 … 1
		}
		ch[i] = uint8(math.Round(math.Max(0, math.Min(255, f))))
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, true
}
