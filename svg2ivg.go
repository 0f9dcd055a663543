// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This is a modification from https://github.com/golang/exp/blob/00229845015e38294862ecd9909318241789d41c/shiny/materialdesign/icons/gen.go
// DON'T supports all types of SVG.

package icongen

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/exp/shiny/iconvg"
	"golang.org/x/image/math/f32"
)

// outSize is the width and height (in ideal vector space) of the generated
// IconVG graphic, regardless of the size of the input SVG.
const outSize = 48

type SVG struct {
	Width   float32 `xml:"width,attr"`
	Height  float32 `xml:"height,attr"`
	ViewBox string  `xml:"viewBox,attr"`
	Paths   []Path  `xml:"path"`
	// IconVG has no circles. They are converted to paired arcTo commands
	// tacked on to the first path, which is only correct when they don't
	// overlap it.
	Circles []Circle `xml:"circle"`
	Groups  []Group  `xml:"g"`
}

// Group is a <g> element. Its children are drawn as if they were direct
// children of the <svg> element; transforms are not supported.
type Group struct {
	Paths   []Path   `xml:"path"`
	Circles []Circle `xml:"circle"`
	Groups  []Group  `xml:"g"`
}

type Path struct {
	D           string   `xml:"d,attr"`
	Fill        string   `xml:"fill,attr"`
	FillOpacity *float32 `xml:"fill-opacity,attr"`
	Opacity     *float32 `xml:"opacity,attr"`
}

type Circle struct {
	Cx float32 `xml:"cx,attr"`
	Cy float32 `xml:"cy,attr"`
	R  float32 `xml:"r,attr"`
}

// IVG is an IconVG encoded graphic.
type IVG []byte

// ParseSVG reads an SVG document from r.
func ParseSVG(r io.Reader) (*SVG, error) {
	svg := new(SVG)
	if err := xml.NewDecoder(r).Decode(svg); err != nil {
		return nil, fmt.Errorf("decode svg: %w", err)
	}
	return svg, nil
}

// flatten returns the paths and circles of svg and all its groups.
func (svg *SVG) flatten() ([]Path, []Circle) {
	paths := append([]Path(nil), svg.Paths...)
	circles := append([]Circle(nil), svg.Circles...)
	var walk func(gs []Group)
	walk = func(gs []Group) {
		for _, g := range gs {
			paths = append(paths, g.Paths...)
			circles = append(circles, g.Circles...)
			walk(g.Groups)
		}
	}
	walk(svg.Groups)
	return paths, circles
}

// viewBox returns the origin and width of the drawing area. Width and
// height fall back to the viewBox and the other way round.
func (svg *SVG) viewBox() (x, y, size float32, err error) {
	fields := strings.FieldsFunc(svg.ViewBox, func(r rune) bool { return r == ' ' || r == ',' })
	switch len(fields) {
	case 0:
		size = svg.Width
	case 4:
		var vb [4]float32
		for i, s := range fields {
			if vb[i], err = atof(s); err != nil {
				return 0, 0, 0, err
			}
		}
		x, y, size = vb[0], vb[1], vb[2]
	default:
		return 0, 0, 0, fmt.Errorf("invalid viewBox %q", svg.ViewBox)
	}
	if size <= 0 {
		return 0, 0, 0, fmt.Errorf("svg has no usable width or viewBox")
	}
	return x, y, size, nil
}

// IVG encodes svg as IconVG.
func (svg *SVG) IVG() (IVG, error) {
	var enc iconvg.Encoder
	enc.Reset(iconvg.Metadata{
		ViewBox: iconvg.Rectangle{
			Min: f32.Vec2{-outSize / 2, -outSize / 2},
			Max: f32.Vec2{+outSize / 2, +outSize / 2},
		},
		Palette: iconvg.DefaultPalette,
	})

	vbx, vby, size, err := svg.viewBox()
	if err != nil {
		return nil, err
	}
	t := transform{
		scale:  outSize / size,
		offset: f32.Vec2{vbx * outSize / size, vby * outSize / size},
	}

	// adjs maps from opacity to a cReg adj value.
	adjs := map[float32]uint8{}

	paths, circles := svg.flatten()
	for i := range paths {
		if err := genPath(&enc, &paths[i], adjs, t, circles); err != nil {
			return nil, err
		}
		circles = nil
	}
	if len(circles) != 0 {
		if err := genPath(&enc, &Path{}, adjs, t, circles); err != nil {
			return nil, err
		}
	}

	data, err := enc.Bytes()
	if err != nil {
		return nil, fmt.Errorf("encode iconvg: %w", err)
	}
	return data, nil
}

// transform maps SVG user space onto the IconVG view box.
type transform struct {
	scale  float32
	offset f32.Vec2
}

func (t transform) length(v float32) float32 { return v * t.scale }

func (t transform) point(x, y float32, relative bool) (float32, float32) {
	x, y = x*t.scale, y*t.scale
	if relative {
		return x, y
	}
	return x - outSize/2 - t.offset[0], y - outSize/2 - t.offset[1]
}

func (t transform) x(v float32, relative bool) float32 {
	v *= t.scale
	if relative {
		return v
	}
	return v - outSize/2 - t.offset[0]
}

func (t transform) y(v float32, relative bool) float32 {
	v *= t.scale
	if relative {
		return v
	}
	return v - outSize/2 - t.offset[1]
}

func genPath(enc *iconvg.Encoder, p *Path, adjs map[float32]uint8, t transform, circles []Circle) error {
	if p.Fill == "none" {
		return nil
	}

	adj := uint8(0)
	opacity := float32(1)
	if p.Opacity != nil {
		opacity = *p.Opacity
	} else if p.FillOpacity != nil {
		opacity = *p.FillOpacity
	}
	if opacity != 1 {
		var ok bool
		if adj, ok = adjs[opacity]; !ok {
			adj = uint8(len(adjs) + 1)
			adjs[opacity] = adj
			// Set CREG[0-adj] to be a blend of transparent (0x7f) and the
			// first custom palette color (0x80).
			enc.SetCReg(adj, false, iconvg.BlendColor(uint8(opacity*0xff), 0x7f, 0x80))
		}
	}

	started := false
	if strings.TrimSpace(p.D) != "" {
		var err error
		if started, err = genPathData(enc, adj, p.D, t); err != nil {
			return err
		}
	}

	for _, c := range circles {
		cx, cy := t.point(c.Cx, c.Cy, false)
		r := t.length(c.R)

		if !started {
			started = true
			enc.StartPath(adj, cx-r, cy)
		} else {
			enc.ClosePathAbsMoveTo(cx-r, cy)
		}

		// Convert a circle to two relative arcTo ops, each of 180 degrees.
		// We can't use one 360 degree arcTo as the start and end point
		// would be coincident and the computation is degenerate.
		enc.RelArcTo(r, r, 0, false, true, +2*r, 0)
		enc.RelArcTo(r, r, 0, false, true, -2*r, 0)
	}

	if started {
		enc.ClosePathEndPath()
	}
	return nil
}

// argCount returns the number of arguments taken by a path command.
func argCount(op byte) (int, bool) {
	switch op {
	case 'M', 'm', 'L', 'l', 'T', 't':
		return 2, true
	case 'H', 'h', 'V', 'v':
		return 1, true
	case 'Q', 'q', 'S', 's':
		return 4, true
	case 'C', 'c':
		return 6, true
	case 'A', 'a':
		return 7, true
	case 'Z', 'z':
		return 0, true
	}
	return 0, false
}

// genPathData encodes the d attribute of a path. It reports whether a path
// was started.
func genPathData(enc *iconvg.Encoder, adj uint8, d string, t transform) (bool, error) {
	sc := &pathScanner{s: d}
	var args [7]float32
	op, started := byte(0), false
	for {
		sc.skip()
		if sc.done() {
			break
		}
		if c := sc.peek(); isCommand(c) {
			op = c
			sc.i++
		} else if op == 0 || op == 'Z' || op == 'z' {
			return started, fmt.Errorf("unexpected %q at offset %d in path data", c, sc.i)
		}

		n, ok := argCount(op)
		if !ok {
			return started, fmt.Errorf("unknown opcode %c", op)
		}
		for i := 0; i < n; i++ {
			var err error
			if (op == 'A' || op == 'a') && (i == 3 || i == 4) {
				args[i], err = sc.flag()
			} else {
				args[i], err = sc.number()
			}
			if err != nil {
				return started, fmt.Errorf("opcode %c: %w", op, err)
			}
		}

		relative := 'a' <= op && op <= 'z'
		if !started && op != 'M' && op != 'm' {
			return started, fmt.Errorf("path data must start with a moveto, got %c", op)
		}

		switch op {
		case 'M', 'm':
			// a leading relative moveto is absolute
			if !started {
				x, y := t.point(args[0], args[1], false)
				enc.StartPath(adj, x, y)
				started = true
			} else if op == 'M' {
				enc.ClosePathAbsMoveTo(t.point(args[0], args[1], false))
			} else {
				enc.ClosePathRelMoveTo(t.point(args[0], args[1], true))
			}
			// subsequent coordinate pairs are implicit linetos
			if op == 'M' {
				op = 'L'
			} else {
				op = 'l'
			}
		case 'L':
			enc.AbsLineTo(t.point(args[0], args[1], false))
		case 'l':
			enc.RelLineTo(t.point(args[0], args[1], true))
		case 'T':
			enc.AbsSmoothQuadTo(t.point(args[0], args[1], false))
		case 't':
			enc.RelSmoothQuadTo(t.point(args[0], args[1], true))
		case 'Q', 'q':
			x1, y1 := t.point(args[0], args[1], relative)
			x, y := t.point(args[2], args[3], relative)
			if relative {
				enc.RelQuadTo(x1, y1, x, y)
			} else {
				enc.AbsQuadTo(x1, y1, x, y)
			}
		case 'S', 's':
			x2, y2 := t.point(args[0], args[1], relative)
			x, y := t.point(args[2], args[3], relative)
			if relative {
				enc.RelSmoothCubeTo(x2, y2, x, y)
			} else {
				enc.AbsSmoothCubeTo(x2, y2, x, y)
			}
		case 'C', 'c':
			x1, y1 := t.point(args[0], args[1], relative)
			x2, y2 := t.point(args[2], args[3], relative)
			x, y := t.point(args[4], args[5], relative)
			if relative {
				enc.RelCubeTo(x1, y1, x2, y2, x, y)
			} else {
				enc.AbsCubeTo(x1, y1, x2, y2, x, y)
			}
		case 'A', 'a':
			rx, ry := t.length(args[0]), t.length(args[1])
			large, sweep := args[3] != 0, args[4] != 0
			x, y := t.point(args[5], args[6], relative)
			if relative {
				enc.RelArcTo(rx, ry, args[2], large, sweep, x, y)
			} else {
				enc.AbsArcTo(rx, ry, args[2], large, sweep, x, y)
			}
		case 'H':
			enc.AbsHLineTo(t.x(args[0], false))
		case 'h':
			enc.RelHLineTo(t.x(args[0], true))
		case 'V':
			enc.AbsVLineTo(t.y(args[0], false))
		case 'v':
			enc.RelVLineTo(t.y(args[0], true))
		}
	}
	return started, nil
}

func isCommand(c byte) bool {
	_, ok := argCount(c)
	return ok
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// pathScanner tokenizes SVG path data. Numbers may be separated by
// whitespace, commas, a sign or a second decimal point ("1.5.5").
type pathScanner struct {
	s string
	i int
}

func (p *pathScanner) done() bool { return p.i >= len(p.s) }

func (p *pathScanner) peek() byte { return p.s[p.i] }

func (p *pathScanner) skip() {
	for p.i < len(p.s) {
		switch p.s[p.i] {
		case ' ', ',', '\t', '\n', '\r', '\f':
			p.i++
		default:
			return
		}
	}
}

func (p *pathScanner) number() (float32, error) {
	p.skip()
	start := p.i
	if p.i < len(p.s) && (p.s[p.i] == '+' || p.s[p.i] == '-') {
		p.i++
	}
	digits, dot := false, false
scan:
	for p.i < len(p.s) {
		switch c := p.s[p.i]; {
		case isDigit(c):
			digits = true
		case c == '.' && !dot:
			dot = true
		default:
			break scan
		}
		p.i++
	}
	if !digits {
		return 0, fmt.Errorf("expected number at offset %d", start)
	}
	if p.i < len(p.s) && (p.s[p.i] == 'e' || p.s[p.i] == 'E') {
		j := p.i + 1
		if j < len(p.s) && (p.s[j] == '+' || p.s[j] == '-') {
			j++
		}
		if j < len(p.s) && isDigit(p.s[j]) {
			for j < len(p.s) && isDigit(p.s[j]) {
				j++
			}
			p.i = j
		}
	}
	return atof(p.s[start:p.i])
}

// flag reads an arc flag, which is a single 0 or 1 that needs no separator.
func (p *pathScanner) flag() (float32, error) {
	p.skip()
	if p.done() || (p.s[p.i] != '0' && p.s[p.i] != '1') {
		return 0, fmt.Errorf("expected arc flag at offset %d", p.i)
	}
	f := float32(p.s[p.i] - '0')
	p.i++
	return f, nil
}

func atof(s string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, fmt.Errorf("could not parse %q as a float32: %v", s, err)
	}
	return float32(f), nil
}
