package icongen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/shiny/iconvg"
	"golang.org/x/image/math/f32"
)

const squareSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="16" height="16" fill="currentColor" viewBox="0 0 16 16">
  <path d="M2 2h12v12H2z"/>
</svg>`

func TestParseSVG(t *testing.T) {
	svg, err := ParseSVG(strings.NewReader(squareSVG))
	require.NoError(t, err)
	assert.Equal(t, float32(16), svg.Width)
	assert.Equal(t, "0 0 16 16", svg.ViewBox)
	require.Len(t, svg.Paths, 1)
	assert.Equal(t, "M2 2h12v12H2z", svg.Paths[0].D)
}

func TestSVG_IVG(t *testing.T) {
	testCases := []struct {
		name string
		svg  string
	}{
		{name: "square", svg: squareSVG},
		{
			name: "commas and packed numbers",
			svg:  `<svg viewBox="0,0,16,16"><path d="M8 1.5.5 8l7.5 6.5-7.5-6.5z"/></svg>`,
		},
		{
			name: "curves",
			svg:  `<svg width="16" height="16" viewBox="0 0 16 16"><path d="M1 1C2 2 3 3 4 4S5 5 6 6Q7 7 8 8T9 9c1 1 1 1 1 1s1 1 1 1q1 1 1 1t1 1Z"/></svg>`,
		},
		{
			name: "arcs with packed flags",
			svg:  `<svg viewBox="0 0 16 16"><path d="M8 0a8 8 0 1 0 0 16A8 8 0 0 1 8 0z"/></svg>`,
		},
		{
			name: "group and circle",
			svg:  `<svg viewBox="0 0 16 16"><g><circle cx="8" cy="8" r="3"/><path d="M0 0H4V4z" opacity="0.5"/></g></svg>`,
		},
		{
			name: "implicit lineto after relative moveto",
			svg:  `<svg viewBox="0 0 16 16"><path d="m2 2 4 0 0 4z"/></svg>`,
		},
		{
			name: "exponent",
			svg:  `<svg viewBox="0 0 16 16"><path d="M1e0 2E+0L1.5e1 2z"/></svg>`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svg, err := ParseSVG(strings.NewReader(tc.svg))
			require.NoError(t, err)
			ivg, err := svg.IVG()
			require.NoError(t, err)

			m, err := iconvg.DecodeMetadata(ivg)
			require.NoError(t, err)
			assert.Equal(t, f32.Vec2{-24, -24}, m.ViewBox.Min)
			assert.Equal(t, f32.Vec2{24, 24}, m.ViewBox.Max)
		})
	}
}

func TestSVG_IVGErrors(t *testing.T) {
	testCases := []struct {
		name string
		svg  string
	}{
		{name: "no size", svg: `<svg><path d="M0 0L1 1z"/></svg>`},
		{name: "bad viewBox", svg: `<svg viewBox="0 0 16"><path d="M0 0L1 1z"/></svg>`},
		{name: "unknown command", svg: `<svg viewBox="0 0 16 16"><path d="M0 0X1 1z"/></svg>`},
		{name: "missing number", svg: `<svg viewBox="0 0 16 16"><path d="M0 0L1z"/></svg>`},
		{name: "no moveto", svg: `<svg viewBox="0 0 16 16"><path d="L1 1z"/></svg>`},
		{name: "bad arc flag", svg: `<svg viewBox="0 0 16 16"><path d="M0 0a1 1 0 2 0 4 4z"/></svg>`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svg, err := ParseSVG(strings.NewReader(tc.svg))
			require.NoError(t, err)
			_, err = svg.IVG()
			assert.Error(t, err)
		})
	}
}

func TestSVG_IVGSkipsUnfilledPaths(t *testing.T) {
	filled, err := ParseSVG(strings.NewReader(squareSVG))
	require.NoError(t, err)
	empty, err := ParseSVG(strings.NewReader(`<svg viewBox="0 0 16 16"><path fill="none" d="M2 2h12v12H2z"/></svg>`))
	require.NoError(t, err)

	a, err := filled.IVG()
	require.NoError(t, err)
	b, err := empty.IVG()
	require.NoError(t, err)
	assert.Greater(t, len(a), len(b))
}

func TestPathScanner(t *testing.T) {
	sc := &pathScanner{s: " 1.5.5-2,3e1 .25"}
	var got []float32
	for {
		sc.skip()
		if sc.done() {
			break
		}
		f, err := sc.number()
		require.NoError(t, err)
		got = append(got, f)
	}
	assert.Equal(t, []float32{1.5, 0.5, -2, 30, 0.25}, got)
}
