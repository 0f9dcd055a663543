package icongen

import (
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const expectedCircleTSX = `// This code is generated. Do not modify it

import { ReactComponent } from "bootstrap-icons/icons/1-circle.svg";
import { IconProps } from "./index";

export default function OneCircleIcon(props: IconProps) {
    const size = props.size || 16;
    const className = props.className;

    return (<ReactComponent
        width={size}
        height={size}
        className={` + "`bi ${className}`" + `}
    />);
}
`

const expectedIndexTS = `// This code is generated. Do not modify it

// Props type
export type IconProps = {
    size?: number;
    className?: string;
}

// Imports
import CircleIcon from './CircleIcon';
import OneCircleIcon from './OneCircleIcon';
import OneTwoCircleFillIcon from './OneTwoCircleFillIcon';

// Exports
export {CircleIcon, OneCircleIcon, OneTwoCircleFillIcon};
`

func TestTSX_RenderAsset(t *testing.T) {
	target := NewTSX(DefaultTargetOptions())
	asset := NewAsset("1-circle.svg", "mem://localhost/icons/1-circle.svg")

	out, err := target.RenderAsset(asset)
	require.NoError(t, err)
	assert.Equal(t, expectedCircleTSX, string(out))

	again, err := target.RenderAsset(asset)
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestTSX_RenderAssetOptions(t *testing.T) {
	target := NewTSX(TargetOptions{ImportPrefix: "@icons/", DefaultSize: 24})
	out, err := target.RenderAsset(NewAsset("alarm.svg", ""))
	require.NoError(t, err)
	assert.Contains(t, string(out), `from "@icons/alarm.svg";`)
	assert.Contains(t, string(out), "props.size || 24;")
	assert.Contains(t, string(out), "export default function AlarmIcon(props: IconProps)")
}

func TestTSX_RenderIndex(t *testing.T) {
	target := NewTSX(DefaultTargetOptions())

	out, err := target.RenderIndex(newAssets("circle.svg", "1-circle.svg", "12-circle-fill.svg"))
	require.NoError(t, err)
	assert.Equal(t, expectedIndexTS, string(out))
}

func TestTSX_RenderIndexKeepsDuplicates(t *testing.T) {
	target := NewTSX(DefaultTargetOptions())

	out, err := target.RenderIndex(newAssets("b.svg", "a.svg", "b.png"))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(out), "import BIcon from './BIcon';"))
	assert.Contains(t, string(out), "export {BIcon, AIcon, BIcon};")
	assert.Less(t, strings.Index(string(out), "import BIcon"), strings.Index(string(out), "import AIcon"))
}

func TestTSX_RenderIndexEmpty(t *testing.T) {
	out, err := NewTSX(DefaultTargetOptions()).RenderIndex(nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), Header+"\n"))
	assert.Contains(t, string(out), "// Imports\n\n\n// Exports\nexport {};\n")
}

func TestTSX_Files(t *testing.T) {
	target := NewTSX(DefaultTargetOptions())
	assert.Equal(t, "tsx", target.Name())
	assert.Equal(t, "OneCircleIcon.tsx", target.AssetFile("OneCircleIcon"))
	assert.Equal(t, "index.ts", target.DefaultIndex())
	assert.False(t, target.ReadsContent())
}

func TestGo_RenderAsset(t *testing.T) {
	target := NewGo(DefaultTargetOptions())
	asset := NewAsset("1-circle.svg", "")
	asset.Data = []byte(squareSVG)

	out, err := target.RenderAsset(asset)
	require.NoError(t, err)
	src := string(out)
	assert.True(t, strings.HasPrefix(src, Header+"\n\npackage icons\n"))
	assert.Contains(t, src, "// OneCircleIcon is the IconVG encoding of 1-circle.svg.")
	assert.Contains(t, src, "var OneCircleIcon = []byte{0x89, 0x49, 0x56, 0x47")
}

func TestGo_RenderAssetInvalidSVG(t *testing.T) {
	target := NewGo(DefaultTargetOptions())
	asset := NewAsset("broken.svg", "")
	asset.Data = []byte("<svg")

	_, err := target.RenderAsset(asset)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "broken.svg")
}

func TestGo_RenderIndex(t *testing.T) {
	target := NewGo(TargetOptions{Package: "bootstrap"})

	out, err := target.RenderIndex(newAssets("circle.svg", "1-circle.svg"))
	require.NoError(t, err)
	src := string(out)
	assert.Contains(t, src, "package bootstrap")
	assert.Contains(t, src, `"circle.svg":   CircleIcon,`)
	assert.Contains(t, src, `"1-circle.svg": OneCircleIcon,`)
	assert.Contains(t, src, "var Names = []string{\n\t\"CircleIcon\",\n\t\"OneCircleIcon\",\n}")
}

func TestGo_RenderIndexCollidingIdentifiers(t *testing.T) {
	target := NewGo(DefaultTargetOptions())

	out, err := target.RenderIndex(newAssets("circle-fill.svg", "circle_fill.svg"))
	require.NoError(t, err)

	file, err := parser.ParseFile(token.NewFileSet(), "icons.go", out, 0)
	require.NoError(t, err)
	var keys []string
	ast.Inspect(file, func(n ast.Node) bool {
		if kv, ok := n.(*ast.KeyValueExpr); ok {
			key, err := strconv.Unquote(kv.Key.(*ast.BasicLit).Value)
			require.NoError(t, err)
			keys = append(keys, key)
		}
		return true
	})
	assert.Equal(t, []string{"circle-fill.svg", "circle_fill.svg"}, keys)
	assert.Equal(t, 2, strings.Count(string(out), ": CircleFillIcon,"))
}

func TestGo_Files(t *testing.T) {
	target := NewGo(DefaultTargetOptions())
	assert.Equal(t, "one_circle_icon.go", target.AssetFile("OneCircleIcon"))
	assert.Equal(t, "icons.go", target.DefaultIndex())
	assert.True(t, target.ReadsContent())
}

func TestNewTarget(t *testing.T) {
	target, err := NewTarget("", DefaultTargetOptions())
	require.NoError(t, err)
	assert.Equal(t, "tsx", target.Name())

	target, err = NewTarget("go", DefaultTargetOptions())
	require.NoError(t, err)
	assert.Equal(t, "go", target.Name())

	_, err = NewTarget("vue", DefaultTargetOptions())
	assert.True(t, errors.Is(err, ErrUnknownTarget))
}

func newAssets(names ...string) []*Asset {
	assets := make([]*Asset, len(names))
	for i, name := range names {
		assets[i] = NewAsset(name, "")
	}
	return assets
}
