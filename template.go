package icongen

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"go/format"
	"strings"
	"text/template"

	"github.com/iancoleman/strcase"
)

// Header starts every generated file.
const Header = "// This code is generated. Do not modify it"

// ErrUnknownTarget is returned by NewTarget for an unsupported target name.
var ErrUnknownTarget = errors.New("unknown target")

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("icongen").
	Funcs(template.FuncMap{"join": strings.Join}).
	ParseFS(templateFS, "templates/*.tmpl"))

// Target renders the generated files for one output language.
type Target interface {
	// Name is the target name used in configuration.
	Name() string
	// AssetFile returns the file name, relative to the output directory,
	// of the wrapper for the given identifier.
	AssetFile(identifier string) string
	// DefaultIndex is the aggregator file name used when none is configured.
	DefaultIndex() string
	// ReadsContent reports whether RenderAsset needs Asset.Data.
	ReadsContent() bool
	RenderAsset(asset *Asset) ([]byte, error)
	// RenderIndex renders the aggregator over all assets in discovery
	// order, colliding ones included.
	RenderIndex(assets []*Asset) ([]byte, error)
}

// TargetOptions holds the constants a target is built with.
type TargetOptions struct {
	// ImportPrefix is prepended to the asset file name in TSX imports.
	ImportPrefix string
	// DefaultSize is the icon size used when none is passed as a prop.
	DefaultSize int
	// Package is the Go package name of generated Go files.
	Package string
}

// DefaultTargetOptions returns the options producing bootstrap-icons wrappers.
func DefaultTargetOptions() TargetOptions {
	return TargetOptions{
		ImportPrefix: "bootstrap-icons/icons/",
		DefaultSize:  16,
		Package:      "icons",
	}
}

// NewTarget returns the target registered under name ("tsx" or "go").
func NewTarget(name string, opts TargetOptions) (Target, error) {
	switch name {
	case "", "tsx":
		return NewTSX(opts), nil
	case "go":
		return NewGo(opts), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTarget, name)
}

func execute(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// TSX renders React components wrapping SVG assets, plus an index.ts
// re-exporting all of them.
type TSX struct {
	opts TargetOptions
}

// NewTSX returns a TSX target.
func NewTSX(opts TargetOptions) *TSX {
	return &TSX{opts: opts}
}

func (t *TSX) Name() string { return "tsx" }

func (t *TSX) AssetFile(identifier string) string { return identifier + ".tsx" }

func (t *TSX) DefaultIndex() string { return "index.ts" }

func (t *TSX) ReadsContent() bool { return false }

func (t *TSX) RenderAsset(asset *Asset) ([]byte, error) {
	return execute("asset.tsx.tmpl", struct {
		Header       string
		ImportPrefix string
		File         string
		Identifier   string
		DefaultSize  int
	}{Header, t.opts.ImportPrefix, asset.Name, asset.Identifier, t.opts.DefaultSize})
}

func (t *TSX) RenderIndex(assets []*Asset) ([]byte, error) {
	return execute("index.ts.tmpl", struct {
		Header      string
		Identifiers []string
	}{Header, identifiers(assets)})
}

func identifiers(assets []*Asset) []string {
	ids := make([]string, len(assets))
	for i, a := range assets {
		ids[i] = a.Identifier
	}
	return ids
}

// Go renders one Go file per asset holding its IconVG encoding, plus an
// index declaring a map of all icons.
type Go struct {
	opts TargetOptions
}

// NewGo returns a Go target.
func NewGo(opts TargetOptions) *Go {
	return &Go{opts: opts}
}

func (g *Go) Name() string { return "go" }

func (g *Go) AssetFile(identifier string) string { return strcase.ToSnake(identifier) + ".go" }

func (g *Go) DefaultIndex() string { return "icons.go" }

func (g *Go) ReadsContent() bool { return true }

func (g *Go) RenderAsset(asset *Asset) ([]byte, error) {
	svg, err := ParseSVG(bytes.NewReader(asset.Data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", asset.Name, err)
	}
	ivg, err := svg.IVG()
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", asset.Name, err)
	}
	src, err := execute("asset.go.tmpl", struct {
		Header     string
		Package    string
		File       string
		Identifier string
		Data       []byte
	}{Header, g.opts.Package, asset.Name, asset.Identifier, []byte(ivg)})
	if err != nil {
		return nil, err
	}
	return gofmt(asset.Name, src)
}

// RenderIndex keys All by asset file name, which is unique within the input
// directory even when identifiers collide.
func (g *Go) RenderIndex(assets []*Asset) ([]byte, error) {
	src, err := execute("index.go.tmpl", struct {
		Header  string
		Package string
		Assets  []*Asset
	}{Header, g.opts.Package, assets})
	if err != nil {
		return nil, err
	}
	return gofmt(g.DefaultIndex(), src)
}

func gofmt(name string, src []byte) ([]byte, error) {
	out, err := format.Source(src)
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", name, err)
	}
	return out, nil
}
