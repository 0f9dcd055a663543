// Package icongen generates source wrappers for a directory of vector icons
// and an index file re-exporting all of them.
package icongen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"golang.org/x/sync/errgroup"
)

// Asset is one discovered icon file.
type Asset struct {
	// Name is the file name, e.g. "1-circle.svg".
	Name string
	// Base is Name without its extension.
	Base string
	// Identifier is the derived identifier, e.g. "OneCircleIcon".
	Identifier string
	// URL locates the asset in the generator's file system.
	URL string
	// Data is the file content, loaded only for targets that read it.
	Data []byte
}

// NewAsset derives the identifier of the asset called name.
func NewAsset(name, location string) *Asset {
	return &Asset{
		Name:       name,
		Base:       BaseName(name),
		Identifier: ClassName(name),
		URL:        location,
	}
}

// Result describes a finished generation.
type Result struct {
	Assets      []*Asset
	Identifiers []string
	Collisions  []Collision
	// Written holds the URLs of the files written, in no particular order.
	Written []string
}

// Generator turns a directory of icon assets into generated source files.
type Generator struct {
	target     Target
	fs         afs.Service
	logger     *log.Logger
	limit      int
	strict     bool
	extensions []string
	manifest   string
}

type Option func(g *Generator)

// WithFS sets the file system used for listing, reading and writing.
func WithFS(fs afs.Service) Option {
	return func(g *Generator) { g.fs = fs }
}

func WithLogger(logger *log.Logger) Option {
	return func(g *Generator) { g.logger = logger }
}

// WithLimit bounds the number of concurrent writes; n <= 0 means no limit.
func WithLimit(n int) Option {
	return func(g *Generator) { g.limit = n }
}

// WithStrict makes identifier collisions fail the generation before
// anything is written.
func WithStrict(strict bool) Option {
	return func(g *Generator) { g.strict = strict }
}

// WithExtensions restricts discovery to files with one of the given
// extensions (".svg"). Matching is case insensitive.
func WithExtensions(exts ...string) Option {
	return func(g *Generator) {
		g.extensions = g.extensions[:0]
		for _, ext := range exts {
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			g.extensions = append(g.extensions, strings.ToLower(ext))
		}
	}
}

// WithManifest also writes a YAML manifest of assets and identifiers to
// the given location.
func WithManifest(location string) Option {
	return func(g *Generator) { g.manifest = location }
}

// New returns a Generator rendering with target.
func New(target Target, opts ...Option) *Generator {
	g := &Generator{target: target}
	for _, opt := range opts {
		opt(g)
	}
	if g.fs == nil {
		g.fs = afs.New()
	}
	if g.logger == nil {
		g.logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "icongen"})
	}
	return g
}

// Generate writes one wrapper per asset found in inputDir to outputDir and
// an aggregator re-exporting all of them to indexFile.
//
// Every identifier is derived before the first write is issued. Writes run
// concurrently and are all awaited; their failures are logged and returned
// joined.
func (g *Generator) Generate(ctx context.Context, inputDir, outputDir, indexFile string) (*Result, error) {
	if err := g.ensureDir(ctx, outputDir); err != nil {
		g.logger.Error("error creating output directory", "dir", outputDir, "err", err)
		return nil, err
	}

	assets, err := g.Discover(ctx, inputDir)
	if err != nil {
		g.logger.Error("error reading directory", "dir", inputDir, "err", err)
		return nil, err
	}

	res := &Result{Assets: assets, Identifiers: make([]string, 0, len(assets))}
	for _, a := range assets {
		if !IsIdentifier(a.Identifier) {
			g.logger.Warn("derived name is not a valid identifier",
				"file", a.Name, "base", a.Base, "camel", CamelCase(a.Base),
				"digits", LeadingDigits(a.Base), "identifier", a.Identifier)
		}
		res.Identifiers = append(res.Identifiers, a.Identifier)
	}

	res.Collisions = FindCollisions(assets, g.target.AssetFile)
	for _, c := range res.Collisions {
		g.logger.Warn("identifier collision", "identifier", c.Identifier, "output", c.Output, "files", strings.Join(c.Files, ", "))
	}
	if g.strict && len(res.Collisions) > 0 {
		errs := make([]error, len(res.Collisions))
		for i, c := range res.Collisions {
			errs[i] = c
		}
		return res, errors.Join(errs...)
	}

	if g.target.ReadsContent() {
		if err := g.load(ctx, assets); err != nil {
			return res, err
		}
	}

	return res, g.emit(ctx, res, outputDir, indexFile)
}

// Discover lists the regular files of dir in lexical order.
func (g *Generator) Discover(ctx context.Context, dir string) ([]*Asset, error) {
	objects, err := g.fs.List(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	var assets []*Asset
	for _, object := range objects {
		// the listing includes dir itself
		if object.IsDir() || !g.accepts(object) {
			continue
		}
		assets = append(assets, NewAsset(object.Name(), object.URL()))
	}
	slices.SortFunc(assets, func(a, b *Asset) int { return strings.Compare(a.Name, b.Name) })
	return assets, nil
}

func (g *Generator) accepts(object storage.Object) bool {
	if len(g.extensions) == 0 {
		return true
	}
	return slices.Contains(g.extensions, strings.ToLower(path.Ext(object.Name())))
}

func (g *Generator) ensureDir(ctx context.Context, dir string) error {
	exists, err := g.fs.Exists(ctx, dir)
	if err != nil {
		return fmt.Errorf("check %s: %w", dir, err)
	}
	if exists {
		return nil
	}
	if err := g.fs.Create(ctx, dir, file.DefaultDirOsMode, true); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return nil
}

func (g *Generator) load(ctx context.Context, assets []*Asset) error {
	for _, a := range assets {
		data, err := g.fs.DownloadWithURL(ctx, a.URL)
		if err != nil {
			g.logger.Error("error reading asset", "file", a.URL, "err", err)
			return fmt.Errorf("read %s: %w", a.URL, err)
		}
		a.Data = data
	}
	return nil
}

// emit renders and writes every file as one batch.
func (g *Generator) emit(ctx context.Context, res *Result, outputDir, indexFile string) error {
	var (
		group errgroup.Group
		mu    sync.Mutex
		errs  []error
	)
	if g.limit > 0 {
		group.SetLimit(g.limit)
	}
	write := func(location string, render func() ([]byte, error)) {
		group.Go(func() error {
			err := g.write(ctx, location, render)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				g.logger.Error("error writing to file", "file", location, "err", err)
				errs = append(errs, err)
				return err
			}
			res.Written = append(res.Written, location)
			return nil
		})
	}

	// colliding assets share a file, the last asset wins
	last := make(map[string]*Asset, len(res.Assets))
	for _, a := range res.Assets {
		last[g.target.AssetFile(a.Identifier)] = a
	}
	for _, a := range res.Assets {
		name := g.target.AssetFile(a.Identifier)
		if last[name] != a {
			continue
		}
		a := a
		write(url.Join(outputDir, name), func() ([]byte, error) {
			return g.target.RenderAsset(a)
		})
	}
	write(indexFile, func() ([]byte, error) {
		return g.target.RenderIndex(res.Assets)
	})
	if g.manifest != "" {
		write(g.manifest, func() ([]byte, error) {
			return NewManifest(g.target.Name(), res.Assets).Marshal()
		})
	}

	// Wait reports only the first failure, errs holds all of them
	if err := group.Wait(); err != nil && len(errs) == 0 {
		return err
	}
	g.logger.Debug("generation finished", "assets", len(res.Assets), "written", len(res.Written), "failed", len(errs))
	return errors.Join(errs...)
}

func (g *Generator) write(ctx context.Context, location string, render func() ([]byte, error)) error {
	content, err := render()
	if err != nil {
		return err
	}
	if err := g.fs.Upload(ctx, location, file.DefaultFileOsMode, bytes.NewReader(content)); err != nil {
		return fmt.Errorf("write %s: %w", location, err)
	}
	return nil
}
