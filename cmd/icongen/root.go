package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/wrnrlr/icongen"
	"github.com/wrnrlr/icongen/internal/config"
)

// Execute runs the root command and exits with status 1 on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string
	cmd := &cobra.Command{
		Use:   "icongen",
		Short: "Generate source wrappers for a directory of icons",
		Long: titleStyle.Render("icongen") + mutedStyle.Render(" - generate source wrappers for a directory of icons") + `

Every file of the input directory gets a wrapper named after the file
("1-circle-fill.svg" becomes OneCircleFillIcon) and an index file
re-exports all of them. Without flags bootstrap-icons are read from
node_modules/bootstrap-icons/icons and written as TSX to dist.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := run(cmd.Context(), cfgFile, cmd.Flags(), cmd.OutOrStdout())
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), warningStyle.Render("Error: ")+err.Error())
			}
			return err
		},
	}

	defaults := config.DefaultConfig()
	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./icongen.yaml)")
	flags.String("input-dir", defaults.InputDir, "directory containing the icon assets")
	flags.String("output-dir", defaults.OutputDir, "directory receiving one file per icon")
	flags.String("index-file", "", "aggregator file (default is the target's index inside --output-dir)")
	flags.String("target", defaults.Target, "output language: tsx or go")
	flags.String("import-prefix", defaults.ImportPrefix, "module path prefix of the assets in TSX imports")
	flags.Int("default-size", defaults.DefaultSize, "icon size used when no size prop is given")
	flags.String("package", defaults.Package, "package name of generated Go files")
	flags.Bool("strict", false, "fail when two assets derive the same identifier")
	flags.String("manifest", "", "also write a YAML manifest of files and identifiers")
	flags.Int("workers", 0, "maximum concurrent writes (0 means unlimited)")
	flags.StringSlice("extensions", nil, "only use files with these extensions, e.g. svg")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	return cmd
}

func run(ctx context.Context, cfgFile string, flags *pflag.FlagSet, out io.Writer) error {
	cfg, err := config.Load(config.LoadOptions{ConfigFile: cfgFile, Flags: flags})
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: config.AppName})
	if cfg.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	target, err := icongen.NewTarget(cfg.Target, icongen.TargetOptions{
		ImportPrefix: cfg.ImportPrefix,
		DefaultSize:  cfg.DefaultSize,
		Package:      cfg.Package,
	})
	if err != nil {
		return err
	}

	gen := icongen.New(target,
		icongen.WithLogger(logger),
		icongen.WithLimit(cfg.Workers),
		icongen.WithStrict(cfg.Strict),
		icongen.WithExtensions(cfg.Extensions...),
		icongen.WithManifest(cfg.Manifest),
	)
	indexFile := cfg.IndexPath(target.DefaultIndex())
	logger.Debug("generating", "input", cfg.InputDir, "output", cfg.OutputDir, "index", indexFile, "target", target.Name())

	res, err := gen.Generate(ctx, cfg.InputDir, cfg.OutputDir, indexFile)
	if err != nil {
		return err
	}

	summary := fmt.Sprintf("Generated %d icons in %s", len(res.Assets), cfg.OutputDir)
	fmt.Fprintln(out, successStyle.Render(summary))
	if n := len(res.Collisions); n > 0 {
		fmt.Fprintln(out, warningStyle.Render(fmt.Sprintf("%d identifier collisions, see the log above", n)))
	}
	return nil
}
