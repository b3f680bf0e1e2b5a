package cli

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/autobase16/internal/base16"
	"github.com/jmylchreest/autobase16/internal/colour"
	"github.com/jmylchreest/autobase16/internal/image"
	"github.com/jmylchreest/autobase16/internal/render"
	"github.com/jmylchreest/autobase16/internal/source"
	"github.com/jmylchreest/autobase16/internal/util/cache"
)

type generateOptions struct {
	global     *globalOptions
	thresholds thresholdFlags

	pool         string
	imagePath    string
	imageColours int
	template     string
	output       string
	syntax       string
	schemeName   string
	schemeAuthor string
	saveScheme   string
	format       string
	seed         uint64
	preview      bool
	dryRun       bool
	cacheImages  bool
}

func newGenerateCmd(global *globalOptions) *cobra.Command {
	o := &generateOptions{global: global}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Select a base16 scheme from a colour pool and render a template",
		Long: `Select sixteen base16 colours from a colour pool and render them into a template.

The pool is a text file with one hex colour per line (duplicates and blank
lines are fine; gzip, xz and bzip2 files are decompressed), "-" for stdin, or
an https:// URL. Colours can also be extracted from an image.

Roles are resolved in order base00..base0F:
  base00-02, base06-07  darkest colours, capped by the background ceilings
  base03                darkest colour with comment contrast against base00
  base04-05             darkest colour with text contrast against base00
  base08-0F             first unused colour with text contrast against base00

Templates use base16-builder placeholders ({{base00-hex}}, {{base0A-rgb-r}},
{{scheme-name}}, ...) or, with --syntax go, text/template ({{ .base00 }},
{{ get . "base08" | hex }}).

Examples:
  # Pick a scheme from a palette and print the report
  autobase16 generate --pool colours.txt

  # Render a vim colour scheme
  autobase16 generate --pool colours.txt --template base16.vim.mustache -o colors/auto.vim

  # Build the pool from a wallpaper and save the scheme
  autobase16 generate --image wallpaper.jpg --save-scheme auto.yaml

  # Reproducible random fallbacks
  autobase16 generate --pool colours.txt --seed 42`,
		Args: cobra.NoArgs,
		RunE: o.run,
	}

	cmd.Flags().StringVarP(&o.pool, "pool", "p", "", "colour pool file, https URL, or - for stdin")
	cmd.Flags().StringVarP(&o.imagePath, "image", "i", "", "image file, directory or https URL to extract pool colours from")
	cmd.Flags().IntVarP(&o.imageColours, "colours", "c", colour.DefaultExtractorConfig().ColorCount, "number of colours to extract from --image (1-256)")
	cmd.Flags().StringVarP(&o.template, "template", "t", "", "template file to render")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "rendered output file (default: stdout)")
	cmd.Flags().StringVar(&o.syntax, "syntax", string(render.SyntaxMustache), "template syntax (mustache, go)")
	cmd.Flags().StringVar(&o.schemeName, "scheme-name", "Auto", "scheme name exposed to templates")
	cmd.Flags().StringVar(&o.schemeAuthor, "scheme-author", "autobase16", "scheme author exposed to templates")
	cmd.Flags().StringVar(&o.saveScheme, "save-scheme", "", "save the scheme as a base16 YAML file")
	cmd.Flags().StringVarP(&o.format, "format", "f", "text", "report format (text, json)")
	cmd.Flags().Uint64Var(&o.seed, "seed", 0, "seed for random fallbacks (default: time based)")
	cmd.Flags().BoolVar(&o.preview, "preview", false, "show colour swatches (default: when stdout is a terminal)")
	cmd.Flags().BoolVar(&o.dryRun, "dry-run", false, "select and report without writing files")
	cmd.Flags().BoolVar(&o.cacheImages, "cache", false, "keep downloaded images in the user cache directory")
	o.thresholds.register(cmd.Flags())

	return cmd
}

func (o *generateOptions) run(cmd *cobra.Command, args []string) error {
	log := o.global.logger(cmd.ErrOrStderr())

	if o.pool == "" && o.imagePath == "" {
		return fmt.Errorf("a colour pool is required: use --pool or --image")
	}
	syntax, err := render.ParseSyntax(o.syntax)
	if err != nil {
		return err
	}
	if o.format != "text" && o.format != "json" {
		return fmt.Errorf("unsupported format: %s (supported: text, json)", o.format)
	}

	cfg, err := o.thresholds.resolve(cmd)
	if err != nil {
		return err
	}

	seed := o.seed
	if !cmd.Flags().Changed("seed") {
		seed = uint64(time.Now().UnixNano())
	}
	log.Debug("using seed", "seed", seed)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	raw, err := o.readPool(ctx, cmd, log, seed)
	if err != nil {
		return err
	}

	engine, err := base16.New(cfg, base16.WithLogger(log.Named("select")), base16.WithSeed(seed))
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	scheme, err := engine.Run(raw)
	if err != nil {
		return fmt.Errorf("failed to select scheme: %w", err)
	}
	log.Info("scheme selected", "pool_size", scheme.PoolSize, "fallbacks", len(scheme.Fallbacks()))

	data, err := render.NewData(scheme, render.Meta{Name: o.schemeName, Author: o.schemeAuthor})
	if err != nil {
		return err
	}

	// Rendered output on stdout takes precedence over the report.
	renderToStdout := o.template != "" && o.output == ""
	report := cmd.OutOrStdout()
	if renderToStdout {
		report = cmd.ErrOrStderr()
	}
	if !o.global.quiet && (!renderToStdout || o.global.verbose) {
		if err := o.writeReport(report, scheme, data); err != nil {
			return err
		}
	}

	if o.saveScheme != "" {
		b, err := render.SchemeYAML(data)
		if err != nil {
			return err
		}
		if err := writeOutput(log, o.saveScheme, b, o.dryRun); err != nil {
			return fmt.Errorf("failed to save scheme: %w", err)
		}
	}

	if o.template == "" {
		return nil
	}
	return renderTemplate(cmd, log, o.template, o.output, syntax, data, o.dryRun)
}

// readPool gathers raw pool lines from --pool and --image.
func (o *generateOptions) readPool(ctx context.Context, cmd *cobra.Command, log hclog.Logger, seed uint64) ([]string, error) {
	var raw []string

	if o.pool != "" {
		log.Info("reading pool", "source", o.pool)
		lines, err := source.Read(ctx, o.pool, source.Options{Stdin: cmd.InOrStdin()})
		if err != nil {
			return nil, err
		}
		raw = append(raw, lines...)
	}

	if o.imagePath != "" {
		colours, err := extractFromImage(ctx, log, newImageLoader(o.cacheImages), o.imagePath, o.imageColours, seed)
		if err != nil {
			return nil, err
		}
		for _, c := range colours {
			raw = append(raw, string(c))
		}
	}

	return raw, nil
}

func (o *generateOptions) writeReport(w io.Writer, scheme *base16.Scheme, data *render.Data) error {
	if o.format == "json" {
		b, err := render.SchemeJSON(data)
		if err != nil {
			return fmt.Errorf("failed to convert to JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}

	preview := o.preview || isTerminal(w)
	if preview {
		fmt.Fprint(w, formatSwatchStrip(data))
	}
	_, err := fmt.Fprint(w, formatSchemeReport(scheme, preview))
	return err
}

// extractFromImage clusters an image into n pool colours.
func extractFromImage(ctx context.Context, log hclog.Logger, loader image.Loader, path string, n int, seed uint64) ([]colour.Hex, error) {
	cfg := colour.ExtractorConfig{Algorithm: colour.AlgorithmKMeans, ColorCount: n}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	resolved, err := image.ResolveImagePath(path, rng.IntN)
	if err != nil {
		return nil, fmt.Errorf("invalid image path: %w", err)
	}

	log.Info("loading image", "path", resolved)
	img, err := loader.Load(ctx, resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}

	extractor, err := colour.NewExtractor(cfg.Algorithm, seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create extractor: %w", err)
	}
	palette, err := extractor.Extract(img, n)
	if err != nil {
		return nil, fmt.Errorf("failed to extract colours: %w", err)
	}
	log.Info("extracted colours", "count", palette.Len(), "algorithm", cfg.Algorithm)

	return palette.ToHex(), nil
}

// newImageLoader returns the image loader, optionally backed by the
// download cache.
func newImageLoader(useCache bool) image.Loader {
	loader := image.NewSmartLoader()
	if useCache {
		loader.WithCache(cache.Options{})
	}
	return loader
}

// renderTemplate reads a template file, renders data into it and writes the
// result to output, or to stdout when output is empty.
func renderTemplate(cmd *cobra.Command, log hclog.Logger, tmplPath, output string, syntax render.Syntax, data *render.Data, dryRun bool) error {
	tmpl, err := os.ReadFile(tmplPath) // #nosec G304 - User-specified template path, intended to be read
	if err != nil {
		return fmt.Errorf("failed to read template: %w", err)
	}

	rendered, err := render.Render(string(tmpl), syntax, data)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", tmplPath, err)
	}

	if output == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), rendered)
		return err
	}
	return writeOutput(log, output, []byte(rendered), dryRun)
}

// writeOutput writes b to path, creating parent directories.
func writeOutput(log hclog.Logger, path string, b []byte, dryRun bool) error {
	if dryRun {
		log.Info("dry run, not writing", "path", path, "bytes", len(b))
		return nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 - Output directories are user-facing config locations
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, b, 0o644); err != nil { // #nosec G306 - Rendered config files are not secret
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.Info("wrote file", "path", path)
	return nil
}
