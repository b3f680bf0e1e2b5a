package cli

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/autobase16/internal/colour"
	"github.com/jmylchreest/autobase16/internal/image"
)

type extractOptions struct {
	global *globalOptions

	colours int
	format  string
	output  string
	seed    uint64
	preview bool
	cache   bool
}

func newExtractCmd(global *globalOptions) *cobra.Command {
	o := &extractOptions{global: global}

	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract a colour pool from an image",
		Long: `Extract a colour pool from an image using k-means clustering.

The output is a pool file (one hex colour per line, most dominant first) that
can be edited by hand and passed to 'autobase16 generate --pool'.

Supported image formats: JPEG, PNG, GIF, WebP

Examples:
  # Extract 32 colours (default) from an image
  autobase16 extract wallpaper.jpg

  # Extract 48 colours and save them as a pool file
  autobase16 extract -c 48 -o pool.txt wallpaper.png

  # Output as JSON with cluster weights
  autobase16 extract --format json wallpaper.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: o.run,
	}

	cmd.Flags().IntVarP(&o.colours, "colours", "c", colour.DefaultExtractorConfig().ColorCount, "number of colours to extract (1-256)")
	cmd.Flags().StringVarP(&o.format, "format", "f", "hex", "output format (hex, json)")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().Uint64Var(&o.seed, "seed", 0, "seed for cluster initialisation (default: time based)")
	cmd.Flags().BoolVar(&o.preview, "preview", false, "show colour previews in terminal")
	cmd.Flags().BoolVar(&o.cache, "cache", false, "keep downloaded images in the user cache directory")

	return cmd
}

func (o *extractOptions) run(cmd *cobra.Command, args []string) error {
	log := o.global.logger(cmd.ErrOrStderr())

	cfg := colour.ExtractorConfig{Algorithm: colour.AlgorithmKMeans, ColorCount: o.colours}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	seed := o.seed
	if !cmd.Flags().Changed("seed") {
		seed = uint64(time.Now().UnixNano())
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	path, err := image.ResolveImagePath(args[0], rand.New(rand.NewPCG(seed, seed)).IntN)
	if err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	log.Info("loading image", "path", path)
	img, err := newImageLoader(o.cache).Load(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	bounds := img.Bounds()
	log.Info("image loaded", "width", bounds.Dx(), "height", bounds.Dy())

	extractor, err := colour.NewExtractor(cfg.Algorithm, seed)
	if err != nil {
		return fmt.Errorf("failed to create extractor: %w", err)
	}
	palette, err := extractor.Extract(img, o.colours)
	if err != nil {
		return fmt.Errorf("failed to extract colours: %w", err)
	}
	log.Info("extracted colours", "count", palette.Len())

	var out string
	switch o.format {
	case "hex":
		out = formatPool(palette, o.preview)
	case "json":
		b, err := palette.ToJSON()
		if err != nil {
			return fmt.Errorf("failed to convert to JSON: %w", err)
		}
		out = string(b) + "\n"
	default:
		return fmt.Errorf("unsupported format: %s (supported: hex, json)", o.format)
	}

	if o.output == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	}
	return writeOutput(log, o.output, []byte(out), false)
}

// formatPool formats a palette as a pool file.
func formatPool(palette *colour.Palette, preview bool) string {
	var b strings.Builder
	for _, h := range palette.ToHex() {
		if preview {
			rgb, _ := h.RGB()
			b.WriteString(colour.ColourPreview(rgb, 8) + " ")
		}
		b.WriteString(h.String())
		b.WriteString("\n")
	}
	return b.String()
}
