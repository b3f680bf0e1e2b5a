package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/autobase16/internal/base16"
	"github.com/jmylchreest/autobase16/internal/render"
)

type renderOptions struct {
	global *globalOptions

	scheme   string
	template string
	output   string
	syntax   string
	dryRun   bool
}

func newRenderCmd(global *globalOptions) *cobra.Command {
	o := &renderOptions{global: global}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a saved base16 scheme into a template",
		Long: `Render a base16 scheme file (as written by 'generate --save-scheme') into a
template without selecting colours again.

Examples:
  autobase16 render --scheme auto.yaml --template base16.vim.mustache -o colors/auto.vim`,
		Args: cobra.NoArgs,
		RunE: o.run,
	}

	cmd.Flags().StringVarP(&o.scheme, "scheme", "s", "", "base16 scheme YAML file (required)")
	cmd.Flags().StringVarP(&o.template, "template", "t", "", "template file to render (required)")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&o.syntax, "syntax", string(render.SyntaxMustache), "template syntax (mustache, go)")
	cmd.Flags().BoolVar(&o.dryRun, "dry-run", false, "render without writing files")
	_ = cmd.MarkFlagRequired("scheme")
	_ = cmd.MarkFlagRequired("template")

	return cmd
}

func (o *renderOptions) run(cmd *cobra.Command, args []string) error {
	log := o.global.logger(cmd.ErrOrStderr())

	syntax, err := render.ParseSyntax(o.syntax)
	if err != nil {
		return err
	}

	b, err := os.ReadFile(o.scheme) // #nosec G304 - User-specified scheme path, intended to be read
	if err != nil {
		return fmt.Errorf("failed to read scheme: %w", err)
	}
	meta, colours, err := render.ParseSchemeYAML(b)
	if err != nil {
		return err
	}

	scheme, err := base16.SchemeFromColours(colours)
	if err != nil {
		return fmt.Errorf("invalid scheme %s: %w", o.scheme, err)
	}

	data, err := render.NewData(scheme, meta)
	if err != nil {
		return err
	}
	return renderTemplate(cmd, log, o.template, o.output, syntax, data, o.dryRun)
}
