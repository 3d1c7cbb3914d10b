package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	kio "github.com/matzehuels/kallax/pkg/io"
	"github.com/matzehuels/kallax/pkg/pipeline"
	"github.com/matzehuels/kallax/pkg/render"
)

// renderCommand creates the render command, which draws a saved result.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formats string
		output  string
		columns int
		title   string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "render <result.json>",
		Short: "Render a saved packing result",
		Long: `Render a packing result written by "kallax pack -f json" into other
formats without packing again.`,
		Example: `  kallax render alice.json -f pdf,labels
  kallax render alice.json -f svg --columns 5 -o shelf.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := kio.ImportResult(args[0])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := pipeline.Options{
				Formats: parseFormats(formats),
				Render:  render.Options{Columns: columns, Title: title},
				Logger:  c.Logger,
			}
			prog := newProgress(c.Logger)
			artifacts, cached, err := runner.RenderWithCacheInfo(cmd.Context(), res, opts)
			if err != nil {
				return err
			}
			prog.done("Rendered " + strings.Join(opts.Formats, ", "))

			fallback := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			paths, err := writeArtifacts(artifacts, opts.Formats, output, fallback)
			if err != nil {
				return err
			}
			printSuccess("Rendered %d cubes", len(res.Cubes))
			printStats(res.Stats, cached)
			for _, p := range paths {
				printFile(p)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&formats, "format", "f", "", "output formats: "+strings.Join(render.Formats, ", ")+" (default svg)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file or base name")
	cmd.Flags().IntVar(&columns, "columns", render.DefaultColumns, "cubes per shelf row in drawings")
	cmd.Flags().StringVar(&title, "title", "", "title of the drawings")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
