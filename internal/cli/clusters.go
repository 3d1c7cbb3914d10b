package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kallax/pkg/core/group"
	kerrors "github.com/matzehuels/kallax/pkg/errors"
	kio "github.com/matzehuels/kallax/pkg/io"
	"github.com/matzehuels/kallax/pkg/render"
)

// clustersCommand creates the clusters command, which draws how games are
// grouped by expansion and series links.
func (c *CLI) clustersCommand() *cobra.Command {
	var (
		format     string
		output     string
		expansions bool
		series     bool
	)

	cmd := &cobra.Command{
		Use:   "clusters <items.json>",
		Short: "Show how expansions and series are grouped",
		Example: `  kallax clusters alice.json -o clusters.svg
  kallax clusters alice.json --format dot --series=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "dot" && format != "svg" {
				return kerrors.New(kerrors.ErrCodeInvalidFormat, "unsupported format %q (want dot or svg)", format)
			}
			items, err := kio.ImportItems(args[0])
			if err != nil {
				return err
			}

			opts := group.Options{Expansions: expansions, Series: series}
			dot := render.ClustersDOT(items, opts)
			data := []byte(dot)
			if format == "svg" {
				if data, err = render.ClustersSVG(cmd.Context(), dot); err != nil {
					return err
				}
			}

			if output == "" {
				_, err := os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			clusters := group.Clusters(items, group.Assign(items, opts))
			printSuccess("Found %d clusters in %d games", len(clusters), len(items))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "svg", "output format: dot or svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&expansions, "expansions", true, "link expansions to their base game")
	cmd.Flags().BoolVar(&series, "series", true, "link games sharing a series")

	return cmd
}
