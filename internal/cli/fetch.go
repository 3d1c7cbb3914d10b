package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kallax/pkg/core/pack"
	kio "github.com/matzehuels/kallax/pkg/io"
	"github.com/matzehuels/kallax/pkg/pipeline"
)

// fetchCommand creates the fetch command, which saves a collection as an
// items file for later packing.
func (c *CLI) fetchCommand() *cobra.Command {
	var (
		output       string
		noCache      bool
		refresh      bool
		noExpansions bool
		statuses     []string
	)

	cmd := &cobra.Command{
		Use:   "fetch <username>",
		Short: "Save a BoardGameGeek collection as an items file",
		Long: `Fetch a BoardGameGeek collection with box sizes for every owned version
and save it as JSON. The file can be edited and passed to "kallax pack".`,
		Example: `  kallax fetch alice
  kallax fetch alice --status own,wishlist=exclude -o alice.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := pack.DefaultConfig()
			cfg.IncludeExpansions = !noExpansions
			if len(statuses) > 0 {
				parsed, err := parseStatuses(statuses)
				if err != nil {
					return err
				}
				cfg.Statuses = parsed
			}

			opts := pipeline.Options{
				Username: args[0],
				Config:   cfg,
				Refresh:  refresh,
				Logger:   c.Logger,
			}
			if err := opts.ValidateForFetch(); err != nil {
				return err
			}
			if err := opts.ValidateForPack(); err != nil {
				return err
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(c.Logger)
			spinner := newSpinnerWithContext(cmd.Context(), fmt.Sprintf("Fetching %s's collection...", opts.Username))
			spinner.Start()
			items, cached, err := runner.FetchWithCacheInfo(cmd.Context(), opts)
			spinner.Stop()
			if err != nil {
				return err
			}

			if output == "" {
				output = sanitizeName(opts.Username) + ".json"
			}
			if err := kio.ExportItems(output, opts.Username, items); err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Fetched %d games", len(items)))

			printSuccess("Saved %d games", len(items))
			if cached {
				printDetail("from cache, use --refresh to fetch again")
			}
			printFile(output)
			printNewline()
			printNextStep("Pack them", "kallax pack "+output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <username>.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore the cached collection")
	cmd.Flags().BoolVar(&noExpansions, "no-expansions", false, "leave expansions out")
	cmd.Flags().StringSliceVar(&statuses, "status", nil, "status filter, e.g. own or fortrade=exclude (repeatable)")

	return cmd
}
