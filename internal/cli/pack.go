package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kallax/pkg/core/pack"
	kerrors "github.com/matzehuels/kallax/pkg/errors"
	"github.com/matzehuels/kallax/pkg/pipeline"
	"github.com/matzehuels/kallax/pkg/render"
)

// packOpts holds the command-line options of the pack command.
type packOpts struct {
	config  configFlags
	user    string
	formats string
	output  string
	columns int
	title   string
	noCache bool
	refresh bool
	browse  bool
}

// packCommand creates the pack command.
func (c *CLI) packCommand() *cobra.Command {
	var opts packOpts

	cmd := &cobra.Command{
		Use:   "pack [items.json]",
		Short: "Pack a collection into Kallax cubes",
		Long: `Pack board games into 13" x 13" Kallax cubes.

The collection is fetched from BoardGameGeek with --user, or read from an
items file written by "kallax fetch". Games without a selected version halt
the run; confirm to pack them with guessed sizes, or pass --yes.`,
		Example: `  kallax pack --user alice
  kallax pack alice.json -f svg,pdf,labels -o shelf
  kallax pack --user alice --sort rating:desc --sort name --group-expansions
  kallax pack --user alice --profile living-room.toml --browse`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config.build(cmd)
			if err != nil {
				return err
			}
			popts := pipeline.Options{
				Username: opts.user,
				Config:   cfg,
				Formats:  parseFormats(opts.formats),
				Render:   render.Options{Columns: opts.columns, Title: opts.title},
				Refresh:  opts.refresh,
				Logger:   c.Logger,
			}
			if len(args) == 1 {
				popts.ItemsFile = args[0]
			}
			if err := popts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runPack(cmd.Context(), popts, opts)
		},
	}

	opts.config.register(cmd)
	cmd.Flags().StringVarP(&opts.user, "user", "u", "", "BoardGameGeek username to fetch")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output formats: "+strings.Join(render.Formats, ", ")+" (default svg)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file or base name")
	cmd.Flags().IntVar(&opts.columns, "columns", render.DefaultColumns, "cubes per shelf row in drawings")
	cmd.Flags().StringVar(&opts.title, "title", "", "title of the drawings")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached collections and results")
	cmd.Flags().BoolVar(&opts.browse, "browse", false, "browse the cubes interactively afterwards")

	return cmd
}

// runPack executes the pipeline, asking to continue when versions are
// missing, and writes the outputs.
func (c *CLI) runPack(ctx context.Context, popts pipeline.Options, opts packOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := c.executeWithSpinner(ctx, runner, popts)
	if err != nil {
		return err
	}

	if result.Packing.Halted() {
		printMissingVersions(result.Packing.Games)
		if !interactive() {
			return kerrors.New(kerrors.ErrCodeMissingVersions,
				"%d games have no version selected; select versions on BGG or rerun with --yes",
				len(result.Packing.Games))
		}
		ok, err := confirmMissing(result.Packing.Games)
		if err != nil {
			return err
		}
		if !ok {
			printInfo("Cancelled")
			return nil
		}
		popts.Config.BypassVersionWarning = true
		if result, err = c.executeWithSpinner(ctx, runner, popts); err != nil {
			return err
		}
	}

	fallback := "kallax"
	if popts.Username != "" {
		fallback = sanitizeName(popts.Username)
	} else if popts.ItemsFile != "" {
		fallback = strings.TrimSuffix(filepath.Base(popts.ItemsFile), filepath.Ext(popts.ItemsFile))
	}
	paths, err := writeArtifacts(result.Artifacts, popts.Formats, opts.output, fallback)
	if err != nil {
		return err
	}

	printSuccess("Packed %s", popts.Source())
	printStats(result.Packing.Stats, result.CacheInfo.PackHit)
	printOversized(result.Packing.OversizedGames)
	for _, p := range paths {
		printFile(p)
	}

	if opts.browse && interactive() {
		_, err := tea.NewProgram(NewCubeBrowserModel(result.Packing)).Run()
		return err
	}
	return nil
}

func (c *CLI) executeWithSpinner(ctx context.Context, runner *pipeline.Runner, popts pipeline.Options) (*pipeline.Result, error) {
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Packing %s...", popts.Source()))
	popts.Progress = func(p pack.Progress) {
		if !p.Done {
			spinner.SetMessage(fmt.Sprintf("Packing... %d/%d games, %d cubes", p.Placed, p.Total, p.CubesOpened))
		}
	}
	spinner.Start()
	result, err := runner.Execute(ctx, popts)
	spinner.Stop()
	return result, err
}

// confirmMissing asks whether to pack with guessed sizes.
func confirmMissing(games []pack.MissingVersion) (bool, error) {
	final, err := tea.NewProgram(NewConfirmModel(games)).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ConfirmModel)
	return ok && m.Yes, nil
}

// interactive reports whether stdin is a terminal.
func interactive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
