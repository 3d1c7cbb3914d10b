package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kallax/pkg/config"
	"github.com/matzehuels/kallax/pkg/core/pack"
)

// profileCommand creates the profile command for packing profiles.
func (c *CLI) profileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Write or check packing profiles",
		Long: `A packing profile stores packing settings in a TOML, YAML or JSON file.
Pass it to "kallax pack --profile"; flags given on the command line win.`,
	}

	cmd.AddCommand(c.profileInitCommand())
	cmd.AddCommand(c.profileCheckCommand())

	return cmd
}

func (c *CLI) profileInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a profile with the default settings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "kallax.toml"
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.WriteProfile(path, pack.DefaultConfig()); err != nil {
				return err
			}
			printSuccess("Wrote default profile")
			printFile(path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func (c *CLI) profileCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <path>",
		Short: "Validate a profile and print the settings it yields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadProfile(args[0])
			if err != nil {
				return err
			}
			printSuccess("%s is valid", args[0])
			printKeyValue("stacking", string(cfg.Stacking))
			printKeyValue("sort", sortSummary(cfg))
			printKeyValue("backfill", fmt.Sprintf("%.0f%%", cfg.BackfillPercentage))
			printKeyValue("expansions", fmt.Sprintf("include=%t group=%t", cfg.IncludeExpansions, cfg.GroupExpansions))
			printKeyValue("series", fmt.Sprintf("group=%t", cfg.GroupSeries))
			printKeyValue("optimize", fmt.Sprintf("%t", cfg.OptimizeSpace))
			return nil
		},
	}
}

func sortSummary(cfg pack.Config) string {
	if len(cfg.Sort) == 0 {
		return "none"
	}
	s := ""
	for i, r := range cfg.Sort {
		if i > 0 {
			s += ", "
		}
		s += string(r.Field) + ":" + string(r.Order)
	}
	return s
}
