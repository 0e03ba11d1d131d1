package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/plexroulette/roulette"
)

// sectionsCmd represents the sections command
var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List the library sections of the server",
	Args:  cobra.NoArgs,
	RunE:  runSections,
}

// libraryCmd represents the library command
var libraryCmd = &cobra.Command{
	Use:   "library <id>...",
	Short: "List the items of one or more libraries",
	Long: `List the items of the given library sections, optionally narrowed down
by a filter expression or a preset from the config.

Examples:
  plexroulette library 1
  plexroulette library 1 2 --filter 'not Watched and Duration < 100'
  plexroulette library 1 --preset short --details`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLibrary,
}

var libraryDetails bool

func init() {
	rootCmd.AddCommand(sectionsCmd)
	rootCmd.AddCommand(libraryCmd)

	libraryCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	libraryCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	libraryCmd.Flags().BoolVar(&libraryDetails, "details", false, "show item details")
}

func runSections(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	token, err := authToken(ctx)
	if err != nil {
		return err
	}

	sections, err := operations.Sections(ctx, token)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), operations.Formatter().FormatSections(sections))
	return nil
}

func runLibrary(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Only --filter and --preset apply when listing
	match, description, err := buildFilter(presets, filterExpr, preset, "")
	if err != nil {
		return err
	}

	token, err := authToken(ctx)
	if err != nil {
		return err
	}

	logger.Info().Strs("libraries", args).Str("filter", description).Msg("Listing library items")

	items, err := operations.Search(ctx, token, args, match)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), operations.Formatter().FormatItemList(items, roulette.FormatOptions{
		ShowDetails: libraryDetails,
	}))
	return nil
}
