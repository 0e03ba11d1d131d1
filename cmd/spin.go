package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/plexroulette/roulette"
)

var (
	spinLibraries []string
	spinCount     int
	spinDetails   bool
	spinSummary   bool
)

// spinCmd represents the spin command
var spinCmd = &cobra.Command{
	Use:   "spin",
	Short: "Pick something random to watch",
	Long: `Pick one or more random titles from your Plex libraries.

Libraries default to roulette.libraries from the config, or every section
when none are configured. The filter defaults to roulette.default_filter.

Examples:
  plexroulette spin
  plexroulette spin --library 1 --filter 'not Watched and Year >= 2010'
  plexroulette spin --preset short --count 3`,
	Args: cobra.NoArgs,
	RunE: runSpin,
}

func init() {
	rootCmd.AddCommand(spinCmd)

	spinCmd.Flags().StringSliceVarP(&spinLibraries, "library", "l", nil, "library section ids to pick from")
	spinCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	spinCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	spinCmd.Flags().IntVarP(&spinCount, "count", "n", 0, "number of titles to pick (default roulette.count)")
	spinCmd.Flags().BoolVar(&spinDetails, "details", true, "show item details")
	spinCmd.Flags().BoolVar(&spinSummary, "summary", false, "show the summary of each pick")
}

func runSpin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	match, description, err := buildFilter(presets, filterExpr, preset, cfg.Roulette.DefaultFilter)
	if err != nil {
		return err
	}

	libraries := spinLibraries
	if len(libraries) == 0 {
		libraries = cfg.Roulette.Libraries
	}

	count := cfg.Roulette.Count
	if cmd.Flags().Changed("count") {
		if spinCount < 1 {
			return fmt.Errorf("--count must be at least 1")
		}
		count = spinCount
	}

	token, err := authToken(ctx)
	if err != nil {
		return err
	}

	logger.Info().
		Strs("libraries", libraries).
		Str("filter", description).
		Int("count", count).
		Msg("Spinning")

	picked, err := operations.Spin(ctx, token, roulette.SpinOptions{
		LibraryIDs: libraries,
		Filter:     match,
		Count:      count,
	})
	if errors.Is(err, roulette.ErrNoCandidates) {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing matches the filter, try a broader one.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), operations.Formatter().FormatSpin(picked, roulette.FormatOptions{
		ShowDetails: spinDetails,
		ShowSummary: spinSummary,
	}))
	return nil
}
