package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/marcus/overlay/internal/config"
	"github.com/marcus/overlay/internal/output"
	"github.com/marcus/overlay/pkg/overlay/action"
	"github.com/marcus/overlay/pkg/overlay/layout"
)

const (
	defaultCellWidth  = 80
	defaultPointWidth = 320
)

var (
	layoutWidth   float64
	layoutProfile string
)

var layoutCmd = &cobra.Command{
	Use:   "layout [category...]",
	Short: "Print the frames the layout engine assigns to a list of actions",
	Long: `Lays out one action per category argument (positive, negative, neutral,
positive-reversed) and prints the frames in display order.

With no --width, cell profiles use the terminal width and point profiles
use 320.`,
	Example: `  overlay layout neutral positive negative
  overlay layout --profile points --width 375 positive neutral`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		actions, err := parseActions(args)
		if err != nil {
			return err
		}

		metrics, err := layoutMetrics(layoutProfile)
		if err != nil {
			return err
		}
		width := layoutWidth
		if width <= 0 {
			width = defaultWidth(layoutProfile)
		}

		sorted := action.Sort(actions)
		res := layout.New(metrics).Layout(sorted, width)
		fmt.Fprintln(cmd.OutOrStdout(), output.RenderTree(output.LayoutTree(sorted, res), output.TreeRenderOptions{ShowDetail: true}))
		return nil
	},
}

// parseActions builds one action per category name, titled after the
// category and its position.
func parseActions(names []string) ([]*action.Action, error) {
	actions := make([]*action.Action, 0, len(names))
	for i, name := range names {
		c, err := action.ParseCategory(name)
		if err != nil {
			return nil, err
		}
		actions = append(actions, action.New(fmt.Sprintf("%s %d", c, i+1), c))
	}
	return actions, nil
}

// layoutMetrics resolves the metrics for profile, or the loaded config's
// when profile is empty.
func layoutMetrics(profile string) (layout.Metrics, error) {
	if profile == "" || profile == cfg.Profile {
		return cfg.Metrics(), nil
	}
	c, err := config.ForProfile(profile)
	if err != nil {
		return layout.Metrics{}, err
	}
	return c.Metrics(), nil
}

func defaultWidth(profile string) float64 {
	if profile == "" {
		profile = cfg.Profile
	}
	if profile == config.ProfilePoints {
		return defaultPointWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return float64(w)
	}
	return defaultCellWidth
}

func init() {
	layoutCmd.Flags().Float64Var(&layoutWidth, "width", 0, "hosting width")
	layoutCmd.Flags().StringVar(&layoutProfile, "profile", "", "metrics profile: cells or points (default from config)")
	rootCmd.AddCommand(layoutCmd)
}
