package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/marcus/overlay/internal/geom"
	"github.com/marcus/overlay/internal/output"
	"github.com/marcus/overlay/pkg/overlay/alert"
	"github.com/marcus/overlay/pkg/overlay/animation"
	"github.com/marcus/overlay/pkg/tui/modal"
)

var (
	timelineStrategy kindFlag
	timelineWidth    int
	timelineHeight   int
	timelineSteps    int
	timelineActions  []string
	timelineTitle    string
	timelineBody     string
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Sample the entrance and exit animations of a strategy",
	Long: `Builds a surface with the given title, body and actions inside a
width x height container and prints frames sampled along the entrance and
exit timelines of the chosen strategy.`,
	Example: `  overlay timeline --strategy sheet --steps 8
  overlay timeline --actions positive,negative,neutral --body "Are you sure?"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		actions, err := parseActions(timelineActions)
		if err != nil {
			return err
		}
		content := modal.NewTextContent(timelineTitle, timelineBody)
		content.Plain = true
		surface, err := alert.New(content, actions, alert.WithMetrics(cfg.Metrics()))
		if err != nil {
			return err
		}

		w, h := timelineWidth, timelineHeight
		if w <= 0 || h <= 0 {
			tw, th := defaultCellWidth, 24
			if sw, sh, err := term.GetSize(int(os.Stdout.Fd())); err == nil && sw > 0 && sh > 0 {
				tw, th = sw, sh
			}
			w, h = orDefault(w, tw), orDefault(h, th)
		}

		strategy := cfg.Strategy(timelineStrategy.or(animation.Dialog))
		container := geom.R(0, 0, float64(w), float64(h))
		width := strategy.EntranceTimeline(container, container.Size).To.Rect.Size.W
		intrinsic := surface.IntrinsicSize(width)

		opts := output.TreeRenderOptions{ShowDetail: true}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s in %dx%d, surface %gx%g\n\n", strategy.Kind(), w, h, intrinsic.W, intrinsic.H)
		fmt.Fprintln(out, output.RenderTree(output.TimelineTree("entrance", strategy.EntranceTimeline(container, intrinsic), timelineSteps), opts))
		fmt.Fprintln(out)
		fmt.Fprintln(out, output.RenderTree(output.TimelineTree("exit", strategy.ExitTimeline(container, intrinsic), timelineSteps), opts))
		return nil
	},
}

// orDefault returns v, or def when v is not positive.
func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func init() {
	addStrategyFlag(timelineCmd.Flags(), &timelineStrategy, "dialog or sheet (default dialog)")
	timelineCmd.Flags().IntVar(&timelineWidth, "width", 0, "container width (default terminal width)")
	timelineCmd.Flags().IntVar(&timelineHeight, "height", 0, "container height (default terminal height)")
	timelineCmd.Flags().IntVar(&timelineSteps, "steps", 4, "samples per timeline, not counting the start")
	timelineCmd.Flags().StringSliceVar(&timelineActions, "actions", []string{"positive", "neutral"}, "action categories")
	timelineCmd.Flags().StringVar(&timelineTitle, "title", "Title", "surface title")
	timelineCmd.Flags().StringVar(&timelineBody, "body", strings.Repeat("Body text. ", 6), "surface body")
	rootCmd.AddCommand(timelineCmd)
}
