package cmd

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/marcus/overlay/internal/config"
	"github.com/marcus/overlay/pkg/overlay/animation"
	"github.com/marcus/overlay/pkg/tui/demo"
)

var (
	demoStrategy   kindFlag
	demoFullScreen bool
	demoNoBackdrop bool
	demoNoWelcome  bool
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Browse a sample file list and open dialogs and sheets over it",
	Long: `Opens an interactive file list. Press enter for the file's action menu,
d for a delete confirmation, s for a share sheet.

When --strategy is not given and stdin is a terminal, you are asked which
presentation the action menu should use.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		interactive := term.IsTerminal(int(os.Stdin.Fd()))
		if !interactive {
			return errors.New("demo needs an interactive terminal")
		}

		kind := demoStrategy.or(animation.Dialog)
		if !demoStrategy.set {
			picked, err := promptStrategy()
			if err != nil {
				return err
			}
			kind = picked
		}

		model := demo.New(demo.Options{
			Config:          demoConfig(),
			Strategy:        kind,
			BackdropDismiss: !demoNoBackdrop,
			Welcome:         !demoNoWelcome,
			Logger:          logger,
		})
		logger.Info("demo starting", "strategy", kind.String(), "full_screen", demoFullScreen)

		p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
		_, err := p.Run()
		return err
	},
}

// demoConfig returns the loaded config adjusted for terminal cells.
func demoConfig() config.Config {
	c := cfg
	if c.Profile != config.ProfileCells {
		fmt.Fprintf(os.Stderr, "Warning: profile %q is not measured in cells; using %q for the demo\n", c.Profile, config.ProfileCells)
		level := c.LogLevel
		c = config.Default()
		c.LogLevel = level
	}
	if demoFullScreen {
		c.Sheet.FullScreen = true
	}
	return c
}

func promptStrategy() (animation.Kind, error) {
	var choice string
	err := huh.NewSelect[string]().
		Title("Present the action menu as").
		Options(
			huh.NewOption("Dialog (centered, scales in)", animation.Dialog.String()),
			huh.NewOption("Action sheet (slides up, swipe to dismiss)", animation.Sheet.String()),
		).
		Value(&choice).
		Run()
	if err != nil {
		return 0, err
	}
	return animation.ParseKind(choice)
}

func init() {
	addStrategyFlag(demoCmd.Flags(), &demoStrategy, "action menu presentation: dialog or sheet")
	demoCmd.Flags().BoolVar(&demoFullScreen, "full-screen", false, "sheets fill the whole window")
	demoCmd.Flags().BoolVar(&demoNoBackdrop, "no-backdrop-dismiss", false, "clicks outside and esc do not dismiss")
	demoCmd.Flags().BoolVar(&demoNoWelcome, "no-welcome", false, "skip the welcome dialog")
	rootCmd.AddCommand(demoCmd)
}
