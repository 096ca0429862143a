package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"goalquest/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "gq",
	Short:         "Goal Quest — local-first RPG progression tracker",
	Long:          "Goal Quest is a local-first CLI/TUI habit and goal tracker with RPG progression mechanics.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newStatusCmd(),
		newHabitCmd(),
		newGoalCmd(),
		newTodayCmd(),
		newAchievementsCmd(),
		newShopCmd(),
		newQuoteCmd(),
		newCoachCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
