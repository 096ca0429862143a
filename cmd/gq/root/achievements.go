package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"goalquest/internal/ui"
)

func newAchievementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "achievements",
		Aliases: []string{"ach"},
		Short:   "Show achievements and unlock progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			// Record anything newly crossed before displaying.
			if _, err := a.svc.EvaluateAchievements(ctx, a.userID); err != nil {
				return err
			}
			statuses, err := a.svc.Achievements(ctx, a.userID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, "Achievements"))
			unlocked := 0
			for _, st := range statuses {
				marker := ui.Muted.Render("🔒")
				title := ui.Muted.Render(st.Title)
				if st.Unlocked {
					marker = ui.IconTrophy
					title = ui.Gold.Render(st.Title)
					unlocked++
				}
				fmt.Fprintf(out, "%s %s %s %s\n", marker, title,
					ui.Muted.Render("["+st.Tier+"]"),
					ui.Muted.Render(fmt.Sprintf("— %s (+%d XP)", st.Description, st.XPReward)))
			}
			fmt.Fprintf(out, "\n%s\n", ui.LabelValue("Unlocked", fmt.Sprintf("%d/%d", unlocked, len(statuses))))
			return nil
		},
	}

	return cmd
}
