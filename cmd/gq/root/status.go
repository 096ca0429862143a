package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"goalquest/internal/engine"
	"goalquest/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show hunter profile, XP and streak",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			u, err := a.svc.GetUser(ctx, a.userID)
			if err != nil {
				return err
			}
			tier := engine.TierForLevel(u.Level)
			needed := engine.XPForLevel(u.Level)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSword, fmt.Sprintf("%s — Level %d", u.Name, u.Level)))
			fmt.Fprintln(out, ui.LabelValue("Tier", fmt.Sprintf("%s (rank %d)", tier.Name, tier.Rank)))
			fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("%d / %d", u.CurrentXP, needed)))
			fmt.Fprintln(out, ui.XPBar(u.CurrentXP, needed, 30))
			fmt.Fprintln(out, ui.LabelValue("Total XP", u.TotalXP))
			fmt.Fprintln(out, ui.LabelValue("Gold", fmt.Sprintf("%s %d", ui.IconCoin, u.Gold)))
			fmt.Fprintln(out, ui.LabelValue("Gems", fmt.Sprintf("%s %d", ui.IconGem, u.Gems)))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%s (best %d)", ui.StreakBadge(u.CurrentStreak), u.BestStreak)))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("📊 Stats"))
			fmt.Fprintf(out, "- 💪 Strength:     %d\n", u.Strength)
			fmt.Fprintf(out, "- 🧠 Intelligence: %d\n", u.Intelligence)
			fmt.Fprintf(out, "- ❤️ Vitality:     %d\n", u.Vitality)
			fmt.Fprintf(out, "- 🏃 Agility:      %d\n", u.Agility)
			fmt.Fprintf(out, "- 👁️ Sense:        %d\n", u.Sense)
			fmt.Fprintf(out, "- 🔥 Willpower:    %d\n", u.Willpower)

			return nil
		},
	}

	return cmd
}
