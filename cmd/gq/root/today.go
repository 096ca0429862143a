package root

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"goalquest/internal/ui"
)

func newTodayCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's checklist and recent activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			habits, err := a.svc.ListHabits(ctx, a.userID, true)
			if err != nil {
				return err
			}
			ids, err := a.svc.TodayCompletions(ctx, a.userID)
			if err != nil {
				return err
			}
			done := map[int64]bool{}
			for _, id := range ids {
				done[id] = true
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Today"))
			completed := 0
			for _, h := range habits {
				marker := "○"
				if done[h.ID] {
					marker = ui.IconDone
					completed++
				}
				fmt.Fprintf(out, "%s [%d] %s %s\n", marker, h.ID, h.Title,
					ui.Muted.Render(fmt.Sprintf("(%d xp)", h.XPReward)))
			}
			if len(habits) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No habits yet. Add one with 'gq habit add'."))
				return nil
			}
			fmt.Fprintf(out, "\n%s\n", ui.LabelValue("Done", fmt.Sprintf("%d/%d", completed, len(habits))))

			stats, err := a.svc.Stats(ctx, a.userID, days)
			if err != nil {
				return err
			}
			if len(stats.Daily) > 0 {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("📈 Last %d days", days)))
				for _, d := range stats.Daily {
					fmt.Fprintf(out, "%s  %s %d  %s\n", d.Date,
						ui.Muted.Render("completions:"), d.Count,
						ui.Muted.Render(fmt.Sprintf("%d xp", d.XP)))
				}
			}
			if len(stats.ByCategory) > 0 {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.H2.Render("🗂 By category"))
				cats := make([]string, 0, len(stats.ByCategory))
				for c := range stats.ByCategory {
					cats = append(cats, c)
				}
				sort.Strings(cats)
				for _, c := range cats {
					fmt.Fprintf(out, "- %s: %d\n", c, stats.ByCategory[c])
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "History window in days")

	return cmd
}
