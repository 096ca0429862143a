package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"goalquest/internal/advisor"
	"goalquest/internal/ui"
)

func newCoachCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coach <message>",
		Short: "Ask the AI coach for guidance",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("message is required")
			}
			return nil
		},
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

			adv := a.advisor()
			reply := adv.Chat(ctx, strings.Join(args, " "), advisor.Profile{
				Name:   u.Name,
				Level:  u.Level,
				Streak: u.CurrentStreak,
			})

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Coach"))
			fmt.Fprintln(out, reply)
			if !adv.Available() {
				fmt.Fprintln(out, ui.Muted.Render("(offline guidance; set OPENAI_API_KEY for the full coach)"))
			}
			return nil
		},
	}

	return cmd
}
