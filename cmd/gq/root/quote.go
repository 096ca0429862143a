package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"goalquest/internal/ui"
)

func newQuoteCmd() *cobra.Command {
	var traditions []string

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Show a random wisdom quote",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			q, err := a.svc.RandomQuote(ctx, traditions)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if q == nil {
				fmt.Fprintln(out, ui.Muted.Render("No quotes match."))
				return nil
			}
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Wisdom"))
			fmt.Fprintf(out, "%q\n", q.Text)
			attribution := q.Tradition
			if q.Author != nil {
				attribution = *q.Author
			}
			fmt.Fprintln(out, ui.Muted.Render("— "+attribution))
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&traditions, "tradition", "t", nil, "Filter by tradition (repeatable)")

	return cmd
}
