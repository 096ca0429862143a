package root

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"goalquest/internal/ui"
)

func newShopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "Spend gold and gems on rewards",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List available items",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			items, err := a.svc.ShopItems(ctx)
			if err != nil {
				return err
			}
			u, err := a.svc.GetUser(ctx, a.userID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconCoin, fmt.Sprintf("Shop — %s %d  %s %d", ui.IconCoin, u.Gold, ui.IconGem, u.Gems)))
			for _, it := range items {
				cost := ""
				if it.GoldCost > 0 {
					cost += fmt.Sprintf("%s %d ", ui.IconCoin, it.GoldCost)
				}
				if it.GemCost > 0 {
					cost += fmt.Sprintf("%s %d ", ui.IconGem, it.GemCost)
				}
				line := fmt.Sprintf("[%d] %s %s %s", it.ID, it.Name, ui.Muted.Render("("+it.Rarity+")"), cost)
				if it.LevelRequired > u.Level {
					line += ui.Muted.Render(fmt.Sprintf("(requires level %d)", it.LevelRequired))
				}
				fmt.Fprintln(out, line)
				if it.Description != nil {
					fmt.Fprintln(out, "    "+ui.Muted.Render(*it.Description))
				}
			}
			return nil
		},
	}

	buy := &cobra.Command{
		Use:   "buy <item-id>",
		Short: "Buy an item",
		Args:  requireIDArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, _ := strconv.ParseInt(args[0], 10, 64)
			res, err := a.svc.Purchase(ctx, a.userID, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Good.Render(ui.IconDone+" Purchased "+res.Item.Name))
			fmt.Fprintln(out, ui.LabelValue("Balance", fmt.Sprintf("%s %d  %s %d", ui.IconCoin, res.NewGold, ui.IconGem, res.NewGems)))
			return nil
		},
	}

	inv := &cobra.Command{
		Use:   "inventory",
		Short: "Show owned items",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			items, err := a.svc.Inventory(ctx, a.userID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Inventory"))
			if len(items) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("Empty. Visit 'gq shop list'."))
				return nil
			}
			for _, it := range items {
				fmt.Fprintf(out, "- %s ×%d %s\n", it.Name, it.Quantity, ui.Muted.Render("("+it.Rarity+")"))
			}
			return nil
		},
	}

	cmd.AddCommand(list, buy, inv)

	return cmd
}
