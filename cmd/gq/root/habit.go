package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"goalquest/internal/engine"
	"goalquest/internal/ui"
)

func newHabitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Manage daily habits",
	}

	cmd.AddCommand(
		newHabitAddCmd(),
		newHabitListCmd(),
		newHabitDoneCmd(),
		newHabitRmCmd(),
	)

	return cmd
}

func newHabitAddCmd() *cobra.Command {
	var (
		description string
		category    string
		difficulty  int
		xp          int
		stat        string
		frequency   string
		priority    bool
		assess      bool
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a habit",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
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

			in := engine.CreateHabitInput{
				Title:       args[0],
				Description: description,
				Category:    category,
				Difficulty:  difficulty,
				XPReward:    xp,
				TargetStat:  stat,
				Frequency:   frequency,
				IsPriority:  priority,
			}

			if assess {
				adv := a.advisor()
				text := args[0]
				if description != "" {
					text += ": " + description
				}
				as := adv.AssessHabit(ctx, text)
				if !cmd.Flags().Changed("diff") {
					in.Difficulty = as.Difficulty
				}
				if !cmd.Flags().Changed("xp") {
					in.XPReward = as.XPReward
				}
				if !cmd.Flags().Changed("category") {
					in.Category = as.Category
				}
				if !cmd.Flags().Changed("stat") {
					in.TargetStat = as.TargetStat
				}
				in.AITip = as.Tip
			}

			h, err := a.svc.CreateHabit(ctx, a.userID, in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Good.Render(ui.IconDone+" Habit created"))
			fmt.Fprintln(out, ui.LabelValue("ID", h.ID))
			fmt.Fprintln(out, ui.LabelValue("Title", h.Title))
			fmt.Fprintln(out, ui.LabelValue("Category", h.Category))
			fmt.Fprintln(out, ui.LabelValue("Difficulty", ui.DifficultyBadge(h.Difficulty, engine.Difficulty(h.Difficulty).Name())))
			fmt.Fprintln(out, ui.LabelValue("XP", h.XPReward))
			if h.AITip != nil {
				fmt.Fprintln(out, ui.Muted.Render("💡 "+*h.AITip))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "desc", "", "Description")
	cmd.Flags().StringVarP(&category, "category", "c", "personal", "Category")
	cmd.Flags().IntVarP(&difficulty, "diff", "d", 3, "Difficulty (1-6)")
	cmd.Flags().IntVar(&xp, "xp", 0, "XP reward (default by difficulty)")
	cmd.Flags().StringVarP(&stat, "stat", "s", "willpower", "Target stat")
	cmd.Flags().StringVar(&frequency, "frequency", "daily", "Frequency (daily|weekly)")
	cmd.Flags().BoolVar(&priority, "priority", false, "Pin to top of the list")
	cmd.Flags().BoolVar(&assess, "assess", false, "Let the AI coach suggest difficulty, XP, category and stat")

	return cmd
}

func newHabitListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			habits, err := a.svc.ListHabits(ctx, a.userID, !all)
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
			fmt.Fprintln(out, ui.Heading(ui.IconLoop, "Habits"))
			if len(habits) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No habits yet. Add one with 'gq habit add'."))
				return nil
			}
			for _, h := range habits {
				marker := "  "
				if done[h.ID] {
					marker = ui.IconDone
				}
				line := fmt.Sprintf("%s [%d] %s %s %s", marker, h.ID, h.Title,
					ui.Muted.Render(fmt.Sprintf("(%s, %d xp)", h.Category, h.XPReward)),
					ui.StreakBadge(h.Streak))
				if h.IsPriority {
					line += " " + ui.Gold.Render("★")
				}
				if !h.IsActive {
					line += " " + ui.Muted.Render("(archived)")
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include archived habits")

	return cmd
}

func newHabitDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Complete a habit for today",
		Args:  requireIDArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, _ := strconv.ParseInt(args[0], 10, 64)
			res, err := a.svc.CompleteHabit(ctx, id, a.userID)
			if err != nil {
				if errors.Is(err, engine.ErrAlreadyCompleted) {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" Already completed today."))
					return nil
				}
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Good.Render(fmt.Sprintf("%s +%d XP", ui.IconBolt, res.XPEarned)))
			if res.StreakBonus > 0 {
				fmt.Fprintln(out, ui.LabelValue("Streak bonus", fmt.Sprintf("+%d XP", res.StreakBonus)))
			}
			fmt.Fprintln(out, ui.LabelValue("Gold", fmt.Sprintf("%s +%d", ui.IconCoin, res.GoldEarned)))
			fmt.Fprintln(out, ui.LabelValue("Streak", ui.StreakBadge(res.NewStreak)))
			if res.Level.LeveledUp {
				fmt.Fprintln(out, ui.BadgeLevelUp+" "+ui.Gold.Render(fmt.Sprintf("→ Level %d", res.Level.NewLevel)))
			}

			unlocked, err := a.svc.EvaluateAchievements(ctx, a.userID)
			if err != nil {
				return err
			}
			for _, ach := range unlocked {
				fmt.Fprintln(out, ui.Gold.Render(fmt.Sprintf("%s Achievement unlocked: %s (+%d XP)", ui.IconTrophy, ach.Title, ach.XPReward)))
			}
			return nil
		},
	}

	return cmd
}

func newHabitRmCmd() *cobra.Command {
	var archive bool

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete (or archive) a habit",
		Args:  requireIDArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, _ := strconv.ParseInt(args[0], 10, 64)
			if archive {
				if err := a.svc.ArchiveHabit(ctx, id); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("Habit archived."))
				return nil
			}
			if err := a.svc.DeleteHabit(ctx, id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("Habit deleted."))
			return nil
		},
	}

	cmd.Flags().BoolVar(&archive, "archive", false, "Archive instead of deleting")

	return cmd
}

func requireIDArg(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("id is required")
	}
	if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
		return errors.New("id must be an integer")
	}
	return nil
}
