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

func newGoalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage long-term goals and their steps",
	}

	cmd.AddCommand(
		newGoalAddCmd(),
		newGoalListCmd(),
		newGoalStepCmd(),
		newGoalRmCmd(),
	)

	return cmd
}

func newGoalAddCmd() *cobra.Command {
	var (
		description string
		category    string
		difficulty  int
		xp          int
		stat        string
		weeks       int
		steps       []string
		plan        bool
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a goal with steps",
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

			in := engine.CreateGoalInput{
				Title:          args[0],
				Description:    description,
				Category:       category,
				Difficulty:     difficulty,
				XPReward:       xp,
				TargetStat:     stat,
				EstimatedWeeks: weeks,
			}
			for _, s := range steps {
				in.Steps = append(in.Steps, engine.GoalStepInput{Title: s})
			}

			if plan {
				adv := a.advisor()
				text := args[0]
				if description != "" {
					text += ": " + description
				}
				p := adv.PlanGoal(ctx, text, weeks)
				if !cmd.Flags().Changed("diff") {
					in.Difficulty = p.Difficulty
				}
				if !cmd.Flags().Changed("xp") {
					in.XPReward = p.TotalXP
				}
				if !cmd.Flags().Changed("category") {
					in.Category = p.Category
				}
				if !cmd.Flags().Changed("stat") {
					in.TargetStat = p.TargetStat
				}
				if !cmd.Flags().Changed("weeks") {
					in.EstimatedWeeks = p.EstimatedWeeks
				}
				if len(in.Steps) == 0 {
					for _, ps := range p.Steps {
						in.Steps = append(in.Steps, engine.GoalStepInput{
							Title:             ps.Title,
							Description:       ps.Description,
							EstimatedDuration: ps.EstimatedDuration,
							XPReward:          ps.XPReward,
						})
					}
				}
			}

			g, err := a.svc.CreateGoal(ctx, a.userID, in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Good.Render(ui.IconTarget+" Goal created"))
			fmt.Fprintln(out, ui.LabelValue("ID", g.ID))
			fmt.Fprintln(out, ui.LabelValue("Title", g.Title))
			fmt.Fprintln(out, ui.LabelValue("Completion bonus", fmt.Sprintf("%d XP", g.XPReward)))
			printGoalSteps(cmd, a, ctx, g.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "desc", "", "Description")
	cmd.Flags().StringVarP(&category, "category", "c", "personal", "Category")
	cmd.Flags().IntVarP(&difficulty, "diff", "d", 3, "Difficulty (1-6)")
	cmd.Flags().IntVar(&xp, "xp", 0, "Completion bonus XP")
	cmd.Flags().StringVarP(&stat, "stat", "s", "willpower", "Target stat")
	cmd.Flags().IntVarP(&weeks, "weeks", "w", 0, "Estimated duration in weeks")
	cmd.Flags().StringArrayVar(&steps, "step", nil, "Step title (repeatable, in order)")
	cmd.Flags().BoolVar(&plan, "plan", false, "Let the AI coach break the goal into steps")

	return cmd
}

func printGoalSteps(cmd *cobra.Command, a *app, ctx context.Context, goalID int64) {
	goals, err := a.svc.ListGoals(ctx, a.userID, true)
	if err != nil {
		return
	}
	for _, g := range goals {
		if g.Goal.ID != goalID {
			continue
		}
		for _, s := range g.Steps {
			fmt.Fprintf(cmd.OutOrStdout(), "  %d. [%d] %s %s\n", s.StepNumber, s.ID, s.Title,
				ui.Muted.Render(fmt.Sprintf("(%d xp)", s.XPReward)))
		}
	}
}

func newGoalListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List goals with progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			goals, err := a.svc.ListGoals(ctx, a.userID, all)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTarget, "Goals"))
			if len(goals) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No goals yet. Add one with 'gq goal add'."))
				return nil
			}
			for _, g := range goals {
				header := fmt.Sprintf("[%d] %s %s", g.Goal.ID, g.Goal.Title,
					ui.Muted.Render(fmt.Sprintf("(%s, %d%% — %d/%d steps)",
						g.Goal.Category, g.Progress.Percentage, g.Progress.Completed, g.Progress.Total)))
				if g.Goal.IsCompleted {
					header = ui.IconDone + " " + header
				}
				fmt.Fprintln(out, header)
				for _, s := range g.Steps {
					marker := "○"
					if s.IsCompleted {
						marker = "●"
					}
					fmt.Fprintf(out, "  %s %d. [%d] %s %s\n", marker, s.StepNumber, s.ID, s.Title,
						ui.Muted.Render(fmt.Sprintf("(%d xp)", s.XPReward)))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include completed goals")

	return cmd
}

func newGoalStepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "step",
		Short: "Work with goal steps",
	}

	done := &cobra.Command{
		Use:   "done <step-id>",
		Short: "Complete a goal step",
		Args:  requireIDArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, _ := strconv.ParseInt(args[0], 10, 64)
			res, err := a.svc.CompleteStep(ctx, id, a.userID)
			if err != nil {
				if errors.Is(err, engine.ErrAlreadyCompleted) {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" Step already completed."))
					return nil
				}
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Good.Render(fmt.Sprintf("%s Step complete: +%d XP", ui.IconBolt, res.StepXP)))
			if res.Level.LeveledUp {
				fmt.Fprintln(out, ui.BadgeLevelUp+" "+ui.Gold.Render(fmt.Sprintf("→ Level %d", res.Level.NewLevel)))
			}
			if res.GoalCompleted {
				fmt.Fprintln(out, ui.Gold.Render(fmt.Sprintf("%s Goal complete! Bonus +%d XP", ui.IconTrophy, res.GoalXP)))
				if res.GoalLevel != nil && res.GoalLevel.LeveledUp {
					fmt.Fprintln(out, ui.BadgeLevelUp+" "+ui.Gold.Render(fmt.Sprintf("→ Level %d", res.GoalLevel.NewLevel)))
				}
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

	cmd.AddCommand(done)

	return cmd
}

func newGoalRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a goal and its steps",
		Args:  requireIDArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, _ := strconv.ParseInt(args[0], 10, 64)
			if err := a.svc.DeleteGoal(ctx, id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("Goal deleted."))
			return nil
		},
	}

	return cmd
}
