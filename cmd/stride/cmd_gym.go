package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/stride/internal/calculator"
	"github.com/mmynk/stride/internal/models"
)

func (c *cli) gymCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gym",
		Short: "Exercise log and activity heatmap",
	}
	cmd.AddCommand(c.gymLogCmd(), c.gymListCmd(), c.gymDeleteCmd(), c.gymHeatmapCmd())
	return cmd
}

func (c *cli) gymLogCmd() *cobra.Command {
	var (
		e         models.Exercise
		typ, unit string
		at        string
	)
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log an exercise",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.mount(cmd, c.app.Health); err != nil {
				return err
			}
			wt, err := models.ParseWorkoutType(typ)
			if err != nil {
				return err
			}
			clock := c.app.Clock()
			if e.LoggedAt, err = parseWhen(at, clock.Time(), clock.Location); err != nil {
				return err
			}
			e.WorkoutType = wt
			e.WeightUnit = models.WeightUnit(unit)

			stored, err := c.app.Health.AddExercise(cmd.Context(), &e)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Logged %s %s (%s).\n", stored.WorkoutType, stored.Name, stored.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&typ, "type", "", "weights, cardio or mobility")
	cmd.Flags().StringVar(&e.Name, "name", "", "exercise name, e.g. Squat")
	cmd.Flags().IntVar(&e.Reps, "reps", 0, "repetitions")
	cmd.Flags().Float64Var(&e.Weight, "weight", 0, "weight lifted")
	cmd.Flags().StringVar(&unit, "unit", "", "kg, lbs or bodyweight (default kg)")
	cmd.Flags().Float64Var(&e.DurationMin, "duration", 0, "duration in minutes")
	cmd.Flags().Float64Var(&e.Intensity, "intensity", 0, "perceived intensity")
	cmd.Flags().StringVar(&at, "at", "", "when it happened (default now)")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (c *cli) gymListCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List logged exercises grouped by day, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.mount(cmd, c.app.Health); err != nil {
				return err
			}
			groups := c.app.Health.History(limit)
			w := out(cmd)
			if len(groups) == 0 {
				fmt.Fprintln(w, "No exercises logged yet.")
				return nil
			}
			for _, g := range groups {
				fmt.Fprintln(w, g.Date)
				for _, e := range g.Items {
					fmt.Fprintf(w, "  %-9s %-16s %s  [%s]\n", e.WorkoutType, e.Name, exerciseDetail(e), e.ID)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "show at most n records (0 for all)")
	return cmd
}

func exerciseDetail(e *models.Exercise) string {
	switch {
	case e.WorkoutType == models.Cardio || (e.DurationMin > 0 && e.Reps == 0):
		return fmt.Sprintf("%.0f min", e.DurationMin)
	case e.WeightUnit == models.Bodyweight:
		return fmt.Sprintf("%d reps bodyweight", e.Reps)
	default:
		return fmt.Sprintf("%d x %g %s", e.Reps, e.Weight, e.WeightUnit)
	}
}

func (c *cli) gymDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <exercise-id>",
		Short: "Delete a logged exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.mount(cmd, c.app.Health); err != nil {
				return err
			}
			if err := c.app.Health.DeleteExercise(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Deleted %s.\n", args[0])
			return nil
		},
	}
}

func (c *cli) gymHeatmapCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Show workout intensity per day",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.mount(cmd, c.app.Health); err != nil {
				return err
			}
			fmt.Fprint(out(cmd), renderHeatmap(c.app.Health.Heatmap(days)))
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", calculator.DefaultHeatmapDays, "number of days ending today")
	return cmd
}
