package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/stride/internal/calculator"
	"github.com/mmynk/stride/internal/models"
)

func (c *cli) calendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Calendar events",
	}
	cmd.AddCommand(c.calendarAddCmd(), c.calendarListCmd(), c.calendarDeleteCmd())
	return cmd
}

func (c *cli) calendarAddCmd() *cobra.Command {
	var title, description, date, recurrence string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an event",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.mount(cmd, c.app.Calendar); err != nil {
				return err
			}
			clock := c.app.Clock()
			when, err := parseWhen(date, clock.Time(), clock.Location)
			if err != nil {
				return err
			}
			e := &models.CalendarEvent{
				Title:       title,
				Description: description,
				EventDate:   when,
			}
			if recurrence != "" {
				r, err := models.ParseRecurrence(recurrence)
				if err != nil {
					return err
				}
				e.Recurrent, e.Recurrence = true, r
			}
			stored, err := c.app.Calendar.Add(cmd.Context(), e)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Added %q on %s (%s).\n", stored.Title, calculator.DateOf(stored.EventDate, clock.Location), stored.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "event title")
	cmd.Flags().StringVar(&description, "description", "", "details")
	cmd.Flags().StringVar(&date, "date", "", "when (default now)")
	cmd.Flags().StringVar(&recurrence, "repeat", "", "daily, weekly, bi-weekly, monthly or yearly")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func (c *cli) calendarListCmd() *cobra.Command {
	var date string
	var all bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the events of a day (default today)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.mount(cmd, c.app.Calendar); err != nil {
				return err
			}
			w := out(cmd)
			if all {
				for _, e := range c.app.Calendar.Events() {
					fmt.Fprintf(w, "%s %s%s  [%s]\n", calculator.DateOf(e.EventDate, c.app.Clock().Location), e.Title, repeatSuffix(e), e.ID)
				}
				return nil
			}
			day, err := parseDate(date, c.app.Clock().Today())
			if err != nil {
				return err
			}
			events := c.app.Calendar.EventsOn(day)
			if len(events) == 0 {
				fmt.Fprintf(w, "No events on %s.\n", day)
				return nil
			}
			fmt.Fprintln(w, day)
			for _, e := range events {
				fmt.Fprintf(w, "  %s%s  [%s]\n", e.Title, repeatSuffix(*e), e.ID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day to show, YYYY-MM-DD")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "list every event instead of one day")
	return cmd
}

func repeatSuffix(e models.CalendarEvent) string {
	if !e.Recurrent {
		return ""
	}
	return " (" + string(e.Recurrence) + ")"
}

func (c *cli) calendarDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <event-id>",
		Short: "Delete an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.mount(cmd, c.app.Calendar); err != nil {
				return err
			}
			if err := c.app.Calendar.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Deleted %s.\n", args[0])
			return nil
		},
	}
}
