package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/stride/internal/models"
	"github.com/mmynk/stride/internal/session"
)

func (c *cli) registerCmd() *cobra.Command {
	var p session.RegisterParams
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Session.Register(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Welcome, %s! Run `stride onboard` to set up your wallet and goals.\n", p.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&p.Email, "email", "", "account email")
	cmd.Flags().StringVar(&p.Name, "name", "", "display name")
	cmd.Flags().StringVar(&p.Password, "password", "", "account password (at least 8 characters)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (c *cli) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Session.Login(cmd.Context(), email, password); err != nil {
				return err
			}
			p := c.app.Session.Profile()
			fmt.Fprintf(out(cmd), "Signed in as %s.\n", p.User.Email)
			if p.IsNewUser {
				fmt.Fprintln(out(cmd), "Setup is not finished: run `stride onboard`.")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireSession(); err != nil {
				return err
			}
			if err := c.app.Session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), "Signed out.")
			return nil
		},
	}
}

func (c *cli) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the signed-in user and today's summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := c.app.Session.Profile()
			w := out(cmd)
			if !p.Authenticated {
				fmt.Fprintln(w, "Not signed in.")
				return nil
			}
			if p.User != nil {
				fmt.Fprintf(w, "User:      %s <%s>\n", p.User.Name, p.User.Email)
			}
			fmt.Fprintf(w, "User ID:   %s\n", p.UserID)
			fmt.Fprintf(w, "Currency:  %s\n", p.Currency)
			fmt.Fprintf(w, "Theme:     %s\n", p.Theme)
			if p.IsNewUser {
				fmt.Fprintln(w, "Setup:     pending (run `stride onboard`)")
				return nil
			}
			if err := c.mount(cmd, c.app.Wallet, c.app.Health, c.app.Todos); err != nil {
				return err
			}
			wallet := c.app.Wallet
			fmt.Fprintf(w, "Balance:   %s\n", money(wallet.Symbol(), wallet.Balance()))
			fmt.Fprintf(w, "Today:     %s spent, %d exercises, %.0f cardio min\n",
				money(wallet.Symbol(), wallet.SpentToday()),
				len(c.app.Health.TodayExercises()),
				c.app.Health.CardioMinutesToday())
			fmt.Fprintf(w, "Todos:     %d pending\n", len(c.app.Todos.Pending()))
			return nil
		},
	}
}

func (c *cli) onboardCmd() *cobra.Command {
	var (
		balance, dailyBudget, savingsGoal, currency string
		calories, cardio                            float64
		macroUnit                                   string
	)
	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Set up the wallet and health goals of a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireSession(); err != nil {
				return err
			}
			wallet := &models.Wallet{Currency: currency}
			var errs []error
			var err error
			wallet.Balance, err = parseAmount(balance)
			errs = append(errs, err)
			wallet.DailyBudget, err = parseAmount(dailyBudget)
			errs = append(errs, err)
			wallet.SavingsGoal, err = parseAmount(savingsGoal)
			errs = append(errs, err)
			if err := errors.Join(errs...); err != nil {
				return err
			}

			profile := c.app.DefaultHealthProfile()
			if macroUnit != "" {
				unit, err := models.ParseMacroUnit(macroUnit)
				if err != nil {
					return err
				}
				profile = models.DefaultHealthProfile(profile.UserID, unit)
			}
			if cmd.Flags().Changed("calories") {
				profile.CalorieGoal = calories
			}
			if cmd.Flags().Changed("cardio") {
				profile.CardioGoal = cardio
			}

			if err := c.app.Session.Onboard(cmd.Context(), wallet, profile); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Setup complete. Balance: %s\n", money(c.app.Wallet.Symbol(), c.app.Wallet.Balance()))
			return nil
		},
	}
	cmd.Flags().StringVar(&balance, "balance", "0", "starting balance")
	cmd.Flags().StringVar(&dailyBudget, "daily-budget", "0", "planned spending per day")
	cmd.Flags().StringVar(&savingsGoal, "savings-goal", "0", "amount to save")
	cmd.Flags().StringVar(&currency, "currency", "", "ISO 4217 currency code (default: account currency)")
	cmd.Flags().Float64Var(&calories, "calories", 2000, "daily calorie goal")
	cmd.Flags().Float64Var(&cardio, "cardio", 30, "daily cardio goal in minutes")
	cmd.Flags().StringVar(&macroUnit, "macro-unit", "", "macro goal unit: percent or grams (default from config)")
	return cmd
}
