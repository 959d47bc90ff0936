package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/stride/internal/models"
)

func (c *cli) walletCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Balance, spending and transactions",
	}
	cmd.AddCommand(c.walletShowCmd(), c.walletAddCmd(), c.walletDeleteCmd(), c.walletHistoryCmd())
	return cmd
}

func (c *cli) walletShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show balance, today's spending and weekly savings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.mount(cmd, c.app.Wallet); err != nil {
				return err
			}
			h := c.app.Wallet
			w := out(cmd)
			if !h.HasWallet() {
				fmt.Fprintln(w, "No wallet yet: run `stride onboard`.")
				return nil
			}
			sym := h.Symbol()
			savings := h.WeeklySavings()
			fmt.Fprintf(w, "Balance:        %s\n", money(sym, h.Balance()))
			fmt.Fprintf(w, "Spent today:    %s\n", money(sym, h.SpentToday()))
			fmt.Fprintf(w, "Weekly savings: %s of %s\n", money(sym, savings.Current), money(sym, savings.Max))
			if goal := h.Wallet().SavingsGoal; goal.IsPositive() {
				fmt.Fprintf(w, "Savings goal:   %s\n", money(sym, goal))
			}
			return nil
		},
	}
}

func (c *cli) walletAddCmd() *cobra.Command {
	var typ, amount, category, description, at string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense or income",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.mount(cmd, c.app.Wallet); err != nil {
				return err
			}
			t, err := models.ParseTransactionType(typ)
			if err != nil {
				return err
			}
			amt, err := parseAmount(amount)
			if err != nil {
				return err
			}
			clock := c.app.Clock()
			loggedAt, err := parseWhen(at, clock.Time(), clock.Location)
			if err != nil {
				return err
			}
			tx, err := c.app.Wallet.AddTransaction(cmd.Context(), &models.Transaction{
				Category:    category,
				Description: description,
				Amount:      amt,
				Type:        t,
				LoggedAt:    loggedAt,
			})
			if err != nil {
				return err
			}
			sym := c.app.Wallet.Symbol()
			fmt.Fprintf(out(cmd), "Added %s %s (%s). Balance: %s\n", tx.Type, money(sym, tx.Amount), tx.ID, money(sym, c.app.Wallet.Balance()))
			return nil
		},
	}
	cmd.Flags().StringVar(&typ, "type", "debit", "debit (expense) or credit (income)")
	cmd.Flags().StringVar(&amount, "amount", "", "amount, never negative")
	cmd.Flags().StringVar(&category, "category", "", "category, e.g. Food")
	cmd.Flags().StringVar(&description, "description", "", "short label, e.g. Lunch")
	cmd.Flags().StringVar(&at, "at", "", "when it happened (default now)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func (c *cli) walletDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <transaction-id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.mount(cmd, c.app.Wallet); err != nil {
				return err
			}
			if err := c.app.Wallet.DeleteTransaction(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Deleted %s. Balance: %s\n", args[0], money(c.app.Wallet.Symbol(), c.app.Wallet.Balance()))
			return nil
		},
	}
}

func (c *cli) walletHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List transactions grouped by day, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.mount(cmd, c.app.Wallet); err != nil {
				return err
			}
			groups := c.app.Wallet.History(limit)
			w := out(cmd)
			if len(groups) == 0 {
				fmt.Fprintln(w, "No transactions yet.")
				return nil
			}
			sym := c.app.Wallet.Symbol()
			for _, g := range groups {
				fmt.Fprintln(w, g.Date)
				for _, tx := range g.Items {
					sign := "-"
					if tx.Type == models.Credit {
						sign = "+"
					}
					fmt.Fprintf(w, "  %s%-10s %-12s %s  [%s]\n", sign, money(sym, tx.Amount), tx.Category, tx.Description, tx.ID)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "show at most n records (0 for all)")
	return cmd
}
