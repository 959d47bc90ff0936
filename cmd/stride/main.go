// Command stride is the Stride client: it signs in to a Stride backend and shows
// and edits the wallet, gym log, todos and calendar from the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mmynk/stride/internal/app"
	"github.com/mmynk/stride/internal/config"
	"github.com/mmynk/stride/pkg/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// cli is the state shared by every subcommand of one invocation.
type cli struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	app    *app.App
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "stride",
		Short:         "Stride - finance, gym, todos and calendar in one tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init(cmd)
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", os.Getenv("STRIDE_CONFIG"), "path to a YAML config file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		c.registerCmd(),
		c.loginCmd(),
		c.logoutCmd(),
		c.statusCmd(),
		c.onboardCmd(),
		c.walletCmd(),
		c.gymCmd(),
		c.todoCmd(),
		c.calendarCmd(),
	)
	return root
}

func (c *cli) init(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	level := cfg.Logging.Level
	if c.verbose {
		level = "debug"
	}
	c.cfg = cfg
	c.logger = logging.New(logging.ParseLevel(level), cmd.ErrOrStderr())

	c.app, err = app.FromConfig(cfg, c.logger)
	if err != nil {
		return err
	}
	if _, err := c.app.Start(cmd.Context()); err != nil {
		c.logger.Warn("Could not resume session", "error", err)
	}
	return nil
}

var errNotSignedIn = errors.New("not signed in (run `stride login` or `stride register`)")

// requireSession fails commands that need a signed-in user.
func (c *cli) requireSession() error {
	if !c.app.Session.Authenticated() {
		return errNotSignedIn
	}
	return nil
}

type mounter interface {
	Mount(ctx context.Context) error
}

// mount loads the hooks a command renders.
func (c *cli) mount(cmd *cobra.Command, hooks ...mounter) error {
	if err := c.requireSession(); err != nil {
		return err
	}
	for _, h := range hooks {
		if err := h.Mount(cmd.Context()); err != nil {
			return err
		}
	}
	return nil
}

func out(cmd *cobra.Command) io.Writer { return cmd.OutOrStdout() }
