package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/JackWReid/tvpick/internal/app"
	"github.com/JackWReid/tvpick/internal/channel"
	"github.com/JackWReid/tvpick/internal/config"
	"github.com/JackWReid/tvpick/internal/logging"
	"github.com/JackWReid/tvpick/internal/terminal"
	"github.com/JackWReid/tvpick/internal/ui"
)

var Version = "dev"

// exitCancelled matches what a shell reports for a process ended by SIGINT.
const exitCancelled = 130

func main() {
	cmd := newRootCmd(os.Stdin, os.Stdout)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		if errors.Is(err, app.ErrCancelled) {
			os.Exit(exitCancelled)
		}
		fmt.Fprintf(os.Stderr, "tvpick: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdin *os.File, stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tvpick [dir]",
		Short:         "Pick one line from stdin, or one path below dir, with a fuzzy finder",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if version, _ := cmd.Flags().GetBool("version"); version {
				fmt.Fprintf(cmd.OutOrStdout(), "tvpick version %s\n", Version)
				return nil
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			return run(cmd.Context(), cfg, dir, stdin, stdout)
		},
	}

	flags := cmd.Flags()
	flags.BoolP("inverted", "i", false, "Put the input line at the top and list results downwards")
	flags.Int("height", 0, "Picker height in rows, 0 for the whole terminal")
	flags.StringP("prompt", "p", "", "Prompt shown before the query")
	flags.Int("threads", 0, "Number of matcher goroutines")
	flags.String("config", "", "Path to a TOML config file")
	flags.String("log-file", "", "Write debug logs to this file")
	flags.String("log-level", "", "Log level: trace, debug, info, warn, error")
	flags.BoolP("version", "v", false, "Show version information")
	return cmd
}

// loadConfig layers flags over the config file and environment.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if flags.Changed("inverted") {
		cfg.Inverted, _ = flags.GetBool("inverted")
	}
	if flags.Changed("height") {
		cfg.Height, _ = flags.GetInt("height")
	}
	if flags.Changed("prompt") {
		cfg.Prompt, _ = flags.GetString("prompt")
	}
	if flags.Changed("threads") {
		cfg.Threads, _ = flags.GetInt("threads")
	}
	if flags.Changed("log-file") {
		cfg.LogFile, _ = flags.GetString("log-file")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openChannel lists dir when one is given, otherwise reads stdin.
func openChannel(dir string, stdin *os.File, opts ...channel.Option) (channel.Channel, error) {
	if dir != "" {
		return channel.NewFiles(dir, opts...)
	}
	if !terminal.IsPiped(stdin) {
		return nil, terminal.ErrNotPiped
	}
	return channel.NewStdin(stdin, opts...)
}

func run(ctx context.Context, cfg config.Config, dir string, stdin *os.File, stdout io.Writer) error {
	log, closer, err := logging.New(cfg.LogFile, cfg.Level())
	if err != nil {
		return err
	}
	defer closer.Close()

	ch, err := openChannel(dir, stdin, channel.WithWorkers(cfg.Threads), channel.WithLogger(log))
	if err != nil {
		return err
	}
	log.Info().Int("candidates", ch.TotalCount()).Msg("loaded")

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer stop()

	t, err := terminal.NewTerminal()
	if err != nil {
		return err
	}

	a := app.New(t, ch, app.Options{
		Prompt:   cfg.Prompt,
		MaxRows:  cfg.Height,
		Inverted: cfg.Inverted,
		Styles:   ui.NewStyles(lipgloss.NewRenderer(t.Output()), cfg.Theme),
		Log:      log,
	})
	entry, err := a.Run(ctx)
	t.Restore()
	if err != nil {
		log.Info().Err(err).Msg("finished without a selection")
		return err
	}

	_, err = fmt.Fprintln(stdout, entry.Name)
	return err
}
