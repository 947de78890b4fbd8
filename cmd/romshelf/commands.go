package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/romshelf/internal/adapter"
	"github.com/mmcdole/romshelf/internal/search"
	"github.com/mmcdole/romshelf/internal/tui"
	"github.com/mmcdole/romshelf/internal/tui/styles"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// errNotTerminal is returned when the TUI is started without a terminal
var errNotTerminal = errors.New("romshelf needs an interactive terminal; try `romshelf search <query>`")

const defaultWidth = 80

func newRootCmd() *cobra.Command {
	var configDir string

	rootCmd := &cobra.Command{
		Use:           "romshelf [route]",
		Short:         "Browse a ROM hacking archive from the terminal",
		Long:          "romshelf browses games, ROM hacks, translations, utilities, documents and homebrew\nfrom a read-only archive API. An optional route such as /games?platform=3 opens\nthat page first.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := "/"
			if len(args) == 1 {
				start = args[0]
			}
			return runTUI(configDir, start)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default "+adapter.DefaultConfigDir()+")")

	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the on-disk cache",
	}
	cacheCmd.AddCommand(newCacheClearCmd(&configDir))

	rootCmd.AddCommand(
		newSearchCmd(&configDir),
		newHealthCmd(&configDir),
		newConfigCmd(&configDir),
		cacheCmd,
	)
	return rootCmd
}

func runTUI(configDir, start string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNotTerminal
	}

	rt, err := newRuntime(configDir)
	if err != nil {
		return err
	}
	defer rt.Close()

	cfg := rt.cfg
	rt.logger.Info("starting romshelf", "version", Version, "server", cfg.Server.URL)

	env := &tui.Env{
		Services:       rt.services,
		Search:         rt.search,
		Timeout:        cfg.Server.Timeout,
		Debounce:       cfg.Search.Debounce,
		HealthInterval: cfg.Cache.HealthInterval,
		MinQuery:       cfg.Search.MinQuery,
		Logger:         rt.logger,
		SaveSession: func(s tui.Session) error {
			cfg.UI.Theme = s.Theme
			cfg.UI.Sidebar = s.Sidebar
			return adapter.SaveConfig(cfg, configDir)
		},
	}
	// With remote logging on, the recovery log record is forwarded already
	if !cfg.Logging.Remote {
		env.Reporter = rt.client
	}

	session := tui.Session{Theme: cfg.UI.Theme, Sidebar: cfg.UI.Sidebar}
	model := tui.NewModel(env, session, start)

	p := tea.NewProgram(model, tea.WithAltScreen())

	rt.logger.Info("starting TUI")
	if _, err := p.Run(); err != nil {
		rt.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}
	rt.logger.Info("shutting down")
	return nil
}

func newSearchCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search games, hacks and translations at once",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(*configDir)
			if err != nil {
				return err
			}
			defer rt.Close()

			query := strings.Join(args, " ")
			res := rt.search.Run(cmd.Context(), query)
			if res.NeedMoreInput {
				return fmt.Errorf("query must be at least %d characters", rt.cfg.Search.MinQuery)
			}
			printSearch(cmd.OutOrStdout(), res, outputWidth(cmd.OutOrStdout()))
			return nil
		},
	}
}

// outputWidth returns the terminal width of w, or a default for pipes
func outputWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultWidth
}

func printSearch(w io.Writer, res search.Result, width int) {
	if res.Empty() {
		fmt.Fprintf(w, "No results for %q\n", res.Query)
		return
	}
	for _, slot := range res.Slots {
		fmt.Fprintf(w, "%s (%d of %d)\n", slot.Slot.Label(), len(slot.Items), slot.Total)
		if slot.Err != nil {
			fmt.Fprintf(w, "  search failed: %v\n", slot.Err)
			continue
		}
		if len(slot.Items) == 0 {
			fmt.Fprintln(w, "  no matches")
			continue
		}
		for _, s := range slot.Items {
			route := s.Route
			text := s.Title
			if s.Subtitle != "" {
				text += " · " + s.Subtitle
			}
			col := max(width-len(route)-4, 10)
			fmt.Fprintf(w, "  %s  %s\n", styles.Pad(styles.Truncate(text, col), col), route)
		}
	}
}

func newHealthCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the archive is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(*configDir)
			if err != nil {
				return err
			}
			defer rt.Close()

			res := rt.services.Health.Check(cmd.Context())
			if res.Failed() {
				return fmt.Errorf("%s unreachable: %w", rt.cfg.Server.URL, res.Err)
			}
			h := res.Data
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "server:   %s\n", rt.cfg.Server.URL)
			fmt.Fprintf(out, "status:   %s\n", h.Status)
			fmt.Fprintf(out, "version:  %s\n", h.Version)
			fmt.Fprintf(out, "database: %s\n", h.Database)
			if !h.Healthy() {
				return errors.New("archive is degraded")
			}
			return nil
		},
	}
}

func newConfigCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configDir)
			if err != nil {
				return err
			}
			data, err := cfg.YAML()
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newCacheClearCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the lookup snapshot and other cached data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configDir)
			if err != nil {
				return err
			}
			if err := adapter.ClearCache(cfg.Cache.Dir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", cfg.Cache.Dir)
			return nil
		},
	}
}
