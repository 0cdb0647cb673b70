package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"calcdir/internal/browser"
	"calcdir/internal/catalog"
	"calcdir/internal/config"
	"calcdir/internal/logging"
	"calcdir/internal/nav"
	"calcdir/internal/view"
	"calcdir/internal/web"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app carries what every command needs after flags are parsed
type app struct {
	v          *viper.Viper
	configPath string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "calcdir",
		Short: "Browse the House of Calculators directory",
		Long: `calcdir lists calculators by category with search and load-more paging.
Run without a subcommand to start the interactive browser.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig()
		},
		RunE: a.runTUI,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default "+config.ConfigPath()+")")
	pf.String("catalog", "", "YAML catalog file (default: built-in catalog)")
	pf.String("base-url", "", "base URL calculator links are opened under")
	pf.Int("page-size", 0, "cards shown initially and per load-more")
	pf.Bool("debug", false, "enable debug logging")

	// Flags are bound to config keys; unset flags fall through to file and env.
	bindFlag(a.v, "catalog_path", pf.Lookup("catalog"))
	bindFlag(a.v, "base_url", pf.Lookup("base-url"))
	bindFlag(a.v, "page_size", pf.Lookup("page-size"))
	bindFlag(a.v, "debug", pf.Lookup("debug"))

	root.Flags().String("category", "", "start filtered by this category")
	root.Flags().String("opener", "", "command used to open calculators (default: auto-detect)")

	root.AddCommand(
		a.newServeCmd(),
		a.newListCmd(),
		a.newCategoriesCmd(),
		a.newCatalogCmd(),
		a.newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

func bindFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	_ = v.BindPFlag(key, flag)
}

func (a *app) loadConfig() error {
	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

func (a *app) runTUI(cmd *cobra.Command, args []string) error {
	logger, err := logging.NewFile(a.cfg.Debug, config.LogPath())
	if err != nil {
		return err
	}
	defer logger.Sync()

	opts := []Option{WithLogger(logger)}

	if category, _ := cmd.Flags().GetString("category"); category != "" {
		opts = append(opts, WithStart(nav.CategoryHref(category)))
	}

	openerCfg := browser.DefaultConfig()
	openerCfg.Command, _ = cmd.Flags().GetString("opener")
	if opener, err := browser.Detect(openerCfg); err != nil {
		logger.Warn("no browser opener", zap.Error(err))
	} else {
		opts = append(opts, WithOpener(opener))
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if a.cfg.Watch && a.cfg.CatalogPath != "" {
		w, err := catalog.NewWatcher(a.cfg.CatalogPath, logger)
		if err != nil {
			logger.Warn("catalog watch disabled", zap.Error(err))
		} else {
			defer w.Close()
			go w.Run(ctx)
			opts = append(opts, WithReloads(w.Updates()))
		}
	}

	m := New(a.cfg, opts...)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func (a *app) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the directory as a web page",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(a.cfg.Debug)
			if err != nil {
				return err
			}
			defer logger.Sync()

			c, err := catalog.Load(a.cfg.CatalogPath)
			if err != nil {
				return err
			}

			srv, err := web.New(web.Config{
				Catalog:   c,
				LinkFor:   a.cfg.CalculatorURL,
				PageSize:  a.cfg.PageSize,
				CacheSize: a.cfg.CacheSize,
				Logger:    logger,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if a.cfg.Watch && a.cfg.CatalogPath != "" {
				w, err := catalog.NewWatcher(a.cfg.CatalogPath, logger)
				if err != nil {
					logger.Warn("catalog watch disabled", zap.Error(err))
				} else {
					defer w.Close()
					go w.Run(ctx)
					go srv.Follow(ctx, w.Updates())
				}
			}

			return srv.ListenAndServe(ctx, a.cfg.Listen)
		},
	}

	cmd.Flags().String("listen", "", "listen address (default "+config.Default().Listen+")")
	cmd.Flags().Bool("watch", true, "reload the catalog file when it changes")
	cmd.Flags().Int("cache-size", 0, "rendered pages kept in memory")
	bindFlag(a.v, "listen", cmd.Flags().Lookup("listen"))
	bindFlag(a.v, "watch", cmd.Flags().Lookup("watch"))
	bindFlag(a.v, "cache_size", cmd.Flags().Lookup("cache-size"))
	return cmd
}

func (a *app) newListCmd() *cobra.Command {
	var (
		category string
		query    string
		count    int
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the calculators a page would show",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.Load(a.cfg.CatalogPath)
			if err != nil {
				return err
			}

			var cat *string
			if cmd.Flags().Changed("category") {
				cat = &category
			}
			st := view.Resolve(c, cat, query, count, view.WithPageSize(a.cfg.PageSize))

			if asJSON {
				return writeStateJSON(cmd.OutOrStdout(), st)
			}
			return writeStateTable(cmd.OutOrStdout(), st, a.cfg)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "filter by category")
	cmd.Flags().StringVarP(&query, "query", "q", "", "search titles and descriptions")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "show at least this many cards when unfiltered")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func writeStateJSON(w io.Writer, st view.ViewState) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(web.NewStateResponse(st))
}

func writeStateTable(w io.Writer, st view.ViewState, cfg *config.Config) error {
	if heading := st.Heading(); heading != "" {
		fmt.Fprintln(w, heading)
	}
	if st.Empty() {
		fmt.Fprintln(w, "No calculators found.")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "CATEGORY", "LINK")
	for _, calc := range st.Visible {
		t.Row(strconv.Itoa(calc.ID), calc.Icon+" "+calc.Title, calc.Category, cfg.CalculatorURL(calc.Link))
	}
	fmt.Fprintln(w, t.Render())

	if st.CanLoadMore {
		fmt.Fprintf(w, "Showing %d of %d (use --count %d for more)\n",
			len(st.Visible), st.Total, min(st.DisplayCount+cfg.PageSize, st.Total))
	}
	return nil
}

func (a *app) newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Print categories with calculator counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.Load(a.cfg.CatalogPath)
			if err != nil {
				return err
			}
			for _, cat := range c.Categories() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %d  %s\n", cat.Name, cat.Count, nav.CategoryHref(cat.Name))
			}
			return nil
		},
	}
}

func (a *app) newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Work with catalog files",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "export [path]",
		Short: "Write the current catalog as YAML (stdout without a path)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && a.cfg.CatalogPath == "" {
				_, err := cmd.OutOrStdout().Write(catalog.DefaultYAML())
				return err
			}
			c, err := catalog.Load(a.cfg.CatalogPath)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				data, err := os.ReadFile(a.cfg.CatalogPath)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			backup, err := catalog.BackupFile(args[0])
			if err != nil {
				return err
			}
			if backup != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Backed up previous catalog to %s\n", backup)
			}
			if err := catalog.WriteFile(args[0], c); err != nil {
				return fmt.Errorf("failed to write catalog: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d calculators to %s\n", c.Len(), args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate <path>",
		Short: "Check a catalog file for errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %d calculators in %d categories\n", c.Len(), len(c.Categories()))
			return nil
		},
	})

	return cmd
}

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configFile()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			if err := a.cfg.Save(path); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), a.configFile())
			return nil
		},
	}

	cmd.AddCommand(initCmd, pathCmd)
	return cmd
}

func (a *app) configFile() string {
	if a.configPath != "" {
		return a.configPath
	}
	return config.ConfigPath()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// Version needs no config.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "calcdir %s (built %s)\n", version, buildTime)
		},
	}
}
