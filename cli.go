package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"pcqmdeck/buildinfo"
	"pcqmdeck/config"
	"pcqmdeck/database"
	"pcqmdeck/export"
	"pcqmdeck/i18n"
	"pcqmdeck/logger"
)

// Execute runs the CLI and exits non-zero on error
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// app holds state shared by subcommands after the persistent pre-run
type app struct {
	configPath string
	debug      bool
	cfg        config.Config
}

type generateOptions struct {
	output  string
	formats []string
	lang    string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var opts generateOptions

	cmd := &cobra.Command{
		Use:          "pcqm-deck",
		Short:        i18n.T("cmd.root.short"),
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd, &opts)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runGenerate(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a JSON config file")
	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "mirror the run log to stderr")
	addGenerateFlags(cmd, &opts)

	cmd.AddCommand(
		a.generateCmd(&opts),
		a.inspectCmd(),
		a.historyCmd(),
		a.dbCmd(),
		versionCmd(),
	)
	return cmd
}

func addGenerateFlags(cmd *cobra.Command, opts *generateOptions) {
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "presentation path (default "+config.DefaultOutput+")")
	cmd.Flags().StringSliceVarP(&opts.formats, "format", "f", nil, "extra formats to write: xlsx, docx, pdf (repeatable)")
	cmd.Flags().StringVar(&opts.lang, "lang", "", "console language: en or vi")
}

// load resolves configuration: defaults, config file, environment, then flags
func (a *app) load(cmd *cobra.Command, opts *generateOptions) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	if f := cmd.Flags().Lookup("output"); f != nil && f.Changed {
		cfg.Output = opts.output
	}
	if f := cmd.Flags().Lookup("format"); f != nil && f.Changed {
		cfg.Formats = opts.formats
	}
	if f := cmd.Flags().Lookup("lang"); f != nil && f.Changed {
		cfg.Language = opts.lang
	}
	if a.debug {
		cfg.DetailedLog = true
	}

	i18n.SetLanguage(i18n.ParseLanguage(cfg.Language))
	a.cfg = cfg
	return nil
}

func (a *app) generateCmd(opts *generateOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: i18n.T("cmd.generate.short"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runGenerate(cmd)
		},
	}
	addGenerateFlags(cmd, opts)
	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command) error {
	formats, err := export.ParseFormats(a.cfg.Formats)
	if err != nil {
		return err
	}

	req := GenerateRequest{
		Output:  a.cfg.Output,
		Formats: formats,
		Lang:    i18n.GetLanguage(),
		RunID:   uuid.New().String(),
	}

	log := a.openLog(cmd, req.RunID)
	defer log.Close()

	var history *database.HistoryService
	db, err := database.InitDB(a.cfg.DataDir)
	if err != nil {
		log.Logf("[HISTORY] disabled: %v", err)
	} else {
		defer db.Close()
		history = database.NewHistoryService(db)
	}

	result, err := NewDeckService(history, log).Generate(cmd.Context(), req)
	if err != nil {
		log.Logf("[GENERATE] failed: %v", err)
		return err
	}

	out := cmd.OutOrStdout()
	pptx, _ := result.Presentation()
	fmt.Fprintln(out, i18n.T("generate.saved", pptx.Path))
	fmt.Fprintln(out, i18n.T("generate.total_slides", result.SlideCount))
	for _, f := range result.Files {
		if f.Format == export.FormatPPTX {
			continue
		}
		fmt.Fprintln(out, i18n.T("generate.extra_file", strings.ToUpper(string(f.Format)), f.Path))
	}
	return nil
}

// openLog starts the per-run log file; detailed logging also mirrors it to
// stderr. Logging problems never stop a run.
func (a *app) openLog(cmd *cobra.Command, runID string) *logger.Logger {
	log := logger.NewLogger()
	if a.cfg.DetailedLog {
		log.SetMirror(cmd.ErrOrStderr())
	}
	if err := log.Init(a.cfg.LogDir(), runID); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}
	return log
}

func (a *app) inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.pptx>",
		Short: i18n.T("cmd.inspect.short"),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slides, err := export.Inspect(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, i18n.T("inspect.header", args[0], len(slides)))
			for _, s := range slides {
				fmt.Fprintln(out, i18n.T("inspect.slide", s.Number, strings.ReplaceAll(s.Title, "\n", " / ")))
			}
			return nil
		},
	}
}

func (a *app) historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: i18n.T("cmd.history.short"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := database.InitDB(a.cfg.DataDir)
			if err != nil {
				return err
			}
			defer db.Close()

			rows, err := database.NewHistoryService(db).List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			printHistory(cmd.OutOrStdout(), rows)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", database.DefaultListLimit, "number of entries to show")
	return cmd
}

func printHistory(w io.Writer, rows []database.Generation) {
	if len(rows) == 0 {
		fmt.Fprintln(w, i18n.T("history.empty"))
		return
	}
	fmt.Fprintln(w, i18n.T("history.header"))
	for _, g := range rows {
		ts := time.UnixMilli(g.CreatedAt).Format("2006-01-02 15:04:05")
		fmt.Fprintln(w, i18n.T("history.row", ts, g.Format, g.SlideCount, g.SizeBytes, g.OutputPath))
	}
}

func (a *app) dbCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: i18n.T("cmd.db.short"),
		Args:  cobra.NoArgs,
	}

	status := &cobra.Command{
		Use:   "status",
		Short: i18n.T("cmd.db.status"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := database.OpenDB(a.cfg.DataDir)
			if err != nil {
				return err
			}
			defer db.Close()

			versions, err := database.AppliedVersions(db)
			if err != nil {
				return err
			}
			parts := make([]string, len(versions))
			for i, v := range versions {
				parts[i] = strconv.Itoa(v)
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("db.status", strings.Join(parts, ", ")))
			return nil
		},
	}

	rollback := &cobra.Command{
		Use:   "rollback <version>",
		Short: i18n.T("cmd.db.rollback"),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid migration version %q", args[0])
			}
			db, err := database.OpenDB(a.cfg.DataDir)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.RollbackMigration(db, version); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("db.rolled_back", version))
			return nil
		},
	}

	cmd.AddCommand(status, rollback)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: i18n.T("cmd.version.short"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
			return nil
		},
	}
}
