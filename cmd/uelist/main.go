// Package main provides the CLI entrypoint for uelist.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/uelist/internal/config"
	"github.com/verte-zerg/uelist/internal/derive"
	"github.com/verte-zerg/uelist/internal/generator"
	"github.com/verte-zerg/uelist/internal/model"
	"github.com/verte-zerg/uelist/internal/stats"
	"github.com/verte-zerg/uelist/internal/store"
	"github.com/verte-zerg/uelist/internal/trace"
	"github.com/verte-zerg/uelist/internal/tui"
)

const (
	defaultCount    = 1000
	defaultOverscan = 5
	defaultTab      = "instructions"
)

var (
	exerciseCount     int
	exerciseOverscan  int
	exerciseTab       string
	exerciseTraceFile string
	exerciseNoTrace   bool
	exerciseNoRecord  bool

	deriveCount   int
	deriveQuery   string
	deriveMinEcts int

	runsVariant string
	runsLast    int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "uelist",
		Short:         "Large list render exercise",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runExerciseCmd,
	}

	rootCmd.Flags().IntVar(&exerciseCount, "count", defaultCount, "number of generated records")
	rootCmd.Flags().IntVar(&exerciseOverscan, "overscan", defaultOverscan, "rows realized beyond each edge of the optimized window")
	rootCmd.Flags().StringVar(&exerciseTab, "tab", defaultTab, "initial tab (instructions, naive, optimized)")
	rootCmd.Flags().StringVar(&exerciseTraceFile, "trace-file", "", "trace log path (default: data dir trace.log)")
	rootCmd.Flags().BoolVar(&exerciseNoTrace, "no-trace", false, "disable the trace log")
	rootCmd.Flags().BoolVar(&exerciseNoRecord, "no-record", false, "do not record runs")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDeriveCmd())
	rootCmd.AddCommand(newRunsCmd())

	return rootCmd
}

func runExerciseCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := resolveConfig(cmd, fileCfg.Exercise)
	if err := validateConfig(cfg); err != nil {
		return err
	}

	logger := zap.NewNop()
	if cfg.Trace {
		logger, err = trace.NewFileLogger(cfg.TraceFile)
		if err != nil {
			return fmt.Errorf("failed to open trace log: %w", err)
		}
		defer func() {
			_ = logger.Sync()
		}()
	}

	opts := tui.Options{Config: cfg, Logger: logger}
	if cfg.RecordRuns {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
		opts.Recorder = st
	}

	m := tui.NewModel(opts)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if err := m.Err(); err != nil {
		logErrln(err)
	}
	if cfg.Trace {
		logErrf("Trace written to %s\n", cfg.TraceFile)
	}
	return nil
}

// resolveConfig merges config file values under the explicitly set flags.
func resolveConfig(cmd *cobra.Command, file config.ExerciseConfig) model.Config {
	applyIntConfig(cmd, "count", &exerciseCount, file.Count)
	applyIntConfig(cmd, "overscan", &exerciseOverscan, file.Overscan)
	applyStringConfig(cmd, "tab", &exerciseTab, file.Tab)
	applyStringConfig(cmd, "trace-file", &exerciseTraceFile, file.TraceFile)
	applyNegatedBoolConfig(cmd, "no-trace", &exerciseNoTrace, file.Trace)
	applyNegatedBoolConfig(cmd, "no-record", &exerciseNoRecord, file.RecordRuns)

	traceFile := strings.TrimSpace(exerciseTraceFile)
	if traceFile == "" {
		traceFile = config.DefaultTracePath()
	}
	return model.Config{
		Count:      exerciseCount,
		Overscan:   exerciseOverscan,
		Tab:        strings.ToLower(strings.TrimSpace(exerciseTab)),
		Trace:      !exerciseNoTrace,
		TraceFile:  traceFile,
		RecordRuns: !exerciseNoRecord,
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newDeriveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Print filtered statistics without the TUI",
		Args:  cobra.NoArgs,
		RunE:  runDeriveCmd,
	}
	cmd.Flags().IntVar(&deriveCount, "count", defaultCount, "number of generated records")
	cmd.Flags().StringVar(&deriveQuery, "query", "", "case-insensitive title or code substring")
	cmd.Flags().IntVar(&deriveMinEcts, "min-ects", 0, "minimum ECTS")
	return cmd
}

func runDeriveCmd(cmd *cobra.Command, _ []string) error {
	if deriveCount < 0 {
		return fmt.Errorf("--count must be >= 0")
	}
	records := generator.Generate(deriveCount)
	criteria := model.Criteria{Query: deriveQuery, MinEcts: deriveMinEcts}
	filtered := derive.Filter(records, criteria)
	s := derive.ComputeStats(filtered, 0)
	if err := stats.RenderDerivation(cmd.OutOrStdout(), len(records), criteria, s, stats.TerminalWidth()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recorded list view runs",
		Args:  cobra.NoArgs,
		RunE:  runRunsCmd,
	}
	cmd.Flags().StringVar(&runsVariant, "variant", "", "variant filter (naive, optimized)")
	cmd.Flags().IntVar(&runsLast, "last", 0, "limit to last N runs")
	return cmd
}

func runRunsCmd(cmd *cobra.Command, _ []string) error {
	filter, err := runFilter(runsVariant, runsLast)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	report, err := stats.BuildReport(context.Background(), st, filter)
	if err != nil {
		return fmt.Errorf("failed to load runs: %w", err)
	}
	width := stats.TerminalWidth()
	out := cmd.OutOrStdout()
	if err := stats.RenderRuns(out, report.Runs, width); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderSummary(out, report, width); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func runFilter(variant string, last int) (model.RunFilter, error) {
	if last < 0 {
		return model.RunFilter{}, fmt.Errorf("--last must be >= 0")
	}
	v := model.Variant(strings.ToLower(strings.TrimSpace(variant)))
	switch v {
	case "", model.VariantNaive, model.VariantOptimized:
	default:
		return model.RunFilter{}, fmt.Errorf("unknown variant %q (expected naive or optimized)", variant)
	}
	return model.RunFilter{Variant: v, Last: last}, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

// applyNegatedBoolConfig fills a --no-x flag from a positive config key.
func applyNegatedBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = !*value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# uelist configuration
# Uncomment a value to enable it. CLI flags override config values.

[exercise]
# count = %d              # Number of generated records
# overscan = %d             # Rows realized beyond each edge of the optimized window
# tab = %q       # Initial tab: instructions, naive, optimized
# trace = true            # Write the trace log
# trace-file = %q
# record-runs = true      # Record list view runs in the database
`,
		defaultCount,
		defaultOverscan,
		defaultTab,
		config.DefaultTracePath(),
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Count < 0 {
		return fmt.Errorf("--count must be >= 0")
	}
	if cfg.Overscan < 0 {
		return fmt.Errorf("--overscan must be >= 0")
	}
	if _, ok := tui.TabIndex(cfg.Tab); !ok {
		return fmt.Errorf("unknown tab %q (expected instructions, naive or optimized)", cfg.Tab)
	}
	if cfg.Trace && cfg.TraceFile == "" {
		return fmt.Errorf("--trace-file must not be empty")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
