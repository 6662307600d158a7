// Package main provides the CLI entrypoint for typedrill.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/mkurev/typedrill/internal/config"
	"github.com/mkurev/typedrill/internal/content"
	"github.com/mkurev/typedrill/internal/model"
	"github.com/mkurev/typedrill/internal/server"
	"github.com/mkurev/typedrill/internal/stats"
	"github.com/mkurev/typedrill/internal/statsui"
	"github.com/mkurev/typedrill/internal/store"
	"github.com/mkurev/typedrill/internal/text"
	"github.com/mkurev/typedrill/internal/tui"
)

const (
	defaultWords       = 50
	defaultDuration    = 60
	defaultCurveWindow = 10
	defaultAddr        = ":3000"
	defaultLogLevel    = "info"
)

var (
	practiceMode     string
	practiceLesson   string
	practiceTest     string
	practiceWords    int
	practiceDuration int
	practiceWordList string

	serveAddr      string
	servePublicDir string
	serveLogLevel  string

	seedFile string

	statsFilter      string
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsPlain       bool

	dbPath string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typedrill",
		Short:         "Typing trainer with lessons, tests, and timed practice",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the SQLite database (default: XDG data dir)")

	rootCmd.Flags().StringVar(&practiceMode, "mode", string(model.ModeWords), "practice mode: lesson, test, words, or time")
	rootCmd.Flags().StringVar(&practiceLesson, "lesson", "", "lesson guid to start from (mode lesson)")
	rootCmd.Flags().StringVar(&practiceTest, "test", "", "test guid to run (mode test)")
	rootCmd.Flags().IntVar(&practiceWords, "words", defaultWords, "word count (mode words)")
	rootCmd.Flags().IntVar(&practiceDuration, "time", defaultDuration, "duration in seconds (mode time)")
	rootCmd.Flags().StringVar(&practiceWordList, "word-list", content.DefaultWordList, "word list for assembled practice")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newSeedCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func resolveDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	return config.DefaultDBPath()
}

func openStore() (*store.Store, error) {
	st, err := store.Open(resolveDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		logErrf("failed to close db: %v\n", err)
	}
}

// ensureContent seeds the bundled lessons, tests, and word lists on a
// fresh database so that the first run works without an explicit seed.
func ensureContent(ctx context.Context, st *store.Store) error {
	lessons, err := st.ListLessons(ctx)
	if err != nil {
		return fmt.Errorf("failed to list lessons: %w", err)
	}
	if len(lessons) > 0 {
		return nil
	}
	c, err := store.DefaultContent()
	if err != nil {
		return fmt.Errorf("failed to load bundled content: %w", err)
	}
	if err := st.Seed(ctx, c); err != nil {
		return fmt.Errorf("failed to seed content: %w", err)
	}
	return nil
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "mode", &practiceMode, fileCfg.Practice.Mode)
	applyIntConfig(cmd, "words", &practiceWords, fileCfg.Practice.Words)
	applyIntConfig(cmd, "time", &practiceDuration, fileCfg.Practice.Duration)
	applyStringConfig(cmd, "word-list", &practiceWordList, fileCfg.Practice.WordList)

	if practiceWords <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	if practiceDuration <= 0 {
		return fmt.Errorf("--time must be > 0")
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	if err := ensureContent(ctx, st); err != nil {
		return err
	}

	asm := text.NewAssembler(rand.New(rand.NewSource(time.Now().UnixNano())))
	catalog := content.NewCatalog(st, asm)
	catalog.UseWordList(practiceWordList)

	provide, err := buildProvider(ctx, catalog)
	if err != nil {
		return err
	}

	m, err := tui.NewModel(st, provide)
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func buildProvider(ctx context.Context, catalog *content.Catalog) (tui.SetupProvider, error) {
	switch practiceMode {
	case string(model.ModeLesson):
		return lessonProvider(ctx, catalog)
	case string(model.ModeTest):
		return testProvider(ctx, catalog)
	case string(model.ModeWords):
		return func(ctx context.Context) (content.Setup, error) {
			return catalog.WordsSession(ctx, practiceWords)
		}, nil
	case string(model.ModeTime):
		return func(ctx context.Context) (content.Setup, error) {
			return catalog.TimedSession(ctx, practiceDuration)
		}, nil
	default:
		return nil, fmt.Errorf("unknown mode %q (use lesson, test, words, or time)", practiceMode)
	}
}

// lessonProvider walks the lesson sequence, wrapping around at the end.
func lessonProvider(ctx context.Context, catalog *content.Catalog) (tui.SetupProvider, error) {
	lessons, err := catalog.Lessons(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load lessons: %w", err)
	}
	if len(lessons) == 0 {
		return nil, fmt.Errorf("no lessons available (run: typedrill seed)")
	}
	idx := 0
	if practiceLesson != "" {
		found := false
		for i, l := range lessons {
			if l.GUID == practiceLesson {
				idx = i
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("lesson %q not found", practiceLesson)
		}
	}
	return func(_ context.Context) (content.Setup, error) {
		l := lessons[idx%len(lessons)]
		idx++
		return catalog.LessonSession(l)
	}, nil
}

func testProvider(ctx context.Context, catalog *content.Catalog) (tui.SetupProvider, error) {
	if practiceTest == "" {
		return nil, fmt.Errorf("--test is required in test mode")
	}
	tests, err := catalog.Tests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tests: %w", err)
	}
	for _, tt := range tests {
		if tt.GUID == practiceTest {
			chosen := tt
			return func(ctx context.Context) (content.Setup, error) {
				return catalog.TestSession(ctx, chosen)
			}, nil
		}
	}
	return nil, fmt.Errorf("test %q not found", practiceTest)
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the content and results HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	cmd.Flags().StringVar(&serveAddr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&servePublicDir, "public-dir", "", "static frontend directory")
	cmd.Flags().StringVar(&serveLogLevel, "log-level", defaultLogLevel, "log level: debug, info, warn, or error")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "addr", &serveAddr, fileCfg.Server.Addr)
	applyStringConfig(cmd, "public-dir", &servePublicDir, fileCfg.Server.PublicDir)
	applyStringConfig(cmd, "log-level", &serveLogLevel, fileCfg.Server.LogLevel)

	level, err := parseLogLevel(serveLogLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}),
	))

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	if err := ensureContent(context.Background(), st); err != nil {
		return err
	}

	srv := server.New(st, servePublicDir)
	slog.Info("listening", "addr", serveAddr)
	if err := srv.Listen(serveAddr); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load lessons, tests, and word lists into the database",
		Args:  cobra.NoArgs,
		RunE:  runSeedCmd,
	}
	cmd.Flags().StringVar(&seedFile, "file", "", "content JSON file (default: bundled content)")
	return cmd
}

func runSeedCmd(_ *cobra.Command, _ []string) error {
	var c store.Content
	var err error
	if seedFile != "" {
		data, rerr := os.ReadFile(seedFile)
		if rerr != nil {
			return fmt.Errorf("failed to read content file: %w", rerr)
		}
		c, err = store.ParseContent(data)
	} else {
		c, err = store.DefaultContent()
	}
	if err != nil {
		return fmt.Errorf("failed to parse content: %w", err)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	if err := st.Seed(context.Background(), c); err != nil {
		return fmt.Errorf("failed to seed content: %w", err)
	}
	logErrf("Seeded %d lessons, %d tests, %d word lists\n", len(c.Lessons), len(c.Tests), len(c.Lists))
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show result stats",
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsFilter, "filter", string(model.FilterAll), "result filter: all, lessons, or tests")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N results")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a plain report instead of the TUI")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var filter model.ResultFilter
	switch statsFilter {
	case string(model.FilterAll):
		filter = model.FilterAll
	case string(model.FilterLessons):
		filter = model.FilterLessons
	case string(model.FilterTests):
		filter = model.FilterTests
	default:
		return fmt.Errorf("invalid --filter value %q (use all, lessons, or tests)", statsFilter)
	}

	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	cfg := model.StatsConfig{
		Filter:      filter,
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	if statsPlain {
		report, err := stats.BuildReport(context.Background(), st, cfg)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		return stats.RenderReport(cmd.OutOrStdout(), report, cfg.CurveWindow, false)
	}

	m := statsui.NewModel(st, cfg)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
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
	editCmd := exec.Command(parts[0], append(parts[1:], path)...)
	editCmd.Stdin = os.Stdin
	editCmd.Stdout = os.Stdout
	editCmd.Stderr = os.Stderr
	if err := editCmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typedrill configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# mode = "words"                      # Default practice mode
# words = %d                          # Word count for words mode
# duration = %d                       # Seconds for time mode
# word-list = %q  # Word pool for assembled practice

[server]
# addr = %q                       # Listen address
# public-dir = ""                     # Static frontend directory
# log-level = %q                  # debug, info, warn, or error
`,
		defaultWords,
		defaultDuration,
		content.DefaultWordList,
		defaultAddr,
		defaultLogLevel,
	)
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

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
