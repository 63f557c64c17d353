package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/abdul-hamid-achik/matchspec/packages/core/config"
	"github.com/abdul-hamid-achik/matchspec/packages/core/runner"
	"github.com/abdul-hamid-achik/matchspec/packages/core/scenario"
	"github.com/abdul-hamid-achik/matchspec/packages/history"
	"github.com/abdul-hamid-achik/matchspec/packages/output"
)

var runCmd = &cobra.Command{
	Use:   "run <file|directory>",
	Short: "Run suites from matchspec files",
	Long: `Run suites defined in .matchspec.yaml files through the full
set-up / body / tear-down / cleanup lifecycle.

Examples:
  matchspec run suite.yaml
  matchspec run ./suites/ --name "lifecycle-*"
  matchspec run suite.yaml --output junit --output-file report.xml
  matchspec run ./suites/ --watch
  matchspec run suite.yaml --history runs.db`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCommand,
}

const (
	// WatchRerunInterval throttles re-runs triggered by file watch events
	WatchRerunInterval = 300 * time.Millisecond
)

var (
	nameFlag        string
	verboseFlag     int // 0=off, 1=-v, 2=-vv
	quietFlag       bool
	bailFlag        bool
	noColorFlag     bool
	outputFlag      string
	outputFileFlag  string
	parallelFlag    bool
	concurrencyFlag int
	watchFlag       bool
	historyFlag     string
	configFlag      string
)

func init() {
	// Core flags
	runCmd.Flags().StringVar(&configFlag, "config", getEnvString("MATCHSPEC_CONFIG", ""), "Path to config file (env: MATCHSPEC_CONFIG)")
	runCmd.Flags().StringVarP(&nameFlag, "name", "n", "", "Run only cases matching name pattern")

	// Output flags
	runCmd.Flags().CountVarP(&verboseFlag, "verbose", "v", "Verbose output (-v, -vv for more detail)")
	runCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", getEnvBool("MATCHSPEC_QUIET", false), "Suppress all output except errors (env: MATCHSPEC_QUIET)")
	runCmd.Flags().BoolVar(&noColorFlag, "no-color", getEnvBool("MATCHSPEC_NO_COLOR", false), "Disable colored output (env: MATCHSPEC_NO_COLOR)")
	runCmd.Flags().StringVarP(&outputFlag, "output", "o", getEnvString("MATCHSPEC_OUTPUT", "console"), "Output format: console, json, junit, tap, html (env: MATCHSPEC_OUTPUT)")
	runCmd.Flags().StringVar(&outputFileFlag, "output-file", getEnvString("MATCHSPEC_OUTPUT_FILE", ""), "Write output to file (default: stdout) (env: MATCHSPEC_OUTPUT_FILE)")

	// Execution flags
	runCmd.Flags().BoolVar(&bailFlag, "bail", getEnvBool("MATCHSPEC_BAIL", false), "Stop on first failure (env: MATCHSPEC_BAIL)")
	runCmd.Flags().BoolVarP(&parallelFlag, "parallel", "p", getEnvBool("MATCHSPEC_PARALLEL", false), "Run cases in parallel (env: MATCHSPEC_PARALLEL)")
	runCmd.Flags().IntVar(&concurrencyFlag, "concurrency", getEnvInt("MATCHSPEC_CONCURRENCY", 5), "Number of concurrent cases when running in parallel (env: MATCHSPEC_CONCURRENCY)")
	runCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch suite files for changes and re-run")

	// History flags
	runCmd.Flags().StringVar(&historyFlag, "history", getEnvString("MATCHSPEC_HISTORY", ""), "Record runs to a SQLite history database (env: MATCHSPEC_HISTORY)")
}

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func newRunFormatter() (output.Formatter, *os.File, error) {
	var outWriter *os.File
	var err error
	if outputFileFlag != "" {
		outWriter, err = os.Create(outputFileFlag)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot create output file: %w", err)
		}
	}

	w := os.Stdout
	if outWriter != nil {
		w = outWriter
	}

	formatter, err := output.NewFormatter(strings.ToLower(outputFlag), w, verboseFlag > 0, noColorFlag || quietFlag)
	if err != nil {
		if outWriter != nil {
			_ = outWriter.Close()
		}
		return nil, nil, err
	}
	return formatter, outWriter, nil
}

func runCommand(cmd *cobra.Command, args []string) error {
	formatter, outWriter, err := newRunFormatter()
	if err != nil {
		return err
	}
	if outWriter != nil {
		defer outWriter.Close()
	}

	formatter.FormatHeader(version)

	files, err := collectFiles(args)
	if err != nil {
		formatter.FormatError(err)
		return err
	}

	if len(files) == 0 {
		formatter.FormatError(fmt.Errorf("no suite files found"))
		return fmt.Errorf("no files found")
	}

	// Load config from file (if present) and apply CLI overrides
	fileConfig, err := config.LoadConfig(configFlag)
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}
	cfg := mergeFlags(cmd, fileConfig)

	// Open the run history store when requested
	var store *history.Store
	if cfg.HistoryPath != "" {
		store, err = history.Open(cfg.HistoryPath)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	r := runner.NewRunner(cfg.RunnerConfig())

	// Create a function to run all suites
	runSuites := func() (int, int, int, time.Duration) {
		totalPassed := 0
		totalFailed := 0
		totalSkipped := 0
		startTime := time.Now()

		for _, file := range files {
			suite, err := scenario.Load(file)
			if err != nil {
				formatter.FormatError(err)
				totalFailed++
				if cfg.GetBail() {
					break
				}
				continue
			}

			cases, err := suite.Build()
			if err != nil {
				formatter.FormatError(err)
				totalFailed++
				if cfg.GetBail() {
					break
				}
				continue
			}

			run := r.Run(suite.Name, cases)
			formatter.FormatResult(run)
			totalPassed += run.Passed
			totalFailed += run.Failed
			totalSkipped += run.Skipped

			// Expectation violations count as failures
			for _, verr := range suite.Verify(run) {
				formatter.FormatError(verr)
				totalFailed++
			}

			if store != nil {
				if err := store.RecordRunResult(run); err != nil {
					fmt.Fprintf(os.Stderr, "warning: failed to record run: %v\n", err)
				}
			}

			if cfg.GetBail() && totalFailed > 0 {
				break
			}
		}

		return totalPassed, totalFailed, totalSkipped, time.Since(startTime)
	}

	// Run suites once
	_, totalFailed, _, totalDuration := runSuites()

	// Flush output for formatters that accumulate results
	if flushable, ok := formatter.(output.Flushable); ok {
		if err := flushable.Flush(totalDuration); err != nil {
			return fmt.Errorf("error writing output: %w", err)
		}
	}

	// If watch mode is not enabled, exit normally
	if !watchFlag {
		if totalFailed > 0 {
			os.Exit(ExitCaseFailure)
		}
		return nil
	}

	// Watch mode: set up file watcher
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Add files and directories to watch
	watchedDirs := make(map[string]bool)
	for _, file := range files {
		dir := filepath.Dir(file)
		if !watchedDirs[dir] {
			if err := watcher.Add(dir); err != nil {
				formatter.FormatError(fmt.Errorf("failed to watch %s: %w", dir, err))
			}
			watchedDirs[dir] = true
		}
	}

	// Also watch the original args if they're directories
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err == nil && info.IsDir() {
			_ = filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if info.IsDir() && !watchedDirs[path] {
					_ = watcher.Add(path)
					watchedDirs[path] = true
				}
				return nil
			})
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n\n")

	// Collapse rapid bursts of write events into one re-run
	limiter := rate.NewLimiter(rate.Every(WatchRerunInterval), 1)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// Only react to write events on suite files
			if event.Has(fsnotify.Write) && isSuiteFile(event.Name) && limiter.Allow() {
				fmt.Fprintf(cmd.OutOrStdout(), "\n\nFile changed: %s\nRe-running suites...\n\n", event.Name)

				// Re-create formatter for new output (for JSON/JUnit, need fresh state)
				fresh, freshWriter, err := newRunFormatter()
				if err != nil {
					fmt.Fprintf(os.Stderr, "error: %v\n", err)
					continue
				}
				formatter = fresh

				// Re-run suites
				_, _, _, duration := runSuites()

				// Flush output
				if flushable, ok := formatter.(output.Flushable); ok {
					_ = flushable.Flush(duration)
				}
				if freshWriter != nil {
					_ = freshWriter.Close()
				}

				fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			formatter.FormatError(fmt.Errorf("watcher error: %w", err))
		}
	}
}

// mergeFlags overlays explicitly set CLI flags on the file configuration
func mergeFlags(cmd *cobra.Command, fileConfig *config.Config) *config.Config {
	overrides := &config.Config{
		NameFilter:  nameFlag,
		Concurrency: 0,
		HistoryPath: historyFlag,
	}
	if cmd.Flags().Changed("concurrency") {
		overrides.Concurrency = concurrencyFlag
	}
	if cmd.Flags().Changed("parallel") || parallelFlag {
		overrides.Parallel = config.BoolPtr(parallelFlag)
	}
	if cmd.Flags().Changed("bail") || bailFlag {
		overrides.Bail = config.BoolPtr(bailFlag)
	}
	if verboseFlag > 0 {
		overrides.Verbose = config.BoolPtr(true)
	}
	if cmd.Flags().Changed("no-color") || noColorFlag {
		overrides.NoColor = config.BoolPtr(noColorFlag)
	}
	return fileConfig.Merge(overrides)
}

func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}

		if info.IsDir() {
			err := filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !info.IsDir() && isSuiteFile(path) {
					files = append(files, path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		} else {
			if isSuiteFile(arg) {
				files = append(files, arg)
			}
		}
	}

	return files, nil
}

func isSuiteFile(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".yaml" || ext == ".yml"
}
