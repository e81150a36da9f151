package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	logrusr "github.com/bombsimon/logrusr/v3"
	"github.com/go-logr/logr"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/deadlypliers/consoleprogress/progress"
	"github.com/deadlypliers/consoleprogress/progress/collector"
	"github.com/deadlypliers/consoleprogress/progress/reporter"
)

var (
	progressOutput string
	progressFormat string
	totalItems     int
	itemDelay      time.Duration
	settingsFile   string
	logLevel       int
)

func main() {
	if err := demoCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func demoCmd() *cobra.Command {
	var log logr.Logger

	rootCmd := &cobra.Command{
		Use:   "progress-demo",
		Short: "Simulate a long-running job and display its progress",
		PreRunE: func(c *cobra.Command, args []string) error {
			logrusLog := logrus.New()
			logrusLog.SetOutput(os.Stderr)
			logrusLog.SetFormatter(&logrus.TextFormatter{})
			logrusLog.SetLevel(logrus.Level(logLevel))
			log = logrusr.New(logrusLog)

			switch progressFormat {
			case "bar", "text", "json":
			default:
				return fmt.Errorf("unknown progress format %q", progressFormat)
			}
			return nil
		},
		RunE: func(c *cobra.Command, args []string) error {
			settings, err := loadSettings(settingsFile)
			if err != nil {
				log.Error(err, "unable to load settings", "path", settingsFile)
				return err
			}
			if totalItems > 0 {
				settings.TotalItems = totalItems
			}
			if itemDelay > 0 {
				settings.ItemDelayMillis = int(itemDelay / time.Millisecond)
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			rep, cleanup, err := createReporter(settings, log)
			if err != nil {
				return err
			}
			defer cleanup()

			col := collector.NewThrottledCollectorWithInterval(progress.StageRunning, 50*time.Millisecond)
			_, err = progress.NewHub(
				progress.WithContext(ctx),
				progress.WithCollectors(col),
				progress.WithReporters(rep),
			)
			if err != nil {
				return err
			}

			runWorkload(col, settings)

			// let the last events drain through the hub before teardown
			time.Sleep(200 * time.Millisecond)
			return nil
		},
	}

	rootCmd.Flags().StringVar(&progressOutput, "progress-output", "stderr", "where to write progress (stderr, stdout, or a file path)")
	rootCmd.Flags().StringVar(&progressFormat, "progress-format", "bar", "format for progress output: bar, text, or json")
	rootCmd.Flags().IntVar(&totalItems, "total", 0, "number of simulated work items (overrides settings file)")
	rootCmd.Flags().DurationVar(&itemDelay, "delay", 0, "simulated time per work item (overrides settings file)")
	rootCmd.Flags().StringVar(&settingsFile, "settings", "", "path to a YAML settings file for the simulated workload")
	rootCmd.Flags().IntVar(&logLevel, "verbose", 4, "level for logging output")

	return rootCmd
}

// outputWriter resolves the --progress-output flag to a writer.
func outputWriter() (io.Writer, func(), error) {
	switch progressOutput {
	case "stderr":
		return os.Stderr, func() {}, nil
	case "stdout":
		return os.Stdout, func() {}, nil
	default:
		file, err := os.Create(progressOutput)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to create progress output file %s: %w", progressOutput, err)
		}
		return file, func() { file.Close() }, nil
	}
}

// createReporter builds the reporter selected by --progress-format. The
// returned cleanup closes the terminal bar (erasing its line) or the output
// file, and must run before the process exits.
func createReporter(settings *demoSettings, log logr.Logger) (progress.Reporter, func(), error) {
	w, closeOutput, err := outputWriter()
	if err != nil {
		return nil, nil, err
	}

	switch progressFormat {
	case "text":
		return reporter.NewTextReporter(w), closeOutput, nil
	case "json":
		return reporter.NewJSONReporter(w), closeOutput, nil
	default:
		barOpts := []progress.Option{
			progress.WithWriter(w),
			progress.WithTotal(settings.TotalItems),
			progress.WithBarLogger(log),
		}
		if settings.Glyphs != "" {
			barOpts = append(barOpts, progress.WithGlyphs(settings.Glyphs))
		}
		bar := progress.NewBar(barOpts...)
		cleanup := func() {
			bar.Close()
			closeOutput()
		}
		return reporter.NewBarReporter(bar, reporter.WithBarReporterLogger(log)), cleanup, nil
	}
}

// runWorkload pushes a simulated job through its stages.
func runWorkload(col progress.Collector, settings *demoSettings) {
	col.Report(progress.Event{Stage: progress.StageInit, Message: "starting demo job"})
	time.Sleep(settings.itemDelay())

	col.Report(progress.Event{Stage: progress.StagePrepare, Message: "scanning input"})
	time.Sleep(settings.itemDelay())

	for i := 1; i <= settings.TotalItems; i++ {
		time.Sleep(settings.itemDelay())
		col.Report(progress.Event{
			Stage:   progress.StageRunning,
			Current: i,
			Total:   settings.TotalItems,
			Message: fmt.Sprintf("%s%04d", settings.ItemPrefix, i),
		})
	}

	col.Report(progress.Event{
		Stage:   progress.StageComplete,
		Current: settings.TotalItems,
		Total:   settings.TotalItems,
		Message: "done",
	})
}
