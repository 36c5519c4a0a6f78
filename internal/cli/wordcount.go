package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kbukum/progressive/errors"
	"github.com/kbukum/progressive/internal/frameloop"
	"github.com/kbukum/progressive/internal/wordcount"
	"github.com/kbukum/progressive/logger"
	"github.com/kbukum/progressive/observability"
	"github.com/kbukum/progressive/pipeline"
	"github.com/kbukum/progressive/progressive"
	"github.com/kbukum/progressive/validation"
	"github.com/kbukum/progressive/version"
)

const maxLineSize = 1024 * 1024

type wordcountOptions struct {
	budget          time.Duration
	frame           time.Duration
	top             int
	limit           int
	caseFold        bool
	tui             bool
	json            bool
	runID           string
	metricsEndpoint string
}

func newWordcountCmd(a *app) *cobra.Command {
	opts := &wordcountOptions{}

	cmd := &cobra.Command{
		Use:   "wordcount FILE...",
		Short: "Count words in files, one line per element",
		Long: `Counts the words of each FILE in order, feeding one line at a time to a
progressive loader. Without --tui the whole file is processed in back-to-back slices
with progress logged at debug level. With --tui a terminal UI queries the
loader once per frame and renders a progress bar.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWordcount(cmd, a, args, opts)
		},
	}

	f := cmd.Flags()
	f.DurationVar(&opts.budget, "budget", 0, "time budget per slice (overrides slicing.budget)")
	f.DurationVar(&opts.frame, "frame", 0, "frame interval in --tui mode (overrides slicing.frame)")
	f.IntVar(&opts.top, "top", 10, "number of most frequent words to report, 0 for all")
	f.IntVar(&opts.limit, "limit", 0, "stop after this many lines, 0 for no limit")
	f.BoolVar(&opts.caseFold, "fold", true, "count words case-insensitively")
	f.BoolVar(&opts.tui, "tui", false, "show an interactive progress bar")
	f.BoolVar(&opts.json, "json", false, "print the report as JSON")
	f.StringVar(&opts.runID, "run-id", "", "UUID identifying this run (default: random)")
	f.StringVar(&opts.metricsEndpoint, "otlp-endpoint", "", "OTLP HTTP endpoint for traces and metrics, e.g. localhost:4318")
	return cmd
}

func runWordcount(cmd *cobra.Command, a *app, paths []string, opts *wordcountOptions) error {
	flags := cmd.Flags()
	v := validation.New().
		Min("top", opts.top, 0).
		Min("limit", opts.limit, 0).
		OptionalUUID("run-id", opts.runID)
	slicing := a.cfg.Slicing
	if flags.Changed("budget") {
		v.PositiveDuration("budget", opts.budget)
		slicing.Budget = opts.budget
	}
	if flags.Changed("frame") {
		v.PositiveDuration("frame", opts.frame)
		slicing.Frame = opts.frame
	}
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	if err := slicing.Validate(); err != nil {
		return err
	}
	runID := resolveRunID(opts.runID)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	metrics, shutdown, err := setupTelemetry(ctx, a.cfg.Environment, opts.metricsEndpoint)
	if err != nil {
		return err
	}
	defer shutdown()

	src, err := openSources(paths, opts.limit)
	if err != nil {
		return err
	}

	ctx, run := observability.StartRun(ctx, runID, "wordcount", metrics)
	run.Describe(paths, src.Len())

	log := logger.Get(componentCLI).WithContext(ctx).WithFields(logger.Fields(logger.FieldRunID, runID))
	log.Info("wordcount started", logger.Fields("files", len(paths), logger.FieldElements, src.Len()))

	waiterOpts := []progressive.Option{
		progressive.WithName("wordcount"),
		progressive.WithRecorder(run),
	}
	// The waiter's slice logs would tear the terminal UI.
	if !opts.tui {
		waiterOpts = append(waiterOpts, progressive.WithLogger(
			logger.Get(componentWaiter).WithFields(logger.Fields(logger.FieldRunID, runID))))
	}
	w := progressive.NewSized[string, wordcount.LineStats, wordcount.Report, wordcount.Options](
		wordcount.New(), src, waiterOpts...)
	wcOpts := wordcount.Options{CaseFold: opts.caseFold, Top: opts.top}

	var report wordcount.Report
	if opts.tui {
		model := frameloop.New(w, wcOpts,
			frameloop.Config{Title: title(paths), Budget: slicing.Budget, Frame: slicing.Frame},
			describeLine)
		report, err = frameloop.Run(model, tea.WithContext(ctx), tea.WithOutput(cmd.ErrOrStderr()))
	} else {
		report = progressive.Drain(w.Waiter, slicing.Budget, wcOpts, func(s wordcount.LineStats) {
			log.Debug("progress", logger.Fields(logger.FieldProgress, w.Progress(), "line", s.Line))
		})
	}
	run.End(err)
	if err != nil {
		fields := logger.Fields(logger.FieldCount, w.FinishedCount())
		if errors.HasCode(err, errors.ErrCodeCancelled) {
			log.Warn("wordcount cancelled", fields)
		} else {
			log.Error("wordcount failed", logger.MergeWithError(fields, err))
		}
		return err
	}

	log.Info("wordcount finished", logger.MergeWithDuration(logger.Fields(
		"lines", report.Lines,
		"words", report.Words,
		"slices", run.Slices(),
	), run.Duration()))

	if opts.json {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return printReport(cmd.OutOrStdout(), report)
}

func describeLine(s wordcount.LineStats) string {
	return fmt.Sprintf("line %d: %d words", s.Line, s.Words)
}

// resolveRunID canonicalises an already validated run id, or generates
// one when none was given.
func resolveRunID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return uuid.MustParse(id).String()
}

// setupTelemetry exports traces and metrics when endpoint is set. Without
// an endpoint the global no-op providers are used and metrics is nil.
func setupTelemetry(ctx context.Context, env, endpoint string) (*observability.SliceMetrics, func(), error) {
	noop := func() {}
	if endpoint == "" {
		return nil, noop, nil
	}

	tcfg := observability.DefaultTracerConfig(ServiceName)
	tcfg.Endpoint = endpoint
	tcfg.Environment = env
	tcfg.ServiceVersion = version.Get().Version
	tp, err := observability.InitTracer(ctx, tcfg)
	if err != nil {
		return nil, noop, err
	}

	mcfg := observability.DefaultMeterConfig(ServiceName)
	mcfg.Endpoint = endpoint
	mcfg.Environment = env
	mcfg.ServiceVersion = tcfg.ServiceVersion
	mp, err := observability.InitMeter(ctx, &mcfg)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, noop, err
	}

	metrics, err := observability.NewSliceMetrics(observability.Meter(ServiceName))
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, noop, err
	}

	shutdown := func() {
		// Flush with a fresh context; ctx may already be cancelled.
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		start := time.Now()
		if err := mp.Shutdown(sctx); err != nil {
			logger.Warn("meter shutdown failed", logger.ErrorFields("shutdown", err))
		}
		if err := tp.Shutdown(sctx); err != nil {
			logger.Warn("tracer shutdown failed", logger.ErrorFields("shutdown", err))
		}
		logger.Debug("telemetry flushed", logger.DurationFields("shutdown", time.Since(start)))
	}
	return metrics, shutdown, nil
}

// openSources reads every file and chains their lines, optionally capped
// at limit lines.
func openSources(paths []string, limit int) (progressive.SizedSource[string], error) {
	sources := make([]progressive.SizedSource[string], 0, len(paths))
	for _, p := range paths {
		lines, err := readLines(p)
		if err != nil {
			return nil, err
		}
		sources = append(sources, progressive.FromSlice(lines))
	}

	src := pipeline.MapSized(pipeline.ConcatSized(sources...), stripBOM)
	if limit > 0 {
		src = pipeline.TakeSized(src, limit)
	}
	return src, nil
}

func stripBOM(line string) string {
	return strings.TrimPrefix(line, "\ufeff")
}

func title(paths []string) string {
	if len(paths) == 1 {
		return filepath.Base(paths[0])
	}
	return fmt.Sprintf("%s and %d more", filepath.Base(paths[0]), len(paths)-1)
}

// readLines loads path into memory, one element per line.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("file", path).WithCause(err)
		}
		return nil, errors.InvalidInput("file", err.Error()).WithCause(err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, errors.InvalidInput("file", fmt.Sprintf("reading %s: %v", path, err)).WithCause(err)
	}
	return lines, nil
}

func printReport(out io.Writer, r wordcount.Report) error {
	if _, err := fmt.Fprintf(out, "lines: %d\nwords: %d\n", r.Lines, r.Words); err != nil {
		return err
	}
	if len(r.Top) == 0 {
		return nil
	}

	width := len("WORD")
	for _, wf := range r.Top {
		width = max(width, len(wf.Word))
	}
	fmt.Fprintf(out, "\n%-*s  %s\n", width, "WORD", "COUNT")
	for _, wf := range r.Top {
		if _, err := fmt.Fprintf(out, "%-*s  %d\n", width, wf.Word, wf.Count); err != nil {
			return err
		}
	}
	return nil
}
