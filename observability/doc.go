// Package observability provides OpenTelemetry tracing and metrics for
// progressive waiters.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("wordcount"))
//	defer tp.Shutdown(ctx)
//
//	ctx, run := observability.StartRun(ctx, runID, "wordcount", nil)
//	defer run.End(nil)
//	w := progressive.New(loader, src, progressive.WithRecorder(run))
//
// Metrics:
//
//	cfg := observability.DefaultMeterConfig("wordcount")
//	mp, err := observability.InitMeter(ctx, &cfg)
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewSliceMetrics(observability.Meter("wordcount"))
//	w := progressive.New(loader, src, progressive.WithRecorder(metrics))
package observability
