package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/projmatch/projmatch/match"
	"github.com/projmatch/projmatch/match/report"
	"github.com/projmatch/projmatch/match/trace"
)

// RunResult bundles what a matching run produced, for callers and tests.
type RunResult struct {
	Load     *match.LoadReport
	State    *match.TerminalState
	Report   *report.Report
	Trace    *trace.MatchTrace
	Metrics  *match.Metrics
	Canceled bool
}

// runMatching loads the record files, runs the engine and writes every output
// requested by cfg. The human-readable summary goes to stdout.
// A cancelled run still reports its partial assignment.
func runMatching(ctx context.Context, cfg RunConfig, stdout io.Writer) (*RunResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", cfg.Locale, err)
	}

	store := match.NewStore()
	load, err := store.LoadFiles(cfg.ApplicantsPath, cfg.ProjectsPath)
	if err != nil {
		return nil, err
	}

	mt := trace.NewMatchTrace(trace.TraceLevel(cfg.Trace))
	observers := observerChain{logObserver{}}
	var snapshots *snapshotWriter
	if cfg.SnapshotsOut != "" {
		f, err := os.Create(cfg.SnapshotsOut)
		if err != nil {
			return nil, fmt.Errorf("creating snapshot stream: %w", err)
		}
		defer f.Close() //nolint:errcheck // closed after the run; write errors surface through snapshots.Close
		snapshots = newSnapshotWriter(f)
		observers = append(observers, snapshots)
	}

	engine, err := match.NewEngine(store, match.EngineConfig{
		MaxIterations: cfg.MaxIterations,
		SnapshotEvery: cfg.SnapshotEvery,
		Observer:      observers,
		Trace:         mt,
	})
	if err != nil {
		return nil, err
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	state, runErr := engine.Run(ctx)
	res := &RunResult{Load: load, State: state, Trace: mt, Metrics: engine.Metrics()}
	if runErr != nil {
		if !errors.Is(runErr, context.Canceled) && !errors.Is(runErr, context.DeadlineExceeded) {
			return nil, runErr
		}
		logrus.Warnf("%v; reporting partial assignment", runErr)
		res.Canceled = true
	}
	if snapshots != nil {
		if err := snapshots.Close(); err != nil {
			return nil, fmt.Errorf("writing snapshot stream: %w", err)
		}
	}

	res.Report = report.Build(state.Assignment, store)
	res.Report.Print(stdout, tag)
	p := message.NewPrinter(tag)
	printRunSummary(p, stdout, state, len(load.Warnings))
	if mt.Enabled() {
		printTraceSummary(p, stdout, trace.Summarize(mt))
	}

	if err := writeOutputs(cfg, res); err != nil {
		return nil, err
	}
	return res, nil
}

func writeOutputs(cfg RunConfig, res *RunResult) error {
	if cfg.MatrixOut != "" {
		if err := writeFile(cfg.MatrixOut, res.Report.WriteCSV); err != nil {
			return fmt.Errorf("writing assignment matrix: %w", err)
		}
		logrus.Infof("assignment matrix written to %s", cfg.MatrixOut)
	}
	if cfg.RanksOut != "" {
		if err := writeFile(cfg.RanksOut, res.Report.WriteRanksCSV); err != nil {
			return fmt.Errorf("writing rank index: %w", err)
		}
	}
	if cfg.ReportOut != "" {
		if err := writeFile(cfg.ReportOut, res.Report.WriteYAML); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}
	if cfg.MetricsOut != "" {
		if err := res.Metrics.WriteTextfile(cfg.MetricsOut); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// printRunSummary appends the engine outcome to the report printed by
// Report.Print, formatted for the same locale.
func printRunSummary(p *message.Printer, w io.Writer, state *match.TerminalState, warnings int) {
	p.Fprintf(w, "Iterations           : %d (%s)\n", state.IterationsUsed, state.Reason)
	p.Fprintf(w, "Evictions            : %d\n", state.Evictions)
	p.Fprintf(w, "Load warnings        : %d\n", warnings)
}

func printTraceSummary(p *message.Printer, w io.Writer, s *trace.TraceSummary) {
	p.Fprintln(w, "=== Decision Trace ===")
	p.Fprintf(w, "Decisions            : %d\n", s.TotalDecisions)
	for _, kind := range []trace.DecisionKind{trace.KindAdmit, trace.KindEvict, trace.KindReject, trace.KindExhausted} {
		p.Fprintf(w, "  %-18s : %d\n", kind, s.ByKind[kind])
	}
}
