// Package driver walks a batch of class models, generates each one and
// writes one output unit per class to a caller-supplied sink.
package driver

import (
	"context"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/teranos/mutigen/errors"
	"github.com/teranos/mutigen/gen"
	"github.com/teranos/mutigen/logger"
	"github.com/teranos/mutigen/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Config controls a batch run
type Config struct {
	// FailFast stops scheduling classes after the first failure. Otherwise
	// every class is attempted and all failures are reported.
	FailFast bool
	// Workers bounds parallel generation; zero means GOMAXPROCS
	Workers int
	Options gen.Options
	// Table overrides the default conversion table
	Table *gen.Table
	// Logger defaults to the "driver" component logger
	Logger *zap.SugaredLogger
	// TraceShapes logs the shape chosen for every method at debug level
	TraceShapes bool
}

type outcome struct {
	attempted bool
	unit      *UnitResult
	err       error
	warnings  []gen.Warning
}

// Run generates every class and writes the units to sink. Sinks that
// implement Flusher are flushed once every class has been attempted. The
// returned error is reserved for run-level problems (invalid options,
// cancelled context, failed flush); per-class failures are in the report.
func Run(ctx context.Context, cfg Config, classes []model.ClassModel, sink Sink) (*Report, error) {
	if err := cfg.Options.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid generator options")
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	table := cfg.Table
	if table == nil {
		table = gen.DefaultTable()
	}
	generator := &gen.Generator{Options: cfg.Options, Table: table}

	runID := uuid.NewString()
	log := cfg.Logger
	if log == nil {
		log = logger.ComponentLogger("driver")
	}
	log = log.With(logger.FieldRunID, runID)

	start := time.Now()
	log.Infow("Starting generation",
		logger.FieldCount, len(classes),
		logger.FieldWorkers, workers,
		"fail_fast", cfg.FailFast)

	outcomes := make([]outcome, len(classes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range classes {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			outcomes[i] = generateOne(generator, classes[i], i, sink, log, cfg.TraceShapes)
			if outcomes[i].err != nil && cfg.FailFast {
				return outcomes[i].err
			}
			return nil
		})
	}
	// Class errors are collected from outcomes; the group error only cancels.
	_ = g.Wait()

	var flushErr error
	if f, ok := sink.(Flusher); ok {
		if err := f.Flush(); err != nil {
			log.Errorw("Flushing output failed", logger.FieldError, err.Error())
			flushErr = errors.Mark(errors.Wrap(err, "failed to flush output"), errors.ErrOutputSink)
		}
	}

	report := &Report{RunID: runID}
	for i, o := range outcomes {
		if !o.attempted {
			report.Skipped++
			continue
		}
		report.Warnings = append(report.Warnings, o.warnings...)
		if o.err != nil {
			report.Errors = append(report.Errors, ClassError{Index: i, Class: classes[i].Name, Err: o.err})
			continue
		}
		report.Units = append(report.Units, *o.unit)
	}
	report.Duration = time.Since(start)

	log.Infow("Generation finished",
		"units", len(report.Units),
		"errors", len(report.Errors),
		"warnings", len(report.Warnings),
		"skipped", report.Skipped,
		logger.FieldSize, report.TotalBytes(),
		logger.FieldDurationMS, report.Duration.Milliseconds())

	if err := ctx.Err(); err != nil {
		return report, errors.Wrap(err, "generation interrupted")
	}
	return report, flushErr
}

func generateOne(g *gen.Generator, cm model.ClassModel, index int, sink Sink, log *zap.SugaredLogger, traceShapes bool) outcome {
	start := time.Now()
	clog := log.With(logger.FieldClass, cm.Name, logger.FieldIndex, index)

	if traceShapes {
		for _, m := range cm.Methods {
			clog.Debugw("Method shape", logger.FieldMethod, m.SignatureKey(), logger.FieldShape, gen.Classify(m).String())
		}
	}

	unit, err := g.Generate(cm)
	if err != nil {
		clog.Errorw("Class generation failed",
			logger.FieldError, err.Error(),
			logger.FieldErrorKind, errors.Kind(err))
		return outcome{attempted: true, err: err}
	}
	unit.Index = index
	for _, w := range unit.Warnings {
		clog.Warnw("Documentation warning", logger.FieldMethod, w.Member, logger.FieldError, w.Err.Error())
	}

	if err := write(sink, unit); err != nil {
		clog.Errorw("Writing unit failed",
			logger.FieldUnit, unit.Name,
			logger.FieldError, err.Error())
		return outcome{attempted: true, err: err, warnings: unit.Warnings}
	}

	clog.Debugw("Generated unit",
		logger.FieldUnit, unit.Name,
		logger.FieldSize, len(unit.Text),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return outcome{
		attempted: true,
		unit:      &UnitResult{Index: index, Class: unit.Class, Name: unit.Name, Bytes: len(unit.Text)},
		warnings:  unit.Warnings,
	}
}

// write hands a fully generated unit to the sink. The handle is always
// released: committed on success, aborted otherwise.
func write(sink Sink, unit *gen.Unit) (err error) {
	h, err := sink.Open(unit)
	if err != nil {
		return errors.WrapOutputSink(err, unit.Name)
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if abortErr := h.Abort(); abortErr != nil {
			err = errors.Join(err, errors.WrapOutputSink(abortErr, unit.Name))
		}
	}()

	if _, err := h.Write(unit.Text); err != nil {
		return errors.WrapOutputSink(err, unit.Name)
	}
	if err := h.Commit(); err != nil {
		return errors.WrapOutputSink(err, unit.Name)
	}
	committed = true
	return nil
}
