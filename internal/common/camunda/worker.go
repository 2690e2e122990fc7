// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/google/uuid"

	"booking-workers/internal/common/errors"
	"booking-workers/internal/common/logger"
	"booking-workers/internal/common/metrics"
	"booking-workers/internal/common/observability"
	"booking-workers/internal/common/validation"
)

// JobHandler processes one job and reports it to the broker itself. The
// returned error is the failure already reported, or nil on completion.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job) error
}

// JobErrorHandler reports a failed job to the broker.
type JobErrorHandler interface {
	HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error)
}

// Options configures a tool worker. InputSchema, when set, rejects jobs whose
// variables do not conform before the handler sees them.
type Options struct {
	MaxJobsActive int
	Timeout       time.Duration
	InputSchema   *validation.Schema
	Observability *observability.Observability
	ErrorHandler  JobErrorHandler
}

type CamundaWorker struct {
	worker   worker.JobWorker
	logger   logger.Logger
	taskType string
}

// NewWorker opens a job worker for taskType with instrumentation around handler.
func NewWorker(client zbc.Client, taskType string, handler JobHandler, opts Options, log logger.Logger) *CamundaWorker {
	step := client.NewJobWorker().
		JobType(taskType).
		Handler(Instrument(taskType, handler, opts, log))
	if opts.MaxJobsActive > 0 {
		step = step.MaxJobsActive(opts.MaxJobsActive)
	}
	if opts.Timeout > 0 {
		step = step.Timeout(opts.Timeout)
	}

	w := &CamundaWorker{
		worker:   step.Open(),
		logger:   log.WithFields(map[string]interface{}{"taskType": taskType}),
		taskType: taskType,
	}
	w.logger.Info("worker started", map[string]interface{}{
		"maxJobsActive": opts.MaxJobsActive,
		"timeout_ms":    opts.Timeout.Milliseconds(),
	})
	return w
}

// Stop closes the job worker and waits for in-flight jobs.
func (w *CamundaWorker) Stop() {
	w.logger.Info("stopping worker", nil)
	w.worker.Close()
	w.worker.AwaitClose()
}

// Instrument wraps handler with input validation, an invocation id, a span
// and per-tool metrics.
func Instrument(taskType string, handler JobHandler, opts Options, log logger.Logger) worker.JobHandler {
	log = log.WithFields(map[string]interface{}{"taskType": taskType})

	return func(client worker.JobClient, job entities.Job) {
		ctx, span := opts.Observability.StartSpan(context.Background(), taskType, job.Key)
		fields := map[string]interface{}{
			"invocationId": uuid.NewString(),
			"jobKey":       job.Key,
		}
		if sc := span.SpanContext(); sc.HasTraceID() {
			fields["traceId"] = sc.TraceID().String()
		}
		invocationLog := log.WithFields(fields)
		start := time.Now()

		active := metrics.WorkerJobsActive.WithLabelValues(taskType)
		active.Inc()
		defer active.Dec()

		err := validateVariables(opts.InputSchema, job.Variables)
		if err != nil {
			if opts.ErrorHandler != nil {
				opts.ErrorHandler.HandleJobError(ctx, client, job, err)
			}
		} else {
			err = handler.Handle(client, job)
		}

		elapsed := time.Since(start)
		metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(elapsed.Seconds())

		status := "completed"
		code := ""
		if err != nil {
			code = string(errors.ErrCodeInternal)
			if stdErr, ok := errors.AsStandardError(err); ok {
				code = string(stdErr.Code)
			}
			status = "failed"
			metrics.WorkerJobsFailed.WithLabelValues(taskType, code).Inc()
			invocationLog.Warn("tool invocation failed", map[string]interface{}{
				"errorCode":  code,
				"durationMs": elapsed.Milliseconds(),
			})
		} else {
			metrics.WorkerJobsCompleted.WithLabelValues(taskType).Inc()
			invocationLog.Info("tool invocation completed", map[string]interface{}{
				"durationMs": elapsed.Milliseconds(),
			})
		}
		opts.Observability.RecordInvocation(ctx, taskType, status, elapsed)
		observability.EndSpan(span, code, err)
	}
}

func validateVariables(schema *validation.Schema, variables string) error {
	if schema == nil {
		return nil
	}
	if variables == "" {
		variables = "{}"
	}
	result, err := schema.Validate([]byte(variables))
	if err != nil {
		return errors.NewInvalidInputError(err.Error())
	}
	return result.Err()
}
