package resolvelocation

import (
	"context"
	"encoding/json"
	"fmt"

	"booking-workers/internal/common/errors"
	"booking-workers/internal/common/logger"
	"booking-workers/internal/common/render"
	"booking-workers/internal/location"
	"booking-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "resolve-location"
)

type LocationResolver interface {
	Resolve(ctx context.Context, ref location.Reference) (*models.Location, error)
}

type Handler struct {
	config       *Config
	resolver     LocationResolver
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, resolver LocationResolver, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		resolver:     resolver,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		return h.failJob(client, job, errors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err)))
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.Execute(ctx, &input)
	if err != nil {
		return h.failJob(client, job, err)
	}

	if render.WantsText(input.ResponseFormat) {
		return h.completeJob(client, job, render.TextResult(render.Location(output.Location)))
	}
	return h.completeJob(client, job, output)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.Location.IsZero() {
		return nil, errors.NewInvalidInputError("location is required")
	}

	loc, err := h.resolver.Resolve(ctx, input.Location)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("location resolved", map[string]interface{}{
		"reference":  input.Location.String(),
		"locationId": loc.ID,
	})

	return &Output{
		LocationID:    loc.ID,
		Location:      loc,
		ReferenceKind: referenceKind(input.Location),
	}, nil
}

func referenceKind(ref location.Reference) string {
	if id, ok := ref.ID(); ok && id >= location.NumericIDThreshold {
		return "location_id"
	}
	return location.Classify(ref.Term()).Kind.String()
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, variables interface{}) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(variables)
	if err != nil {
		return h.failJob(client, job, errors.NewInternalError(fmt.Errorf("encode output: %w", err)))
	}
	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{"error": err.Error()})
		return err
	}
	return nil
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error) error {
	h.errorHandler.HandleJobError(context.Background(), client, job, err)
	return err
}
