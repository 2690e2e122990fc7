// internal/workers/locations/browse-locations/handler.go
package browselocations

import (
	"context"
	"encoding/json"
	"fmt"

	"booking-workers/internal/booking"
	"booking-workers/internal/common/errors"
	"booking-workers/internal/common/logger"
	"booking-workers/internal/common/render"
	"booking-workers/internal/location"
	"booking-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "browse-locations"
)

type LocationResolver interface {
	ResolveLocationID(ctx context.Context, ref location.Reference) (int64, error)
}

type Handler struct {
	config       *Config
	hierarchy    booking.HierarchyProvider
	resolver     LocationResolver
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, hierarchy booking.HierarchyProvider, resolver LocationResolver, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		hierarchy:    hierarchy,
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
		text := render.Hierarchy(&models.HierarchyResult{Locations: output.Locations, Total: output.Total})
		return h.completeJob(client, job, render.TextResult(text))
	}
	return h.completeJob(client, job, output)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.ParentLocationID != nil && *input.ParentLocationID <= 0 {
		return nil, errors.NewInvalidInputError("parentLocationId must be positive")
	}

	query := models.HierarchyQuery{
		ParentID:          input.ParentLocationID,
		Kind:              input.Kind,
		IncludeChildren:   true,
		IncludeFacilities: input.IncludeFacilities == nil || *input.IncludeFacilities,
		IsBookable:        input.BookableOnly,
	}

	var rootID int64
	if !input.Location.IsZero() {
		id, err := h.resolver.ResolveLocationID(ctx, input.Location)
		if err != nil {
			return nil, err
		}
		rootID = id
		query.LocationID = &id
		query.ParentID = nil
	}

	result, err := h.hierarchy.GetLocationHierarchy(ctx, query)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("hierarchy fetched", map[string]interface{}{
		"rootLocationId": rootID,
		"locations":      len(result.Locations),
	})

	return &Output{
		Locations:      result.Locations,
		Total:          result.Total,
		RootLocationID: rootID,
	}, nil
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
