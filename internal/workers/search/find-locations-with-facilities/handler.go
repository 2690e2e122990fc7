// internal/workers/search/find-locations-with-facilities/handler.go
package findlocationswithfacilities

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"booking-workers/internal/common/errors"
	"booking-workers/internal/common/logger"
	"booking-workers/internal/common/render"
	"booking-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "find-locations-with-facilities"
)

type FacilitySearcher interface {
	FindLocationsWithFacilities(ctx context.Context, terms []string, opts models.FacilitySearchOptions) (*models.LocationSearchResponse, error)
}

type Handler struct {
	config       *Config
	searcher     FacilitySearcher
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, searcher FacilitySearcher, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		searcher:     searcher,
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
		return h.completeJob(client, job, render.TextResult(render.SearchResponse(&output.LocationSearchResponse)))
	}
	return h.completeJob(client, job, output)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	terms := make([]string, 0, len(input.Facilities))
	for _, f := range input.Facilities {
		if f = strings.TrimSpace(f); f != "" {
			terms = append(terms, f)
		}
	}
	if len(terms) == 0 {
		return nil, errors.NewInvalidInputError("at least one facility is required").WithMetadata("field", "facilities")
	}

	limit := input.Limit
	if h.config.MaxLimit > 0 && limit > h.config.MaxLimit {
		limit = h.config.MaxLimit
	}

	resp, err := h.searcher.FindLocationsWithFacilities(ctx, terms, models.FacilitySearchOptions{
		ParentLocationID: input.ParentLocationID,
		LocationKind:     input.LocationKind,
		Limit:            limit,
	})
	if err != nil {
		return nil, err
	}
	return &Output{LocationSearchResponse: *resp}, nil
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
