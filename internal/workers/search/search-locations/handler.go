// internal/workers/search/search-locations/handler.go
package searchlocations

import (
	"context"
	"encoding/json"
	"fmt"

	"booking-workers/internal/common/errors"
	"booking-workers/internal/common/logger"
	"booking-workers/internal/common/render"
	"booking-workers/internal/common/validation"
	"booking-workers/internal/location"
	"booking-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "search-locations"
)

type Searcher interface {
	SearchLocationsByRequirements(ctx context.Context, req models.LocationSearchRequest) (*models.LocationSearchResponse, error)
}

type LocationResolver interface {
	ResolveLocationID(ctx context.Context, ref location.Reference) (int64, error)
}

type Handler struct {
	config       *Config
	searcher     Searcher
	resolver     LocationResolver
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, searcher Searcher, resolver LocationResolver, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		searcher:     searcher,
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
		return h.completeJob(client, job, render.TextResult(render.SearchResponse(&output.LocationSearchResponse)))
	}
	return h.completeJob(client, job, output)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	req, err := h.buildRequest(ctx, input)
	if err != nil {
		return nil, err
	}

	resp, err := h.searcher.SearchLocationsByRequirements(ctx, req)
	if err != nil {
		return nil, err
	}
	return &Output{LocationSearchResponse: *resp}, nil
}

func (h *Handler) buildRequest(ctx context.Context, input *Input) (models.LocationSearchRequest, error) {
	req := models.LocationSearchRequest{
		Requirements:     input.Requirements,
		Capacity:         input.Capacity,
		LocationKind:     input.LocationKind,
		Limit:            input.Limit,
		ParentLocationID: input.ParentLocationID,
		Query:            input.Query,
	}

	if h.config.MaxLimit > 0 && req.Limit > h.config.MaxLimit {
		req.Limit = h.config.MaxLimit
	}

	from, err := validation.ParseDateTime("dateFrom", input.DateFrom)
	if err != nil {
		return req, err
	}
	to, err := validation.ParseDateTime("dateTo", input.DateTo)
	if err != nil {
		return req, err
	}
	if to != nil && from == nil {
		return req, errors.NewInvalidInputError("dateTo requires dateFrom").WithMetadata("field", "dateTo")
	}
	req.DateFrom, req.DateTo = from, to

	if !input.Within.IsZero() {
		id, err := h.resolver.ResolveLocationID(ctx, input.Within)
		if err != nil {
			return req, err
		}
		req.ParentLocationID = &id
	}

	return req, nil
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
