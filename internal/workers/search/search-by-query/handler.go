// internal/workers/search/search-by-query/handler.go
package searchbyquery

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
	TaskType = "search-by-query"
)

type QuerySearcher interface {
	SearchByQuery(ctx context.Context, query string) (*models.LocationSearchResponse, error)
}

type Handler struct {
	config       *Config
	searcher     QuerySearcher
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, searcher QuerySearcher, log logger.Logger) *Handler {
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
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, errors.NewInvalidInputError("query is required").WithMetadata("field", "query")
	}
	if h.config.MaxQueryLength > 0 && len(query) > h.config.MaxQueryLength {
		return nil, errors.NewInvalidInputError(fmt.Sprintf("query exceeds %d characters", h.config.MaxQueryLength)).
			WithMetadata("field", "query")
	}

	resp, err := h.searcher.SearchByQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("query search completed", map[string]interface{}{
		"query":   query,
		"matches": resp.TotalMatches,
	})
	return &Output{Query: query, LocationSearchResponse: *resp}, nil
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
