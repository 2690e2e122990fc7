// internal/workers/bookings/check-availability/handler.go
package checkavailability

import (
	"context"
	"encoding/json"
	"fmt"

	"booking-workers/internal/booking"
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
	TaskType = "check-availability"
)

type LocationResolver interface {
	Resolve(ctx context.Context, ref location.Reference) (*models.Location, error)
}

type Handler struct {
	config       *Config
	resolver     LocationResolver
	availability booking.AvailabilityProvider
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, resolver LocationResolver, availability booking.AvailabilityProvider, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		resolver:     resolver,
		availability: availability,
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
		query := models.AvailabilityQuery{
			LocationID:      output.LocationID,
			DateFrom:        output.DateFrom,
			DateTo:          output.DateTo,
			BookingCategory: output.BookingCategory,
		}
		result := &models.AvailabilityResult{LocationID: output.LocationID, Available: output.Available, Slots: output.Slots}
		return h.completeJob(client, job, render.TextResult(render.Availability(output.Location, query, result)))
	}
	return h.completeJob(client, job, output)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.Location.IsZero() {
		return nil, errors.NewInvalidInputError("location is required").WithMetadata("field", "location")
	}

	from, err := validation.ParseDateTime("dateFrom", input.DateFrom)
	if err != nil {
		return nil, err
	}
	if from == nil {
		return nil, errors.NewInvalidInputError("dateFrom is required").WithMetadata("field", "dateFrom")
	}
	to, err := validation.ParseDateTime("dateTo", input.DateTo)
	if err != nil {
		return nil, err
	}
	if to == nil {
		end := from.Add(h.config.DefaultWindow)
		to = &end
	}
	if !to.After(*from) {
		return nil, errors.NewInvalidInputError("dateTo must be after dateFrom").WithMetadata("field", "dateTo")
	}
	if h.config.MaxWindow > 0 && to.Sub(*from) > h.config.MaxWindow {
		return nil, errors.NewInvalidInputError(fmt.Sprintf("window must not exceed %s", h.config.MaxWindow)).
			WithMetadata("field", "dateTo")
	}

	loc, err := h.resolver.Resolve(ctx, input.Location)
	if err != nil {
		return nil, err
	}

	query := models.AvailabilityQuery{
		LocationID:      loc.ID,
		DateFrom:        *from,
		DateTo:          *to,
		BookingCategory: models.BookingCategoryForKind(loc.Kind),
	}
	result, err := h.availability.CheckAvailability(ctx, query)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("availability checked", map[string]interface{}{
		"locationId": loc.ID,
		"available":  result.Available,
		"slots":      len(result.Slots),
	})

	return &Output{
		LocationID:      loc.ID,
		Location:        loc,
		BookingCategory: query.BookingCategory,
		DateFrom:        query.DateFrom,
		DateTo:          query.DateTo,
		Available:       result.Available,
		Slots:           result.Slots,
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
