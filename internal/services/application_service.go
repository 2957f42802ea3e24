package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/justsurfingit/job-application-tracker/internal/apperror"
	"github.com/justsurfingit/job-application-tracker/internal/dtos"
	"github.com/justsurfingit/job-application-tracker/internal/metrics"
	"github.com/justsurfingit/job-application-tracker/internal/models"
	"github.com/justsurfingit/job-application-tracker/internal/repository"
)

type ApplicationStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Application, error)
	Create(ctx context.Context, app *models.Application) error
	FindOwned(ctx context.Context, id, userID uuid.UUID) (*models.Application, error)
	UpdateOwned(ctx context.Context, app *models.Application) error
	DeleteOwned(ctx context.Context, id, userID uuid.UUID) error
}

var ErrApplicationNotFound = apperror.NotFound("Application not found.")

type ApplicationService struct {
	Store ApplicationStore
}

func NewApplicationService(store ApplicationStore) *ApplicationService {
	return &ApplicationService{Store: store}
}

func (s *ApplicationService) List(ctx context.Context, userID uuid.UUID, opts ViewOptions) ([]models.Application, error) {
	apps, err := s.Store.ListByUser(ctx, userID)
	if err != nil {
		record("list", err)
		return nil, fmt.Errorf("list applications: %w", err)
	}
	record("list", nil)
	return Project(apps, opts), nil
}

func (s *ApplicationService) Create(ctx context.Context, userID uuid.UUID, payload dtos.ApplicationPayload) (*models.Application, error) {
	app, err := ValidateApplication(payload, ModeCreate, nil)
	if err != nil {
		record("create", err)
		return nil, err
	}
	app.UserID = userID

	if err := s.Store.Create(ctx, &app); err != nil {
		record("create", err)
		return nil, fmt.Errorf("create application: %w", err)
	}

	record("create", nil)
	slog.Info("Application created", "user_id", userID, "application_id", app.ID)
	return &app, nil
}

// Update merges payload into the caller's application and saves the result.
func (s *ApplicationService) Update(ctx context.Context, userID, id uuid.UUID, payload dtos.ApplicationPayload) (*models.Application, error) {
	existing, err := s.Store.FindOwned(ctx, id, userID)
	if err != nil {
		err = translateNotFound(err)
		record("update", err)
		return nil, err
	}

	app, err := ValidateApplication(payload, ModeUpdate, existing)
	if err != nil {
		record("update", err)
		return nil, err
	}

	if err := s.Store.UpdateOwned(ctx, &app); err != nil {
		err = translateNotFound(err)
		record("update", err)
		return nil, err
	}

	record("update", nil)
	slog.Info("Application updated", "user_id", userID, "application_id", app.ID)
	return &app, nil
}

func (s *ApplicationService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.Store.DeleteOwned(ctx, id, userID); err != nil {
		err = translateNotFound(err)
		record("delete", err)
		return err
	}

	record("delete", nil)
	slog.Info("Application deleted", "user_id", userID, "application_id", id)
	return nil
}

func translateNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrApplicationNotFound
	}
	return fmt.Errorf("application store: %w", err)
}

func record(operation string, err error) {
	result := "success"
	switch {
	case err == nil:
	case apperror.IsType(err, apperror.TypeValidation):
		result = "invalid"
	case apperror.IsType(err, apperror.TypeNotFound):
		result = "not_found"
	default:
		result = "error"
	}
	metrics.ApplicationOperations.WithLabelValues(operation, result).Inc()
}
