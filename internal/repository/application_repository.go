package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/justsurfingit/job-application-tracker/internal/models"
	"gorm.io/gorm"
)

// editableColumns are written on update even when the new value is zero or nil.
var editableColumns = []string{
	"company_name",
	"role",
	"job_description",
	"job_category",
	"seniority",
	"salary",
	"status",
	"technical_stage",
	"updated_at",
}

type ApplicationRepository struct {
	DB *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{DB: db}
}

// ListByUser returns the user's applications, newest first.
func (r *ApplicationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Application, error) {
	apps := []models.Application{}
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	return r.DB.WithContext(ctx).Create(app).Error
}

func (r *ApplicationRepository) FindOwned(ctx context.Context, id, userID uuid.UUID) (*models.Application, error) {
	var app models.Application
	err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// UpdateOwned writes every editable column of app, scoped to app.UserID.
func (r *ApplicationRepository) UpdateOwned(ctx context.Context, app *models.Application) error {
	res := r.DB.WithContext(ctx).
		Model(app).
		Where("user_id = ?", app.UserID).
		Select(editableColumns).
		Updates(app)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ApplicationRepository) DeleteOwned(ctx context.Context, id, userID uuid.UUID) error {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Application{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
