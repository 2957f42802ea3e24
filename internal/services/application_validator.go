package services

import (
	"fmt"
	"strings"

	"github.com/justsurfingit/job-application-tracker/internal/apperror"
	"github.com/justsurfingit/job-application-tracker/internal/dtos"
	"github.com/justsurfingit/job-application-tracker/internal/models"
)

type ValidationMode int

const (
	ModeCreate ValidationMode = iota
	ModeUpdate
)

const (
	RuleRequired              = "required"
	RuleEmptyUpdate           = "empty_update"
	RuleInvalidField          = "invalid_field"
	RuleCategoryStageConflict = "category_stage_conflict"
)

// ValidationError names the rule that rejected a payload and the fields involved.
type ValidationError struct {
	Rule    string
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %v: %s", e.Rule, e.Fields, e.Message)
}

// Unwrap lets the HTTP layer treat it as a 400.
func (e *ValidationError) Unwrap() error {
	return &apperror.Error{
		Type:    apperror.TypeValidation,
		Message: e.Message,
		Rule:    e.Rule,
		Fields:  e.Fields,
	}
}

func reject(rule, message string, fields ...string) *ValidationError {
	return &ValidationError{Rule: rule, Fields: fields, Message: message}
}

// ValidateApplication checks payload and returns the record to persist.
// In ModeCreate existing is ignored; in ModeUpdate it is the stored record
// the payload is merged into. Only supplied fields are checked on update,
// but the category/stage coupling is checked on the merged record.
func ValidateApplication(p dtos.ApplicationPayload, mode ValidationMode, existing *models.Application) (models.Application, error) {
	p = dropEmptyOptionals(p)
	if err := checkPresence(p, mode); err != nil {
		return models.Application{}, err
	}
	if p.JobCategory != nil && !models.JobCategory(*p.JobCategory).Valid() {
		return models.Application{}, reject(RuleInvalidField, "Invalid job category.", "jobCategory")
	}
	if p.Seniority != nil && !models.Seniority(*p.Seniority).Valid() {
		return models.Application{}, reject(RuleInvalidField, "Invalid seniority.", "seniority")
	}
	if p.Status != nil && !models.ApplicationStatus(*p.Status).Valid() {
		return models.Application{}, reject(RuleInvalidField, "Invalid status.", "status")
	}
	if p.TechnicalStage != nil && !models.TechnicalStage(*p.TechnicalStage).Valid() {
		return models.Application{}, reject(RuleInvalidField, "Invalid technical stage.", "technicalStage")
	}
	if p.Salary != nil && *p.Salary < 0 {
		return models.Application{}, reject(RuleInvalidField, "Salary cannot be negative.", "salary")
	}

	var app models.Application
	if mode == ModeUpdate && existing != nil {
		app = *existing
	}
	merge(&app, p)

	switch app.JobCategory {
	case models.JobCategoryNonTech:
		if app.TechnicalStage != models.StageNone {
			return models.Application{}, reject(RuleCategoryStageConflict,
				"Non tech applications cannot have technical stages.", "jobCategory", "technicalStage")
		}
	case models.JobCategoryTech:
		if app.TechnicalStage == "" || app.TechnicalStage == models.StageNone {
			return models.Application{}, reject(RuleCategoryStageConflict,
				"Tech applications must have a technical stage.", "jobCategory", "technicalStage")
		}
	}

	if app.Status == "" {
		app.Status = models.StatusApplied
	}
	if app.TechnicalStage == "" {
		app.TechnicalStage = models.StageNone
	}
	return app, nil
}

func checkPresence(p dtos.ApplicationPayload, mode ValidationMode) *ValidationError {
	if mode == ModeUpdate {
		if p.IsEmpty() {
			return reject(RuleEmptyUpdate, "No data to update.")
		}
		var blank []string
		if p.CompanyName != nil && strings.TrimSpace(*p.CompanyName) == "" {
			blank = append(blank, "companyName")
		}
		if p.Role != nil && strings.TrimSpace(*p.Role) == "" {
			blank = append(blank, "role")
		}
		if len(blank) > 0 {
			return reject(RuleRequired, "Required fields are missing.", blank...)
		}
		return nil
	}

	var missing []string
	if isBlank(p.CompanyName) {
		missing = append(missing, "companyName")
	}
	if isBlank(p.Role) {
		missing = append(missing, "role")
	}
	if isBlank(p.JobCategory) {
		missing = append(missing, "jobCategory")
	}
	if isBlank(p.Seniority) {
		missing = append(missing, "seniority")
	}
	if len(missing) > 0 {
		return reject(RuleRequired, "Required fields are missing.", missing...)
	}
	return nil
}

// dropEmptyOptionals treats an empty status or stage as not sent.
func dropEmptyOptionals(p dtos.ApplicationPayload) dtos.ApplicationPayload {
	if p.Status != nil && *p.Status == "" {
		p.Status = nil
	}
	if p.TechnicalStage != nil && *p.TechnicalStage == "" {
		p.TechnicalStage = nil
	}
	return p
}

// merge copies supplied fields onto app. A switch to NON_TECH without a
// stage drops the stage that belonged to the previous category.
func merge(app *models.Application, p dtos.ApplicationPayload) {
	if p.CompanyName != nil {
		app.CompanyName = strings.TrimSpace(*p.CompanyName)
	}
	if p.Role != nil {
		app.Role = strings.TrimSpace(*p.Role)
	}
	if p.JobDescription != nil {
		app.JobDescription = p.JobDescription
	}
	if p.JobCategory != nil {
		app.JobCategory = models.JobCategory(*p.JobCategory)
		if app.JobCategory == models.JobCategoryNonTech && p.TechnicalStage == nil {
			app.TechnicalStage = models.StageNone
		}
	}
	if p.Seniority != nil {
		app.Seniority = models.Seniority(*p.Seniority)
	}
	if p.Salary != nil {
		app.Salary = p.Salary
	}
	if p.Status != nil {
		app.Status = models.ApplicationStatus(*p.Status)
	}
	if p.TechnicalStage != nil {
		app.TechnicalStage = models.TechnicalStage(*p.TechnicalStage)
	}
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
