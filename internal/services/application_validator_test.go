package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/justsurfingit/job-application-tracker/internal/apperror"
	"github.com/justsurfingit/job-application-tracker/internal/dtos"
	"github.com/justsurfingit/job-application-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func validCreate() dtos.ApplicationPayload {
	return dtos.ApplicationPayload{
		CompanyName:    ptr("Acme"),
		Role:           ptr("Engineer"),
		JobCategory:    ptr("TECH"),
		Seniority:      ptr("JUNIOR"),
		TechnicalStage: ptr("TECHNICAL_TEST"),
	}
}

func storedTech() *models.Application {
	return &models.Application{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		CompanyName:    "Acme",
		Role:           "Engineer",
		JobCategory:    models.JobCategoryTech,
		Seniority:      models.SeniorityMid,
		Status:         models.StatusInterview,
		TechnicalStage: models.StageLiveCoding,
	}
}

func requireRule(t *testing.T, err error, rule string, fields ...string) {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	assert.Equal(t, rule, verr.Rule)
	if len(fields) > 0 {
		assert.Equal(t, fields, verr.Fields)
	}
}

func TestValidateCreate_AppliesDefaults(t *testing.T) {
	app, err := ValidateApplication(validCreate(), ModeCreate, nil)
	require.NoError(t, err)

	assert.Equal(t, "Acme", app.CompanyName)
	assert.Equal(t, models.StatusApplied, app.Status)
	assert.Equal(t, models.StageTechnicalTest, app.TechnicalStage)
}

func TestValidateCreate_RequiredFields(t *testing.T) {
	p := dtos.ApplicationPayload{CompanyName: ptr("  "), JobCategory: ptr("TECH")}

	_, err := ValidateApplication(p, ModeCreate, nil)
	requireRule(t, err, RuleRequired, "companyName", "role", "seniority")
}

func TestValidateCreate_RequiredBeforeEnums(t *testing.T) {
	p := validCreate()
	p.Role = nil
	p.JobCategory = ptr("SPACE")

	_, err := ValidateApplication(p, ModeCreate, nil)
	requireRule(t, err, RuleRequired, "role")
}

func TestValidate_InvalidEnumsInOrder(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*dtos.ApplicationPayload)
		field string
	}{
		{"category", func(p *dtos.ApplicationPayload) { p.JobCategory = ptr("SPACE"); p.Seniority = ptr("GOD") }, "jobCategory"},
		{"seniority", func(p *dtos.ApplicationPayload) { p.Seniority = ptr("GOD"); p.Status = ptr("GHOSTED") }, "seniority"},
		{"status", func(p *dtos.ApplicationPayload) { p.Status = ptr("GHOSTED"); p.TechnicalStage = ptr("QUIZ") }, "status"},
		{"stage", func(p *dtos.ApplicationPayload) { p.TechnicalStage = ptr("QUIZ") }, "technicalStage"},
		{"salary", func(p *dtos.ApplicationPayload) { p.Salary = ptr(-1.0) }, "salary"},
		{"lowercase category", func(p *dtos.ApplicationPayload) { p.JobCategory = ptr("tech") }, "jobCategory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validCreate()
			tt.edit(&p)

			_, err := ValidateApplication(p, ModeCreate, nil)
			requireRule(t, err, RuleInvalidField, tt.field)
		})
	}
}

func TestValidate_ErrorMapsToValidationType(t *testing.T) {
	p := validCreate()
	p.Status = ptr("GHOSTED")

	_, err := ValidateApplication(p, ModeCreate, nil)
	appErr := apperror.From(err)
	assert.Equal(t, apperror.TypeValidation, appErr.Type)
	assert.Equal(t, "Invalid status.", appErr.Message)
	assert.Equal(t, RuleInvalidField, appErr.Rule)
	assert.Equal(t, []string{"status"}, appErr.Fields)
}

// Valid NON_TECH payloads always end up with stage NONE.
func TestValidateCreate_NonTechForcesNoStage(t *testing.T) {
	for _, stage := range []*string{nil, ptr(""), ptr("NONE")} {
		p := validCreate()
		p.JobCategory = ptr("NON_TECH")
		p.TechnicalStage = stage

		app, err := ValidateApplication(p, ModeCreate, nil)
		require.NoError(t, err)
		assert.Equal(t, models.StageNone, app.TechnicalStage)
	}
}

func TestValidateCreate_NonTechWithStageConflicts(t *testing.T) {
	p := dtos.ApplicationPayload{
		CompanyName:    ptr("X"),
		Role:           ptr("Y"),
		JobCategory:    ptr("NON_TECH"),
		Seniority:      ptr("MID"),
		TechnicalStage: ptr("LIVE_CODING"),
	}

	_, err := ValidateApplication(p, ModeCreate, nil)
	requireRule(t, err, RuleCategoryStageConflict)
	assert.Equal(t, 400, apperror.From(err).HTTPStatus())
}

func TestValidateCreate_TechRequiresStage(t *testing.T) {
	for _, stage := range []*string{nil, ptr(""), ptr("NONE")} {
		p := validCreate()
		p.TechnicalStage = stage

		_, err := ValidateApplication(p, ModeCreate, nil)
		requireRule(t, err, RuleCategoryStageConflict)
	}
}

func TestValidateUpdate_EmptyPayload(t *testing.T) {
	_, err := ValidateApplication(dtos.ApplicationPayload{}, ModeUpdate, storedTech())
	requireRule(t, err, RuleEmptyUpdate)
}

func TestValidateUpdate_BlankRequiredText(t *testing.T) {
	_, err := ValidateApplication(dtos.ApplicationPayload{Role: ptr(" ")}, ModeUpdate, storedTech())
	requireRule(t, err, RuleRequired, "role")
}

func TestValidateUpdate_SalaryOnly(t *testing.T) {
	existing := storedTech()

	app, err := ValidateApplication(dtos.ApplicationPayload{Salary: ptr(90000.0)}, ModeUpdate, existing)
	require.NoError(t, err)

	assert.Equal(t, existing.ID, app.ID)
	assert.Equal(t, existing.UserID, app.UserID)
	assert.Equal(t, 90000.0, *app.Salary)
	assert.Equal(t, models.StatusInterview, app.Status)
	assert.Equal(t, models.StageLiveCoding, app.TechnicalStage)
}

func TestValidateUpdate_DoesNotMutateExisting(t *testing.T) {
	existing := storedTech()

	_, err := ValidateApplication(dtos.ApplicationPayload{CompanyName: ptr("Globex")}, ModeUpdate, existing)
	require.NoError(t, err)
	assert.Equal(t, "Acme", existing.CompanyName)
}

func TestValidateUpdate_StageOnlyAgainstNonTech(t *testing.T) {
	existing := storedTech()
	existing.JobCategory = models.JobCategoryNonTech
	existing.TechnicalStage = models.StageNone

	_, err := ValidateApplication(dtos.ApplicationPayload{TechnicalStage: ptr("SYSTEM_DESIGN")}, ModeUpdate, existing)
	requireRule(t, err, RuleCategoryStageConflict)
}

func TestValidateUpdate_CategoryToTechWithoutStage(t *testing.T) {
	existing := storedTech()
	existing.JobCategory = models.JobCategoryNonTech
	existing.TechnicalStage = models.StageNone

	_, err := ValidateApplication(dtos.ApplicationPayload{JobCategory: ptr("TECH")}, ModeUpdate, existing)
	requireRule(t, err, RuleCategoryStageConflict)

	app, err := ValidateApplication(dtos.ApplicationPayload{
		JobCategory:    ptr("TECH"),
		TechnicalStage: ptr("TECHNICAL_INTERVIEW"),
	}, ModeUpdate, existing)
	require.NoError(t, err)
	assert.Equal(t, models.StageTechnicalInterview, app.TechnicalStage)
}

func TestValidateUpdate_CategoryToNonTechResetsStage(t *testing.T) {
	app, err := ValidateApplication(dtos.ApplicationPayload{JobCategory: ptr("NON_TECH")}, ModeUpdate, storedTech())
	require.NoError(t, err)
	assert.Equal(t, models.JobCategoryNonTech, app.JobCategory)
	assert.Equal(t, models.StageNone, app.TechnicalStage)
}

func TestValidateUpdate_CategoryToNonTechWithStageConflicts(t *testing.T) {
	_, err := ValidateApplication(dtos.ApplicationPayload{
		JobCategory:    ptr("NON_TECH"),
		TechnicalStage: ptr("LIVE_CODING"),
	}, ModeUpdate, storedTech())
	requireRule(t, err, RuleCategoryStageConflict)
}

func TestValidateUpdate_TechStageToNone(t *testing.T) {
	_, err := ValidateApplication(dtos.ApplicationPayload{TechnicalStage: ptr("NONE")}, ModeUpdate, storedTech())
	requireRule(t, err, RuleCategoryStageConflict)
}
