package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/justsurfingit/job-application-tracker/internal/apperror"
	"github.com/justsurfingit/job-application-tracker/internal/dtos"
	"github.com/justsurfingit/job-application-tracker/internal/metrics"
	"github.com/justsurfingit/job-application-tracker/internal/models"
	"github.com/justsurfingit/job-application-tracker/internal/repository/repositorytest"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApplicationService(t *testing.T) (*ApplicationService, *repositorytest.Applications) {
	t.Helper()
	store := repositorytest.NewApplications()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store.Now = func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
	return NewApplicationService(store), store
}

func TestApplicationService_CreateThenList(t *testing.T) {
	svc, _ := newTestApplicationService(t)
	ctx := context.Background()
	userID := uuid.New()

	created, err := svc.Create(ctx, userID, validCreate())
	require.NoError(t, err)
	assert.Equal(t, userID, created.UserID)
	assert.NotEqual(t, uuid.Nil, created.ID)

	apps, err := svc.List(ctx, userID, ViewOptions{})
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, models.StatusApplied, apps[0].Status)
	assert.Equal(t, models.StageTechnicalTest, apps[0].TechnicalStage)
}

func TestApplicationService_ListAppliesView(t *testing.T) {
	svc, _ := newTestApplicationService(t)
	ctx := context.Background()
	userID := uuid.New()

	for _, company := range []string{"First", "Second", "Third"} {
		p := validCreate()
		p.CompanyName = ptr(company)
		_, err := svc.Create(ctx, userID, p)
		require.NoError(t, err)
	}

	newest, err := svc.List(ctx, userID, ViewOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Third", "Second", "First"}, companies(newest))

	oldest, err := svc.List(ctx, userID, ViewOptions{Sort: SortOldest})
	require.NoError(t, err)
	assert.Equal(t, []string{"First", "Second", "Third"}, companies(oldest))
}

func TestApplicationService_CreateInvalidDoesNotStore(t *testing.T) {
	svc, _ := newTestApplicationService(t)
	ctx := context.Background()
	userID := uuid.New()
	before := testutil.ToFloat64(metrics.ApplicationOperations.WithLabelValues("create", "invalid"))

	p := validCreate()
	p.TechnicalStage = nil
	_, err := svc.Create(ctx, userID, p)
	requireRule(t, err, RuleCategoryStageConflict)

	apps, err := svc.List(ctx, userID, ViewOptions{})
	require.NoError(t, err)
	assert.Empty(t, apps)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ApplicationOperations.WithLabelValues("create", "invalid")))
}

func TestApplicationService_Update(t *testing.T) {
	svc, store := newTestApplicationService(t)
	ctx := context.Background()
	userID := uuid.New()

	created, err := svc.Create(ctx, userID, validCreate())
	require.NoError(t, err)

	updated, err := svc.Update(ctx, userID, created.ID, dtos.ApplicationPayload{
		Status: ptr("INTERVIEW"),
		Salary: ptr(85000.0),
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInterview, updated.Status)

	stored, ok := store.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, models.StatusInterview, stored.Status)
	assert.Equal(t, 85000.0, *stored.Salary)
	assert.Equal(t, "Acme", stored.CompanyName)
	assert.Equal(t, created.CreatedAt, stored.CreatedAt)
}

func TestApplicationService_OwnershipIsolation(t *testing.T) {
	svc, store := newTestApplicationService(t)
	ctx := context.Background()
	owner, intruder := uuid.New(), uuid.New()

	created, err := svc.Create(ctx, owner, validCreate())
	require.NoError(t, err)

	_, foreignErr := svc.Update(ctx, intruder, created.ID, dtos.ApplicationPayload{Status: ptr("HIRED")})
	_, missingErr := svc.Update(ctx, intruder, uuid.New(), dtos.ApplicationPayload{Status: ptr("HIRED")})
	assert.Equal(t, missingErr, foreignErr)
	assert.True(t, apperror.IsType(foreignErr, apperror.TypeNotFound))

	assert.Equal(t, svc.Delete(ctx, intruder, uuid.New()), svc.Delete(ctx, intruder, created.ID))

	apps, err := svc.List(ctx, intruder, ViewOptions{})
	require.NoError(t, err)
	assert.Empty(t, apps)

	stored, ok := store.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, models.StatusApplied, stored.Status)
}

func TestApplicationService_Delete(t *testing.T) {
	svc, store := newTestApplicationService(t)
	ctx := context.Background()
	userID := uuid.New()

	created, err := svc.Create(ctx, userID, validCreate())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, userID, created.ID))
	_, ok := store.Get(created.ID)
	assert.False(t, ok)

	err = svc.Delete(ctx, userID, created.ID)
	assert.True(t, apperror.IsType(err, apperror.TypeNotFound))
}

func TestApplicationService_StoreFailureIsInternal(t *testing.T) {
	svc, store := newTestApplicationService(t)
	store.Err = errors.New("connection refused")

	_, err := svc.Create(context.Background(), uuid.New(), validCreate())
	require.Error(t, err)
	assert.Equal(t, apperror.TypeInternal, apperror.From(err).Type)

	err = svc.Delete(context.Background(), uuid.New(), uuid.New())
	assert.Equal(t, apperror.TypeInternal, apperror.From(err).Type)
}
