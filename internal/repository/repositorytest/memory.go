// Package repositorytest provides in-memory repositories with the same
// ownership semantics as the gorm implementations, for use in tests.
package repositorytest

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/justsurfingit/job-application-tracker/internal/models"
	"github.com/justsurfingit/job-application-tracker/internal/repository"
)

type Users struct {
	mu   sync.Mutex
	byID map[uuid.UUID]models.User
	Err  error
}

func NewUsers() *Users {
	return &Users{byID: make(map[uuid.UUID]models.User)}
}

func (u *Users) Create(_ context.Context, user *models.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return u.Err
	}
	for _, existing := range u.byID {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	u.byID[user.ID] = *user
	return nil
}

func (u *Users) FindByEmail(_ context.Context, email string) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return nil, u.Err
	}
	for _, user := range u.byID {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (u *Users) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return nil, u.Err
	}
	user, ok := u.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

type Applications struct {
	mu   sync.Mutex
	byID map[uuid.UUID]models.Application
	Err  error

	// Now stamps createdAt/updatedAt; tests may replace it to control ordering.
	Now func() time.Time
}

func NewApplications() *Applications {
	return &Applications{byID: make(map[uuid.UUID]models.Application), Now: time.Now}
}

func (a *Applications) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Application, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return nil, a.Err
	}
	apps := []models.Application{}
	for _, app := range a.byID {
		if app.UserID == userID {
			apps = append(apps, app)
		}
	}
	slices.SortFunc(apps, func(x, y models.Application) int {
		return y.CreatedAt.Compare(x.CreatedAt)
	})
	return apps, nil
}

func (a *Applications) Create(_ context.Context, app *models.Application) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return a.Err
	}
	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	now := a.Now()
	app.CreatedAt, app.UpdatedAt = now, now
	a.byID[app.ID] = *app
	return nil
}

func (a *Applications) FindOwned(_ context.Context, id, userID uuid.UUID) (*models.Application, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return nil, a.Err
	}
	app, ok := a.byID[id]
	if !ok || app.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return &app, nil
}

func (a *Applications) UpdateOwned(_ context.Context, app *models.Application) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return a.Err
	}
	existing, ok := a.byID[app.ID]
	if !ok || existing.UserID != app.UserID {
		return repository.ErrNotFound
	}
	app.CreatedAt = existing.CreatedAt
	app.UpdatedAt = a.Now()
	a.byID[app.ID] = *app
	return nil
}

func (a *Applications) DeleteOwned(_ context.Context, id, userID uuid.UUID) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return a.Err
	}
	app, ok := a.byID[id]
	if !ok || app.UserID != userID {
		return repository.ErrNotFound
	}
	delete(a.byID, id)
	return nil
}

// Get reads a record without ownership checks.
func (a *Applications) Get(id uuid.UUID) (models.Application, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	app, ok := a.byID[id]
	return app, ok
}

// Put stores a record as-is, bypassing validation.
func (a *Applications) Put(app models.Application) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.byID[app.ID] = app
}
