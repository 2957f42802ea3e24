package services

import (
	"cmp"
	"slices"
	"strings"

	"github.com/justsurfingit/job-application-tracker/internal/apperror"
	"github.com/justsurfingit/job-application-tracker/internal/dtos"
	"github.com/justsurfingit/job-application-tracker/internal/models"
)

// FilterAll disables a filter.
const FilterAll = "ALL"

type SortOrder string

const (
	SortNewest     SortOrder = "NEWEST"
	SortOldest     SortOrder = "OLDEST"
	SortSalaryDesc SortOrder = "SALARY_DESC"
	SortSalaryAsc  SortOrder = "SALARY_ASC"
)

func (s SortOrder) Valid() bool {
	switch s {
	case SortNewest, SortOldest, SortSalaryDesc, SortSalaryAsc:
		return true
	default:
		return false
	}
}

// ViewOptions selects and orders a list of applications. A zero value keeps
// everything, newest first.
type ViewOptions struct {
	Status   models.ApplicationStatus
	Category models.JobCategory
	Sort     SortOrder
}

// ParseViewOptions reads list query parameters. Empty values and "ALL" mean no filter.
func ParseViewOptions(q dtos.ApplicationListQuery) (ViewOptions, error) {
	var opts ViewOptions

	if status := strings.ToUpper(strings.TrimSpace(q.Status)); status != "" && status != FilterAll {
		opts.Status = models.ApplicationStatus(status)
		if !opts.Status.Valid() {
			return ViewOptions{}, apperror.Validation("Invalid status filter.")
		}
	}
	if category := strings.ToUpper(strings.TrimSpace(q.Category)); category != "" && category != FilterAll {
		opts.Category = models.JobCategory(category)
		if !opts.Category.Valid() {
			return ViewOptions{}, apperror.Validation("Invalid category filter.")
		}
	}
	if sort := strings.ToUpper(strings.TrimSpace(q.Sort)); sort != "" {
		opts.Sort = SortOrder(sort)
		if !opts.Sort.Valid() {
			return ViewOptions{}, apperror.Validation("Invalid sort order.")
		}
	}
	return opts, nil
}

// Project filters apps by status and category, then stable-sorts the result.
// The input slice is not modified.
func Project(apps []models.Application, opts ViewOptions) []models.Application {
	result := make([]models.Application, 0, len(apps))
	for _, app := range apps {
		if opts.Status != "" && app.Status != opts.Status {
			continue
		}
		if opts.Category != "" && app.JobCategory != opts.Category {
			continue
		}
		result = append(result, app)
	}

	switch opts.Sort {
	case SortOldest:
		slices.SortStableFunc(result, func(a, b models.Application) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		})
	case SortSalaryDesc:
		slices.SortStableFunc(result, func(a, b models.Application) int {
			return cmp.Compare(b.SalaryOrZero(), a.SalaryOrZero())
		})
	case SortSalaryAsc:
		slices.SortStableFunc(result, func(a, b models.Application) int {
			return cmp.Compare(a.SalaryOrZero(), b.SalaryOrZero())
		})
	default:
		slices.SortStableFunc(result, func(a, b models.Application) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}
	return result
}
