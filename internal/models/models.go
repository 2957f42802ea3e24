package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Email is compared exactly as stored.
	Email          string   `gorm:"uniqueIndex;not null" json:"email"`
	Password       string   `gorm:"not null" json:"-"`
	Name           string   `gorm:"not null" json:"name"`
	DesiredJob     *string  `json:"desiredJob"`
	DesiredSalary  *float64 `json:"desiredSalary"`
	ProfilePicture *string  `json:"profilePicture"`

	// Applications is only declared so AutoMigrate creates the cascading foreign key.
	Applications []Application `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type Application struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Foreign Key
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`

	CompanyName    string            `gorm:"not null" json:"companyName"`
	Role           string            `gorm:"not null" json:"role"`
	JobDescription *string           `gorm:"type:text" json:"jobDescription"`
	JobCategory    JobCategory       `gorm:"type:varchar(16);not null" json:"jobCategory"`
	Seniority      Seniority         `gorm:"type:varchar(16);not null" json:"seniority"`
	Salary         *float64          `json:"salary"`
	Status         ApplicationStatus `gorm:"type:varchar(16);not null;default:'APPLIED'" json:"status"`
	TechnicalStage TechnicalStage    `gorm:"type:varchar(32);not null;default:'NONE'" json:"technicalStage"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// SalaryOrZero treats a missing salary as 0.
func (a Application) SalaryOrZero() float64 {
	if a.Salary == nil {
		return 0
	}
	return *a.Salary
}
