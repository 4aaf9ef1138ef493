package dealership

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type dealershipModel struct {
	ID           uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Name         string              `gorm:"not null"`
	Address      string              `gorm:"not null"`
	Phone        string              `gorm:"not null"`
	Email        string              `gorm:"not null"`
	WorkingHours []workingHoursModel `gorm:"foreignKey:DealershipID"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (dealershipModel) TableName() string { return "dealerships" }

type workingHoursModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	DealershipID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_working_hours_day"`
	DayOfWeek    string    `gorm:"not null;uniqueIndex:idx_working_hours_day"`
	OpenTime     string    `gorm:"not null"`
	CloseTime    string    `gorm:"not null"`
	IsOpen       bool      `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (workingHoursModel) TableName() string { return "working_hours" }

func (m *workingHoursModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
