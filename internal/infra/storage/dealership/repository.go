package dealership

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/m04kA/SMC-TestDriveService/internal/domain"
	"github.com/m04kA/SMC-TestDriveService/pkg/types"
)

// Repository хранит дилерский центр и его недельное расписание
type Repository struct {
	db *gorm.DB
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetDealership возвращает дилерский центр вместе с расписанием.
// Маркетплейс обслуживает один дилерский центр: берется первый созданный.
func (r *Repository) GetDealership(ctx context.Context) (*domain.Dealership, error) {
	var m dealershipModel

	err := r.db.WithContext(ctx).
		Preload("WorkingHours").
		Order("created_at ASC").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDealershipNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDealership: %v", ErrQuery, err)
	}

	return toDomain(&m), nil
}

// ReplaceWorkingHours атомарно записывает расписание дилера (upsert по dealership_id + day_of_week)
func (r *Repository) ReplaceWorkingHours(ctx context.Context, dealershipID uuid.UUID, schedule []domain.WorkingHours) error {
	rows := make([]workingHoursModel, 0, len(schedule))
	for _, wh := range schedule {
		rows = append(rows, workingHoursModel{
			DealershipID: dealershipID,
			DayOfWeek:    string(wh.DayOfWeek),
			OpenTime:     wh.OpenTime.String(),
			CloseTime:    wh.CloseTime.String(),
			IsOpen:       wh.IsOpen,
		})
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "dealership_id"}, {Name: "day_of_week"}},
			DoUpdates: clause.AssignmentColumns([]string{"open_time", "close_time", "is_open", "updated_at"}),
		}).Create(&rows).Error
	})
	if err != nil {
		return fmt.Errorf("%w: ReplaceWorkingHours: %v", ErrQuery, err)
	}

	return nil
}

func toDomain(m *dealershipModel) *domain.Dealership {
	d := &domain.Dealership{
		ID:           m.ID,
		Name:         m.Name,
		Address:      m.Address,
		Phone:        m.Phone,
		Email:        m.Email,
		WorkingHours: make([]domain.WorkingHours, 0, len(m.WorkingHours)),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}

	for _, wh := range m.WorkingHours {
		d.WorkingHours = append(d.WorkingHours, domain.WorkingHours{
			DayOfWeek: domain.DayOfWeek(wh.DayOfWeek),
			IsOpen:    wh.IsOpen,
			OpenTime:  types.TimeString(wh.OpenTime),
			CloseTime: types.TimeString(wh.CloseTime),
		})
	}

	return d
}
