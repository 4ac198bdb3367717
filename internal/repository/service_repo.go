package repository

import (
	"context"
	"time"

	"openstage/internal/domain"

	"gorm.io/gorm"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

type serviceModel struct {
	ID              int64     `gorm:"column:id;primaryKey"`
	OwnerID         int64     `gorm:"column:owner_id;index"`
	Name            string    `gorm:"column:name"`
	DurationMinutes int       `gorm:"column:duration_minutes"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (serviceModel) TableName() string { return "services" }

func toDomainService(m serviceModel) *domain.StudioService {
	return &domain.StudioService{
		ID:              m.ID,
		OwnerID:         m.OwnerID,
		Name:            m.Name,
		DurationMinutes: m.DurationMinutes,
		CreatedAt:       m.CreatedAt,
	}
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.StudioService) error {
	m := serviceModel{
		OwnerID:         s.OwnerID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainService(m)
	return nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*domain.StudioService, error) {
	var m serviceModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainService(m), nil
}

func (r *ServiceRepository) List(ctx context.Context) ([]domain.StudioService, error) {
	var ms []serviceModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]domain.StudioService, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainService(m))
	}
	return out, nil
}
