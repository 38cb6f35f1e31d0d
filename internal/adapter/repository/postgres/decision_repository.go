package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ADPer0705/parsec/internal/domain/entity"
	"github.com/ADPer0705/parsec/internal/domain/repository"
)

type decisionRepository struct {
	db *gorm.DB
}

// NewDecisionRepository creates a new decision repository
func NewDecisionRepository(db *gorm.DB) repository.DecisionRepository {
	return &decisionRepository{db: db}
}

func (r *decisionRepository) Create(ctx context.Context, decision *entity.Decision) error {
	return r.db.WithContext(ctx).Create(decision).Error
}

func (r *decisionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Decision, error) {
	var decision entity.Decision
	err := r.db.WithContext(ctx).First(&decision, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &decision, nil
}

func (r *decisionRepository) List(ctx context.Context, limit, offset int) ([]*entity.Decision, int64, error) {
	var decisions []*entity.Decision
	var total int64

	if err := r.db.WithContext(ctx).Model(&entity.Decision{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&decisions).Error
	if err != nil {
		return nil, 0, err
	}

	return decisions, total, nil
}
