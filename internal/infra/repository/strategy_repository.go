package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"journal_server/internal/domain"
)

type GormStrategyRepository struct {
	db *gorm.DB
}

func NewGormStrategyRepository(db *gorm.DB) (*GormStrategyRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	return &GormStrategyRepository{db: db}, nil
}

func (r *GormStrategyRepository) UpsertStrategy(ctx context.Context, strategy domain.Strategy) error {
	model := toStrategyModel(strategy)

	// Never blank out an existing description with an empty upsert from
	// a trade reference.
	assignments := map[string]interface{}{
		"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
	}
	if model.Description != nil {
		assignments["description"] = *model.Description
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.Assignments(assignments),
		}).
		Create(&model).Error
}

func (r *GormStrategyRepository) ListStrategies(ctx context.Context, limit int) ([]domain.Strategy, error) {
	var models []StrategyModel

	query := r.db.WithContext(ctx).Order("name ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	strategies := make([]domain.Strategy, len(models))
	for i, model := range models {
		strategies[i] = model.toDomain()
	}
	return strategies, nil
}
