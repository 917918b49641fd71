package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"journal_server/internal/domain"
)

type GormTradeRepository struct {
	db *gorm.DB
}

func NewGormTradeRepository(db *gorm.DB) (*GormTradeRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	return &GormTradeRepository{db: db}, nil
}

func (r *GormTradeRepository) AddTrade(ctx context.Context, trade domain.Trade) error {
	model := toTradeModel(trade)

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"symbol",
				"direction",
				"entry_price",
				"exit_price",
				"quantity",
				"stop_loss",
				"pnl",
				"entry_time",
				"strategy",
				"mistakes",
				"emotion",
				"tags",
				"updated_at",
			}),
		}).
		Create(&model).Error
}

func (r *GormTradeRepository) ListTrades(ctx context.Context, opts domain.ListTradesOptions) ([]domain.Trade, error) {
	var models []TradeModel

	query := r.db.WithContext(ctx).Order("entry_time ASC")
	if opts.From != nil {
		query = query.Where("entry_time >= ?", *opts.From)
	}
	if opts.To != nil {
		query = query.Where("entry_time < ?", *opts.To)
	}
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	trades := make([]domain.Trade, len(models))
	for i, model := range models {
		trades[i] = model.toDomain()
	}
	return trades, nil
}
