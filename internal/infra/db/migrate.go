package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"journal_server/internal/infra/repository"
)

func ApplyMigrations(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&repository.StrategyModel{},
		&repository.TradeModel{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
