package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"journal_server/internal/domain"
)

type ImportService struct {
	feed         domain.TradeFeed
	tradeRepo    domain.TradeRepository
	strategyRepo domain.StrategyRepository
}

func NewImportService(feed domain.TradeFeed, tradeRepo domain.TradeRepository, strategyRepo domain.StrategyRepository) (*ImportService, error) {
	if feed == nil {
		return nil, errors.New("trade feed required")
	}
	if tradeRepo == nil {
		return nil, errors.New("trade repository required")
	}
	return &ImportService{
		feed:         feed,
		tradeRepo:    tradeRepo,
		strategyRepo: strategyRepo,
	}, nil
}

// Sync pulls the remote journal feed and upserts every trade it
// returns. Feed failures propagate unchanged; an empty feed yields
// ErrNoTrades so callers can distinguish it from a successful import.
func (s *ImportService) Sync(ctx context.Context) (int, error) {
	trades, err := s.feed.FetchTrades(ctx)
	if err != nil {
		return 0, err
	}
	if len(trades) == 0 {
		return 0, ErrNoTrades
	}

	for _, trade := range trades {
		if trade.ID == "" {
			trade.ID = uuid.NewString()
		}
		if s.strategyRepo != nil && trade.Strategy != "" {
			if err := s.strategyRepo.UpsertStrategy(ctx, domain.Strategy{Name: trade.Strategy}); err != nil {
				return 0, err
			}
		}
		if err := s.tradeRepo.AddTrade(ctx, trade); err != nil {
			return 0, err
		}
	}

	return len(trades), nil
}
