package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"journal_server/internal/domain"
)

type TradeService struct {
	tradeRepo    domain.TradeRepository
	strategyRepo domain.StrategyRepository
}

func NewTradeService(tradeRepo domain.TradeRepository, strategyRepo domain.StrategyRepository) (*TradeService, error) {
	if tradeRepo == nil {
		return nil, errors.New("trade repository required")
	}
	return &TradeService{
		tradeRepo:    tradeRepo,
		strategyRepo: strategyRepo,
	}, nil
}

// RecordTrade stores a journal entry, assigning an id and entry time
// when absent. Optional fields pass through untouched; defaulting
// happens at aggregation time.
func (s *TradeService) RecordTrade(ctx context.Context, trade domain.Trade) error {
	if trade.Symbol == "" {
		return errors.New("symbol required")
	}
	if trade.ID == "" {
		trade.ID = uuid.NewString()
	}
	if trade.EntryTime.IsZero() {
		trade.EntryTime = time.Now().UTC()
	}

	if err := s.ensureStrategy(ctx, trade.Strategy); err != nil {
		return err
	}
	return s.tradeRepo.AddTrade(ctx, trade)
}

func (s *TradeService) ListTrades(ctx context.Context, opts domain.ListTradesOptions) ([]domain.Trade, error) {
	if opts.Limit <= 0 {
		opts.Limit = 1000
	}
	return s.tradeRepo.ListTrades(ctx, opts)
}

func (s *TradeService) SaveStrategy(ctx context.Context, strategy domain.Strategy) error {
	if s.strategyRepo == nil {
		return errors.New("strategy repository required")
	}
	if strategy.Name == "" {
		return errors.New("strategy name required")
	}
	return s.strategyRepo.UpsertStrategy(ctx, strategy)
}

func (s *TradeService) ListStrategies(ctx context.Context, limit int) ([]domain.Strategy, error) {
	if s.strategyRepo == nil {
		return nil, errors.New("strategy repository required")
	}
	if limit <= 0 {
		limit = 100
	}
	return s.strategyRepo.ListStrategies(ctx, limit)
}

func (s *TradeService) ensureStrategy(ctx context.Context, name string) error {
	if s.strategyRepo == nil || name == "" {
		return nil
	}
	return s.strategyRepo.UpsertStrategy(ctx, domain.Strategy{Name: name})
}
