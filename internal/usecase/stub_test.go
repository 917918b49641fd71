package usecase

import (
	"context"

	"journal_server/internal/domain"
)

type stubTradeRepo struct {
	trades []domain.Trade
	err    error
	added  []domain.Trade
}

func (s *stubTradeRepo) AddTrade(_ context.Context, trade domain.Trade) error {
	if s.err != nil {
		return s.err
	}
	s.added = append(s.added, trade)
	return nil
}

func (s *stubTradeRepo) ListTrades(_ context.Context, opts domain.ListTradesOptions) ([]domain.Trade, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]domain.Trade, 0, len(s.trades))
	for _, trade := range s.trades {
		if opts.From != nil && trade.EntryTime.Before(*opts.From) {
			continue
		}
		if opts.To != nil && !trade.EntryTime.Before(*opts.To) {
			continue
		}
		out = append(out, trade)
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

type stubStrategyRepo struct {
	err      error
	upserted []domain.Strategy
}

func (s *stubStrategyRepo) UpsertStrategy(_ context.Context, strategy domain.Strategy) error {
	if s.err != nil {
		return s.err
	}
	s.upserted = append(s.upserted, strategy)
	return nil
}

func (s *stubStrategyRepo) ListStrategies(_ context.Context, _ int) ([]domain.Strategy, error) {
	if s.err != nil {
		return nil, s.err
	}
	return append([]domain.Strategy(nil), s.upserted...), nil
}

type stubFeed struct {
	trades []domain.Trade
	err    error
}

func (s *stubFeed) FetchTrades(_ context.Context) ([]domain.Trade, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.trades, nil
}

func fp(v float64) *float64 {
	return &v
}
