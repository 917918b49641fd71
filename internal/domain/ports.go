package domain

import (
	"context"
	"time"
)

// ListTradesOptions narrows a trade listing to a window and a cap.
type ListTradesOptions struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

// TradeRepository persists journal trades.
type TradeRepository interface {
	AddTrade(ctx context.Context, trade Trade) error
	ListTrades(ctx context.Context, opts ListTradesOptions) ([]Trade, error)
}

// StrategyRepository persists trading strategies.
type StrategyRepository interface {
	UpsertStrategy(ctx context.Context, strategy Strategy) error
	ListStrategies(ctx context.Context, limit int) ([]Strategy, error)
}

// TradeFeed provides an abstraction to pull journal trades from an
// external source (broker export, remote journal, test fixture).
type TradeFeed interface {
	FetchTrades(ctx context.Context) ([]Trade, error)
}
