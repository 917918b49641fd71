package usecase

import (
	"context"
	"errors"
	"math"
	"sort"

	"journal_server/internal/domain"
)

// ErrNoTrades is returned by the dashboard summary when the journal is
// empty; the analytics and calendar views instead return zeroed
// aggregates for that case.
var ErrNoTrades = errors.New("no trades recorded")

const (
	dashboardRankSize   = 5
	dashboardRecentSize = 5
)

type DashboardService struct {
	tradeRepo domain.TradeRepository
}

func NewDashboardService(tradeRepo domain.TradeRepository) (*DashboardService, error) {
	if tradeRepo == nil {
		return nil, errors.New("trade repository required")
	}
	return &DashboardService{tradeRepo: tradeRepo}, nil
}

// Summary builds the top-line KPI view over the whole journal.
func (s *DashboardService) Summary(ctx context.Context) (domain.DashboardSummary, error) {
	trades, err := s.tradeRepo.ListTrades(ctx, domain.ListTradesOptions{})
	if err != nil {
		return domain.DashboardSummary{}, err
	}
	if len(trades) == 0 {
		return domain.DashboardSummary{}, ErrNoTrades
	}

	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].EntryTime.Before(trades[j].EntryTime)
	})

	return buildDashboardSummary(domain.NormalizeAll(trades)), nil
}

func buildDashboardSummary(trades []domain.NormalizedTrade) domain.DashboardSummary {
	overview := computeOverview(trades)

	return domain.DashboardSummary{
		NetPL:         overview.NetPL,
		WinRate:       overview.WinRate,
		ProfitFactor:  overview.ProfitFactor,
		AverageWin:    overview.AverageWin,
		AverageLoss:   overview.AverageLoss,
		DailyPnL:      buildDailySeries(trades),
		CumulativePnL: cumulativeSeries(buildDailySeries(trades)),
		TopStrategies: rankStrategies(trades),
		TopSymbols:    rankSymbols(trades),
		RecentTrades:  recentTrades(trades),
	}
}

func buildDailySeries(trades []domain.NormalizedTrade) []domain.DailyPoint {
	daily := newOrderedTally()
	for _, trade := range trades {
		daily.add(trade.EntryTime.Format("2006-01-02"), trade.PnL, trade.PnL > 0)
	}

	series := make([]domain.DailyPoint, 0, len(daily.labels()))
	for _, date := range daily.labels() {
		series = append(series, domain.DailyPoint{
			Date:  date,
			Value: daily.get(date).pnl,
		})
	}
	return series
}

func cumulativeSeries(daily []domain.DailyPoint) []domain.DailyPoint {
	out := make([]domain.DailyPoint, len(daily))
	cum := 0.0
	for i, point := range daily {
		cum += point.Value
		out[i] = domain.DailyPoint{Date: point.Date, Value: cum}
	}
	return out
}

func rankStrategies(trades []domain.NormalizedTrade) []domain.StrategyWinRate {
	tally := newOrderedTally()
	for _, trade := range trades {
		tally.add(trade.Strategy, trade.PnL, trade.PnL > 0)
	}

	ranked := make([]domain.StrategyWinRate, 0, len(tally.labels()))
	for _, name := range tally.labels() {
		entry := tally.get(name)
		ranked = append(ranked, domain.StrategyWinRate{
			Name:    name,
			Trades:  entry.count,
			WinRate: roundedRate(entry.wins, entry.count),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].WinRate > ranked[j].WinRate
	})
	if len(ranked) > dashboardRankSize {
		ranked = ranked[:dashboardRankSize]
	}
	return ranked
}

func rankSymbols(trades []domain.NormalizedTrade) []domain.SymbolImpact {
	tally := newOrderedTally()
	for _, trade := range trades {
		tally.add(trade.Symbol, trade.PnL, trade.PnL > 0)
	}

	ranked := make([]domain.SymbolImpact, 0, len(tally.labels()))
	for _, symbol := range tally.labels() {
		entry := tally.get(symbol)
		ranked = append(ranked, domain.SymbolImpact{
			Symbol: symbol,
			Trades: entry.count,
			PnL:    entry.pnl,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return math.Abs(ranked[i].PnL) > math.Abs(ranked[j].PnL)
	})
	if len(ranked) > dashboardRankSize {
		ranked = ranked[:dashboardRankSize]
	}
	return ranked
}

// recentTrades returns the newest trades by entry time, descending.
// Input is sorted ascending.
func recentTrades(trades []domain.NormalizedTrade) []domain.TradeSummary {
	out := make([]domain.TradeSummary, 0, dashboardRecentSize)
	for i := len(trades) - 1; i >= 0 && len(out) < dashboardRecentSize; i-- {
		trade := trades[i]
		out = append(out, domain.TradeSummary{
			ID:        trade.ID,
			Symbol:    trade.Symbol,
			Direction: trade.Direction,
			Entry:     trade.EntryPrice,
			Exit:      trade.ExitPrice,
			PnL:       trade.PnL,
		})
	}
	return out
}
