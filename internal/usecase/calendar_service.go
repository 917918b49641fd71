package usecase

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"journal_server/internal/domain"
)

type CalendarService struct {
	tradeRepo domain.TradeRepository
}

func NewCalendarService(tradeRepo domain.TradeRepository) (*CalendarService, error) {
	if tradeRepo == nil {
		return nil, errors.New("trade repository required")
	}
	return &CalendarService{tradeRepo: tradeRepo}, nil
}

// MonthStats aggregates the trades of one calendar month into per-day
// statistics, keyed by day of month. Days without trades are absent.
func (s *CalendarService) MonthStats(ctx context.Context, year int, month time.Month) (map[int]domain.DayStats, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	trades, err := s.tradeRepo.ListTrades(ctx, domain.ListTradesOptions{From: &start, To: &end})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].EntryTime.Before(trades[j].EntryTime)
	})

	return buildMonthStats(domain.NormalizeAll(trades)), nil
}

type dayAccumulator struct {
	trades     int
	pnl        float64
	wins       int
	totalR     float64
	strategies *orderedTally
	emotions   *orderedTally
	bestPnL    float64
	worstPnL   float64
	bestTrade  domain.TradeSummary
	worstTrade domain.TradeSummary
	tradesList []domain.TradeSummary
}

func buildMonthStats(trades []domain.NormalizedTrade) map[int]domain.DayStats {
	days := make(map[int]*dayAccumulator)

	for _, trade := range trades {
		day := trade.EntryTime.Day()
		acc, ok := days[day]
		if !ok {
			acc = &dayAccumulator{
				strategies: newOrderedTally(),
				emotions:   newOrderedTally(),
				bestPnL:    math.Inf(-1),
				worstPnL:   math.Inf(1),
			}
			days[day] = acc
		}

		win := trade.PnL > 0
		acc.trades++
		acc.pnl += trade.PnL
		if win {
			acc.wins++
		}
		acc.totalR += strictRMultiple(trade)
		acc.strategies.add(trade.Strategy, trade.PnL, win)
		acc.emotions.add(trade.Emotion, trade.PnL, win)

		summary := domain.TradeSummary{
			ID:        trade.ID,
			Symbol:    trade.Symbol,
			Direction: trade.Direction,
			Entry:     trade.EntryPrice,
			Exit:      trade.ExitPrice,
			PnL:       trade.PnL,
		}
		if trade.PnL > acc.bestPnL {
			acc.bestPnL = trade.PnL
			acc.bestTrade = summary
		}
		if trade.PnL < acc.worstPnL {
			acc.worstPnL = trade.PnL
			acc.worstTrade = summary
		}
		acc.tradesList = append(acc.tradesList, summary)
	}

	stats := make(map[int]domain.DayStats, len(days))
	for day, acc := range days {
		stats[day] = acc.finalize()
	}
	return stats
}

func (acc *dayAccumulator) finalize() domain.DayStats {
	best := acc.bestTrade
	worst := acc.worstTrade
	if math.IsInf(acc.bestPnL, -1) {
		best = domain.TradeSummary{Symbol: "-"}
	}
	if math.IsInf(acc.worstPnL, 1) {
		worst = domain.TradeSummary{Symbol: "-"}
	}

	return domain.DayStats{
		Trades:          acc.trades,
		PnL:             acc.pnl,
		Wins:            acc.wins,
		WinRate:         roundedRate(acc.wins, acc.trades),
		TotalR:          math.Round(acc.totalR*10) / 10,
		DominantEmotion: acc.emotions.top(),
		BestStrategy:    acc.strategies.top(),
		Playbooks:       acc.strategies.labels(),
		BestTrade:       best,
		WorstTrade:      worst,
		TradesList:      acc.tradesList,
	}
}
