package usecase

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"journal_server/internal/domain"
)

type AnalyticsService struct {
	tradeRepo domain.TradeRepository
}

func NewAnalyticsService(tradeRepo domain.TradeRepository) (*AnalyticsService, error) {
	if tradeRepo == nil {
		return nil, errors.New("trade repository required")
	}
	return &AnalyticsService{tradeRepo: tradeRepo}, nil
}

// Report aggregates every analytics view for the trades inside the
// optional [from, to] window. An empty window yields zeroed aggregates,
// never an error.
func (s *AnalyticsService) Report(ctx context.Context, from, to *time.Time) (domain.AnalyticsReport, error) {
	trades, err := s.tradeRepo.ListTrades(ctx, domain.ListTradesOptions{From: from, To: to})
	if err != nil {
		return domain.AnalyticsReport{}, err
	}

	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].EntryTime.Before(trades[j].EntryTime)
	})

	return buildAnalyticsReport(domain.NormalizeAll(trades)), nil
}

func buildAnalyticsReport(trades []domain.NormalizedTrade) domain.AnalyticsReport {
	mistakes, emotions, tags := computeBreakdowns(trades)

	return domain.AnalyticsReport{
		EquityCurve:     buildEquityCurve(trades),
		Overview:        computeOverview(trades),
		Mistakes:        mistakes,
		Emotions:        emotions,
		Tags:            tags,
		Strategies:      computeStrategyLeaderboard(trades),
		MonthlyByStrat:  computeMonthlyMatrix(trades),
		HourlyHeatmap:   computeHourlyHeatmap(trades),
		RMultipleBucket: computeRHistogram(trades),
	}
}

func buildEquityCurve(trades []domain.NormalizedTrade) []domain.EquityPoint {
	curve := make([]domain.EquityPoint, 0, len(trades))
	cum := 0.0
	for _, trade := range trades {
		cum += trade.PnL
		curve = append(curve, domain.EquityPoint{
			Time:  trade.EntryTime,
			Value: cum,
		})
	}
	return curve
}

func computeOverview(trades []domain.NormalizedTrade) domain.OverviewStats {
	var cum, peak, maxDrawdown float64
	var wins, losses int
	var sumWin, sumLoss float64
	var largestWin, largestLoss float64

	for _, trade := range trades {
		cum += trade.PnL
		if cum > peak {
			peak = cum
		}
		if dd := cum - peak; dd < maxDrawdown {
			maxDrawdown = dd
		}

		switch {
		case trade.PnL > 0:
			wins++
			sumWin += trade.PnL
			if trade.PnL > largestWin {
				largestWin = trade.PnL
			}
		case trade.PnL < 0:
			losses++
			sumLoss += trade.PnL
			if trade.PnL < largestLoss {
				largestLoss = trade.PnL
			}
		}
	}

	return domain.OverviewStats{
		NetPL:          cum,
		WinRate:        roundedRate(wins, len(trades)),
		ProfitFactor:   boundedRatio(sumWin, -sumLoss),
		AverageWin:     safeDivide(sumWin, float64(wins)),
		AverageLoss:    safeDivide(sumLoss, float64(losses)),
		MaxDrawdown:    maxDrawdown,
		RecoveryFactor: boundedRatio(cum, -maxDrawdown),
		TradeCount:     len(trades),
		LargestWin:     largestWin,
		LargestLoss:    largestLoss,
	}
}

func computeBreakdowns(trades []domain.NormalizedTrade) ([]domain.MistakeStat, []domain.EmotionStat, []domain.TagStat) {
	mistakeTally := newOrderedTally()
	emotionTally := newOrderedTally()
	tagTally := newOrderedTally()

	for _, trade := range trades {
		win := trade.PnL > 0
		for _, label := range trade.Mistakes {
			mistakeTally.add(label, trade.PnL, win)
		}
		emotionTally.add(trade.Emotion, trade.PnL, win)
		for _, label := range trade.Tags {
			tagTally.add(label, trade.PnL, win)
		}
	}

	mistakes := make([]domain.MistakeStat, 0, len(mistakeTally.labels()))
	for _, label := range mistakeTally.labels() {
		entry := mistakeTally.get(label)
		mistakes = append(mistakes, domain.MistakeStat{
			Label: label,
			Count: entry.count,
			PnL:   entry.pnl,
		})
	}
	// Worst-costing mistakes first.
	sort.SliceStable(mistakes, func(i, j int) bool {
		return mistakes[i].PnL < mistakes[j].PnL
	})

	emotions := make([]domain.EmotionStat, 0, len(emotionTally.labels()))
	for _, label := range emotionTally.labels() {
		entry := emotionTally.get(label)
		emotions = append(emotions, domain.EmotionStat{
			Label:   label,
			Count:   entry.count,
			WinRate: roundedRate(entry.wins, entry.count),
			PnL:     entry.pnl,
		})
	}
	sort.SliceStable(emotions, func(i, j int) bool {
		return emotions[i].Count > emotions[j].Count
	})

	tags := make([]domain.TagStat, 0, len(tagTally.labels()))
	for _, label := range tagTally.labels() {
		entry := tagTally.get(label)
		tags = append(tags, domain.TagStat{Label: label, Count: entry.count})
	}
	sort.SliceStable(tags, func(i, j int) bool {
		return tags[i].Count > tags[j].Count
	})

	return mistakes, emotions, tags
}

type strategyAccumulator struct {
	trades      int
	wins        int
	pnl         float64
	peak        float64
	maxDrawdown float64
}

func computeStrategyLeaderboard(trades []domain.NormalizedTrade) []domain.StrategyPerformance {
	order := make([]string, 0)
	accs := make(map[string]*strategyAccumulator)

	for _, trade := range trades {
		acc, ok := accs[trade.Strategy]
		if !ok {
			acc = &strategyAccumulator{}
			accs[trade.Strategy] = acc
			order = append(order, trade.Strategy)
		}

		acc.trades++
		acc.pnl += trade.PnL
		if trade.PnL > 0 {
			acc.wins++
		}
		if acc.pnl > acc.peak {
			acc.peak = acc.pnl
		}
		if dd := acc.pnl - acc.peak; dd < acc.maxDrawdown {
			acc.maxDrawdown = dd
		}
	}

	leaderboard := make([]domain.StrategyPerformance, 0, len(order))
	for _, name := range order {
		acc := accs[name]
		leaderboard = append(leaderboard, domain.StrategyPerformance{
			Name:        name,
			Trades:      acc.trades,
			Wins:        acc.wins,
			PnL:         acc.pnl,
			MaxDrawdown: acc.maxDrawdown,
			WinRate:     roundedRate(acc.wins, acc.trades),
		})
	}

	sort.SliceStable(leaderboard, func(i, j int) bool {
		return leaderboard[i].PnL > leaderboard[j].PnL
	})

	return leaderboard
}

func computeMonthlyMatrix(trades []domain.NormalizedTrade) []domain.MonthlyStrategyPnL {
	order := make([]string, 0)
	months := make(map[string]map[string]float64)

	for _, trade := range trades {
		month := trade.EntryTime.Format("Jan 2006")
		row, ok := months[month]
		if !ok {
			row = make(map[string]float64)
			months[month] = row
			order = append(order, month)
		}
		row[trade.Strategy] += trade.PnL
	}

	// Input is sorted by entry time, so first-seen order is chronological.
	matrix := make([]domain.MonthlyStrategyPnL, 0, len(order))
	for _, month := range order {
		matrix = append(matrix, domain.MonthlyStrategyPnL{
			Month: month,
			PnL:   months[month],
		})
	}
	return matrix
}

func computeHourlyHeatmap(trades []domain.NormalizedTrade) []domain.HeatmapRow {
	var grid [24][7]float64
	for _, trade := range trades {
		hour := trade.EntryTime.Hour()
		day := (int(trade.EntryTime.Weekday()) + 6) % 7 // Monday first
		grid[hour][day] += trade.PnL
	}

	rows := make([]domain.HeatmapRow, 24)
	for hour := 0; hour < 24; hour++ {
		rows[hour] = domain.HeatmapRow{
			Hour: hour,
			Mon:  grid[hour][0],
			Tue:  grid[hour][1],
			Wed:  grid[hour][2],
			Thu:  grid[hour][3],
			Fri:  grid[hour][4],
			Sat:  grid[hour][5],
			Sun:  grid[hour][6],
		}
	}
	return rows
}

// syntheticRiskFraction approximates the amount risked as a share of
// notional when a trade has no stop loss.
const syntheticRiskFraction = 0.01

var rBucketTemplate = []domain.RBucket{
	{Range: "≤ -3R", Sign: -1},
	{Range: "-3R to -2R", Sign: -1},
	{Range: "-2R to -1R", Sign: -1},
	{Range: "-1R to 1R", Sign: 0},
	{Range: "1R to 2R", Sign: 1},
	{Range: "2R to 3R", Sign: 1},
	{Range: "≥ 3R", Sign: 1},
}

func computeRHistogram(trades []domain.NormalizedTrade) []domain.RBucket {
	buckets := make([]domain.RBucket, len(rBucketTemplate))
	copy(buckets, rBucketTemplate)

	for _, trade := range trades {
		r := approxRMultiple(trade)
		buckets[classifyRBucket(r)].Count++
	}
	return buckets
}

// approxRMultiple normalizes P&L by the actual risk distance, falling
// back to a synthetic 1% of notional when the trade has no stop loss.
// The calendar view uses strictRMultiple instead.
func approxRMultiple(trade domain.NormalizedTrade) float64 {
	risk := trade.RiskAmount
	if !trade.HasRisk || risk <= 0 {
		risk = trade.EntryPrice * trade.Quantity * syntheticRiskFraction
	}
	if risk <= 0 {
		return 0
	}
	return trade.PnL / risk
}

// strictRMultiple treats missing risk as zero R.
func strictRMultiple(trade domain.NormalizedTrade) float64 {
	if !trade.HasRisk || trade.RiskAmount <= 0 {
		return 0
	}
	return trade.PnL / trade.RiskAmount
}

func classifyRBucket(r float64) int {
	switch {
	case r <= -3:
		return 0
	case r <= -2:
		return 1
	case r <= -1:
		return 2
	case r < 1:
		return 3
	case r < 2:
		return 4
	case r < 3:
		return 5
	default:
		return 6
	}
}

// roundedRate is the percentage of wins over total, rounded to the
// nearest integer, 0 when total is zero.
func roundedRate(wins, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(100 * float64(wins) / float64(total))
}

// boundedRatio divides num by den, substituting the RatioInfinite
// sentinel when den is zero and num is positive.
func boundedRatio(num, den float64) float64 {
	if den <= 0 {
		if num > 0 {
			return domain.RatioInfinite
		}
		return 0
	}
	return num / den
}

func safeDivide(a, b float64) float64 {
	if math.IsNaN(a) || math.IsNaN(b) {
		return 0
	}
	if math.Abs(b) < 1e-9 {
		return 0
	}
	return a / b
}
