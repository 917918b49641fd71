package domain

import (
	"math"
	"time"
)

// RatioInfinite stands in for an unbounded ratio (profit factor or
// recovery factor with a zero denominator and positive numerator).
// encoding/json cannot marshal +Inf, so the sentinel is a finite value.
const RatioInfinite = math.MaxFloat64

// EquityPoint is one step of the cumulative P&L curve, one per trade.
type EquityPoint struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// OverviewStats are the global performance figures for a trade window.
type OverviewStats struct {
	NetPL          float64 `json:"net_pl"`
	WinRate        float64 `json:"win_rate"`
	ProfitFactor   float64 `json:"profit_factor"`
	AverageWin     float64 `json:"average_win"`
	AverageLoss    float64 `json:"average_loss"`
	MaxDrawdown    float64 `json:"max_drawdown"`
	RecoveryFactor float64 `json:"recovery_factor"`
	TradeCount     int     `json:"trade_count"`
	LargestWin     float64 `json:"largest_win"`
	LargestLoss    float64 `json:"largest_loss"`
}

type MistakeStat struct {
	Label string  `json:"label"`
	Count int     `json:"count"`
	PnL   float64 `json:"pnl"`
}

type EmotionStat struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	WinRate float64 `json:"win_rate"`
	PnL     float64 `json:"pnl"`
}

type TagStat struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// StrategyPerformance is one leaderboard row; MaxDrawdown is computed on
// the strategy's own equity curve.
type StrategyPerformance struct {
	Name        string  `json:"name"`
	Trades      int     `json:"trades"`
	Wins        int     `json:"wins"`
	PnL         float64 `json:"pnl"`
	MaxDrawdown float64 `json:"max_drawdown"`
	WinRate     float64 `json:"win_rate"`
}

// MonthlyStrategyPnL is a sparse month row of the month-by-strategy P&L
// matrix, keyed by strategy name.
type MonthlyStrategyPnL struct {
	Month string             `json:"month"`
	PnL   map[string]float64 `json:"pnl"`
}

// HeatmapRow holds summed P&L for one hour of the day across weekdays.
type HeatmapRow struct {
	Hour int     `json:"hour"`
	Mon  float64 `json:"mon"`
	Tue  float64 `json:"tue"`
	Wed  float64 `json:"wed"`
	Thu  float64 `json:"thu"`
	Fri  float64 `json:"fri"`
	Sat  float64 `json:"sat"`
	Sun  float64 `json:"sun"`
}

// RBucket is one bin of the R-multiple histogram. Sign is -1 for losing
// bins, 0 for the breakeven band, 1 for winning bins.
type RBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
	Sign  int    `json:"sign"`
}

// AnalyticsReport bundles every aggregate of the global aggregator.
type AnalyticsReport struct {
	EquityCurve     []EquityPoint         `json:"equity_curve"`
	Overview        OverviewStats         `json:"overview"`
	Mistakes        []MistakeStat         `json:"mistakes"`
	Emotions        []EmotionStat         `json:"emotions"`
	Tags            []TagStat             `json:"tags"`
	Strategies      []StrategyPerformance `json:"strategies"`
	MonthlyByStrat  []MonthlyStrategyPnL  `json:"monthly_by_strategy"`
	HourlyHeatmap   []HeatmapRow          `json:"hourly_heatmap"`
	RMultipleBucket []RBucket             `json:"r_multiple_histogram"`
}

// TradeSummary is the trimmed per-trade view embedded in DayStats.
type TradeSummary struct {
	ID        string         `json:"id"`
	Symbol    string         `json:"symbol"`
	Direction TradeDirection `json:"direction"`
	Entry     float64        `json:"entry"`
	Exit      float64        `json:"exit"`
	PnL       float64        `json:"pnl"`
}

// DayStats aggregates one calendar day of the month view.
type DayStats struct {
	Trades          int            `json:"trades"`
	PnL             float64        `json:"pnl"`
	Wins            int            `json:"wins"`
	WinRate         float64        `json:"win_rate"`
	TotalR          float64        `json:"total_r"`
	DominantEmotion string         `json:"dominant_emotion"`
	BestStrategy    string         `json:"best_strategy"`
	Playbooks       []string       `json:"playbooks"`
	BestTrade       TradeSummary   `json:"best_trade"`
	WorstTrade      TradeSummary   `json:"worst_trade"`
	TradesList      []TradeSummary `json:"trades_list"`
}

// DailyPoint is one bar of the dashboard P&L series.
type DailyPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type StrategyWinRate struct {
	Name    string  `json:"name"`
	Trades  int     `json:"trades"`
	WinRate float64 `json:"win_rate"`
}

type SymbolImpact struct {
	Symbol string  `json:"symbol"`
	Trades int     `json:"trades"`
	PnL    float64 `json:"pnl"`
}

// DashboardSummary is the top-line KPI variant of the analytics report.
type DashboardSummary struct {
	NetPL         float64           `json:"net_pl"`
	WinRate       float64           `json:"win_rate"`
	ProfitFactor  float64           `json:"profit_factor"`
	AverageWin    float64           `json:"average_win"`
	AverageLoss   float64           `json:"average_loss"`
	DailyPnL      []DailyPoint      `json:"daily_pnl"`
	CumulativePnL []DailyPoint      `json:"cumulative_pnl"`
	TopStrategies []StrategyWinRate `json:"top_strategies"`
	TopSymbols    []SymbolImpact    `json:"top_symbols"`
	RecentTrades  []TradeSummary    `json:"recent_trades"`
}
