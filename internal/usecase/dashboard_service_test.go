package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"journal_server/internal/domain"
)

func TestDashboardSummaryEmptyJournal(t *testing.T) {
	service, err := NewDashboardService(&stubTradeRepo{})
	require.NoError(t, err)

	_, err = service.Summary(context.Background())
	assert.ErrorIs(t, err, ErrNoTrades)
}

func TestDashboardSummaryKPIs(t *testing.T) {
	repo := &stubTradeRepo{trades: []domain.Trade{
		pnlTrade(100, monday),
		pnlTrade(-40, monday.Add(time.Hour)),
		pnlTrade(60, monday.Add(2*time.Hour)),
	}}
	service, err := NewDashboardService(repo)
	require.NoError(t, err)

	summary, err := service.Summary(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 120, summary.NetPL, 1e-9)
	assert.Equal(t, 67.0, summary.WinRate)
	assert.InDelta(t, 4.0, summary.ProfitFactor, 1e-9)
	assert.InDelta(t, 80, summary.AverageWin, 1e-9)
	assert.InDelta(t, -40, summary.AverageLoss, 1e-9)
}

func TestBuildDailySeriesAndCumulative(t *testing.T) {
	day1 := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)

	trades := normalized(
		pnlTrade(30, day1),
		pnlTrade(-10, day1.Add(2*time.Hour)),
		pnlTrade(20, day2),
	)

	daily := buildDailySeries(trades)
	require.Len(t, daily, 2)
	assert.Equal(t, "2024-03-04", daily[0].Date)
	assert.InDelta(t, 20, daily[0].Value, 1e-9)
	assert.InDelta(t, 20, daily[1].Value, 1e-9)

	cumulative := cumulativeSeries(daily)
	require.Len(t, cumulative, 2)
	assert.InDelta(t, 20, cumulative[0].Value, 1e-9)
	assert.InDelta(t, 40, cumulative[1].Value, 1e-9)
}

func TestRankStrategiesTopFive(t *testing.T) {
	names := []string{"A", "B", "C", "D", "E", "F"}
	trades := make([]domain.Trade, 0, len(names))
	for i, name := range names {
		trade := pnlTrade(10, monday.Add(time.Duration(i)*time.Hour))
		trade.Strategy = name
		trades = append(trades, trade)
	}
	// Give F a loss so it ranks last and falls off the top five.
	loser := pnlTrade(-10, monday.Add(10*time.Hour))
	loser.Strategy = "F"
	trades = append(trades, loser)

	ranked := rankStrategies(domain.NormalizeAll(trades))

	require.Len(t, ranked, 5)
	for _, entry := range ranked {
		assert.NotEqual(t, "F", entry.Name)
		assert.Equal(t, 100.0, entry.WinRate)
	}
}

func TestRankSymbolsByAbsoluteImpact(t *testing.T) {
	a := pnlTrade(10, monday)
	a.Symbol = "EURUSD"
	b := pnlTrade(-500, monday.Add(time.Hour))
	b.Symbol = "NAS100"
	c := pnlTrade(100, monday.Add(2*time.Hour))
	c.Symbol = "XAUUSD"

	ranked := rankSymbols(normalized(a, b, c))

	require.Len(t, ranked, 3)
	assert.Equal(t, "NAS100", ranked[0].Symbol)
	assert.Equal(t, "XAUUSD", ranked[1].Symbol)
	assert.Equal(t, "EURUSD", ranked[2].Symbol)
}

func TestRecentTradesNewestFirst(t *testing.T) {
	trades := make([]domain.Trade, 0, 7)
	for i := 0; i < 7; i++ {
		trade := pnlTrade(float64(i), monday.Add(time.Duration(i)*time.Hour))
		trade.ID = string(rune('a' + i))
		trades = append(trades, trade)
	}

	recent := recentTrades(domain.NormalizeAll(trades))

	require.Len(t, recent, 5)
	assert.Equal(t, "g", recent[0].ID)
	assert.Equal(t, "c", recent[4].ID)
}

func TestDashboardSummaryPropagatesRepoError(t *testing.T) {
	service, err := NewDashboardService(&stubTradeRepo{err: assert.AnError})
	require.NoError(t, err)

	_, err = service.Summary(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}
