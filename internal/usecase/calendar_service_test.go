package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"journal_server/internal/domain"
)

func TestBuildMonthStatsSingleDay(t *testing.T) {
	day := time.Date(2024, 3, 12, 9, 30, 0, 0, time.UTC)
	win := pnlTrade(30, day)
	loss := pnlTrade(-10, day.Add(2*time.Hour))

	stats := buildMonthStats(normalized(win, loss))

	require.Contains(t, stats, 12)
	got := stats[12]
	assert.Equal(t, 2, got.Trades)
	assert.Equal(t, 1, got.Wins)
	assert.Equal(t, 50.0, got.WinRate)
	assert.InDelta(t, 20, got.PnL, 1e-9)
	require.Len(t, got.TradesList, 2)

	assert.InDelta(t, 30, got.BestTrade.PnL, 1e-9)
	assert.InDelta(t, -10, got.WorstTrade.PnL, 1e-9)
}

func TestBuildMonthStatsSkipsEmptyDays(t *testing.T) {
	stats := buildMonthStats(normalized(
		pnlTrade(10, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)),
		pnlTrade(20, time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)),
	))

	assert.Len(t, stats, 2)
	assert.Contains(t, stats, 1)
	assert.Contains(t, stats, 15)
	assert.NotContains(t, stats, 2)
}

func TestBuildMonthStatsStrictR(t *testing.T) {
	day := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)

	withStop := domain.Trade{
		Symbol:     "EURUSD",
		EntryPrice: 100,
		StopLoss:   fp(95),
		Quantity:   10,
		PnL:        fp(75),
		EntryTime:  day,
	}
	// No stop loss: contributes 0 R, unlike the flat analytics view.
	withoutStop := domain.Trade{
		Symbol:     "EURUSD",
		EntryPrice: 100,
		Quantity:   10,
		PnL:        fp(500),
		EntryTime:  day.Add(time.Hour),
	}

	stats := buildMonthStats(normalized(withStop, withoutStop))

	// 75/50 = 1.5 R, rounded to one decimal.
	assert.InDelta(t, 1.5, stats[5].TotalR, 1e-9)
}

func TestBuildMonthStatsTotalRRounding(t *testing.T) {
	day := time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC)
	trade := domain.Trade{
		Symbol:     "EURUSD",
		EntryPrice: 100,
		StopLoss:   fp(97),
		Quantity:   1,
		PnL:        fp(1),
		EntryTime:  day,
	}

	stats := buildMonthStats(normalized(trade))

	// 1/3 R rounds to 0.3.
	assert.InDelta(t, 0.3, stats[6].TotalR, 1e-9)
}

func TestBuildMonthStatsDominantEmotionFirstSeenTie(t *testing.T) {
	day := time.Date(2024, 3, 7, 9, 0, 0, 0, time.UTC)
	a := pnlTrade(10, day)
	a.Emotion = "calm"
	b := pnlTrade(-5, day.Add(time.Hour))
	b.Emotion = "anxious"

	stats := buildMonthStats(normalized(a, b))

	assert.Equal(t, "calm", stats[7].DominantEmotion)
}

func TestBuildMonthStatsPlaybooksAndBestStrategy(t *testing.T) {
	day := time.Date(2024, 3, 8, 9, 0, 0, 0, time.UTC)
	a := pnlTrade(10, day)
	a.Strategy = "Breakout"
	b := pnlTrade(20, day.Add(time.Hour))
	b.Strategy = "Reversal"
	c := pnlTrade(-5, day.Add(2*time.Hour))
	c.Strategy = "Reversal"

	stats := buildMonthStats(normalized(a, b, c))

	assert.Equal(t, []string{"Breakout", "Reversal"}, stats[8].Playbooks)
	assert.Equal(t, "Reversal", stats[8].BestStrategy)
}

func TestBuildMonthStatsEmptyInput(t *testing.T) {
	stats := buildMonthStats(nil)
	assert.Empty(t, stats)
}

func TestMonthStatsWindowsTrades(t *testing.T) {
	repo := &stubTradeRepo{trades: []domain.Trade{
		pnlTrade(10, time.Date(2024, 2, 28, 9, 0, 0, 0, time.UTC)),
		pnlTrade(20, time.Date(2024, 3, 3, 9, 0, 0, 0, time.UTC)),
		pnlTrade(30, time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)),
	}}
	service, err := NewCalendarService(repo)
	require.NoError(t, err)

	stats, err := service.MonthStats(context.Background(), 2024, time.March)
	require.NoError(t, err)

	assert.Len(t, stats, 1)
	assert.Contains(t, stats, 3)
}

func TestMonthStatsPropagatesRepoError(t *testing.T) {
	service, err := NewCalendarService(&stubTradeRepo{err: assert.AnError})
	require.NoError(t, err)

	_, err = service.MonthStats(context.Background(), 2024, time.March)
	assert.ErrorIs(t, err, assert.AnError)
}
