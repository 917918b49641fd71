package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"journal_server/internal/domain"
)

func TestImportSyncStoresTrades(t *testing.T) {
	feed := &stubFeed{trades: []domain.Trade{
		{Symbol: "EURUSD", Strategy: "Breakout", EntryTime: monday},
		{ID: "t-2", Symbol: "NAS100", EntryTime: monday},
	}}
	tradeRepo := &stubTradeRepo{}
	strategyRepo := &stubStrategyRepo{}

	service, err := NewImportService(feed, tradeRepo, strategyRepo)
	require.NoError(t, err)

	count, err := service.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, count)
	require.Len(t, tradeRepo.added, 2)
	assert.NotEmpty(t, tradeRepo.added[0].ID)
	assert.Equal(t, "t-2", tradeRepo.added[1].ID)

	require.Len(t, strategyRepo.upserted, 1)
	assert.Equal(t, "Breakout", strategyRepo.upserted[0].Name)
}

func TestImportSyncEmptyFeed(t *testing.T) {
	service, err := NewImportService(&stubFeed{}, &stubTradeRepo{}, nil)
	require.NoError(t, err)

	count, err := service.Sync(context.Background())
	assert.ErrorIs(t, err, ErrNoTrades)
	assert.Zero(t, count)
}

func TestImportSyncPropagatesFeedError(t *testing.T) {
	service, err := NewImportService(&stubFeed{err: assert.AnError}, &stubTradeRepo{}, nil)
	require.NoError(t, err)

	_, err = service.Sync(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}
