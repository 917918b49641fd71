package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"journal_server/internal/domain"
)

func TestRecordTradeAssignsID(t *testing.T) {
	tradeRepo := &stubTradeRepo{}
	strategyRepo := &stubStrategyRepo{}
	service, err := NewTradeService(tradeRepo, strategyRepo)
	require.NoError(t, err)

	err = service.RecordTrade(context.Background(), domain.Trade{Symbol: "EURUSD", Strategy: "Breakout"})
	require.NoError(t, err)

	require.Len(t, tradeRepo.added, 1)
	assert.NotEmpty(t, tradeRepo.added[0].ID)
	assert.False(t, tradeRepo.added[0].EntryTime.IsZero())
	require.Len(t, strategyRepo.upserted, 1)
	assert.Equal(t, "Breakout", strategyRepo.upserted[0].Name)
}

func TestRecordTradeRequiresSymbol(t *testing.T) {
	service, err := NewTradeService(&stubTradeRepo{}, nil)
	require.NoError(t, err)

	err = service.RecordTrade(context.Background(), domain.Trade{})
	assert.Error(t, err)
}

func TestRecordTradeKeepsProvidedID(t *testing.T) {
	tradeRepo := &stubTradeRepo{}
	service, err := NewTradeService(tradeRepo, nil)
	require.NoError(t, err)

	err = service.RecordTrade(context.Background(), domain.Trade{ID: "t-1", Symbol: "EURUSD"})
	require.NoError(t, err)

	require.Len(t, tradeRepo.added, 1)
	assert.Equal(t, "t-1", tradeRepo.added[0].ID)
}

func TestSaveStrategyRequiresName(t *testing.T) {
	service, err := NewTradeService(&stubTradeRepo{}, &stubStrategyRepo{})
	require.NoError(t, err)

	err = service.SaveStrategy(context.Background(), domain.Strategy{})
	assert.Error(t, err)
}
