package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"journal_server/internal/domain"
)

func TestFetchTradesSkipsMalformedRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"t-1","symbol":"EURUSD","direction":"short","entry":1.1,"quantity":1000,"sl":1.12,"pnl":-25,"entryTime":"2024-03-04T10:00:00Z","strategy":"Breakout"},
			{"id":"t-2","symbol":"NAS100","entryTime":"not-a-date"},
			{"id":"t-3","entryTime":"2024-03-04T11:00:00Z"}
		]`))
	}))
	defer server.Close()

	feed, err := NewJournalFeed(server.URL)
	require.NoError(t, err)

	trades, err := feed.FetchTrades(context.Background())
	require.NoError(t, err)

	require.Len(t, trades, 1)
	got := trades[0]
	assert.Equal(t, "t-1", got.ID)
	assert.Equal(t, domain.DirectionShort, got.Direction)
	require.NotNil(t, got.PnL)
	assert.InDelta(t, -25, *got.PnL, 1e-9)
	assert.Nil(t, got.ExitPrice)
	assert.Equal(t, "Breakout", got.Strategy)
}

func TestFetchTradesErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	feed, err := NewJournalFeed(server.URL)
	require.NoError(t, err)

	_, err = feed.FetchTrades(context.Background())
	assert.Error(t, err)
}

func TestNewJournalFeedRequiresURL(t *testing.T) {
	_, err := NewJournalFeed("  ")
	assert.Error(t, err)
}
