package httpclient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"journal_server/internal/domain"
)

// JournalFeed pulls trade rows from a remote journal export endpoint.
type JournalFeed struct {
	client  *resty.Client
	baseURL string
}

type rawTrade struct {
	ID        string   `json:"id"`
	Symbol    string   `json:"symbol"`
	Direction string   `json:"direction"`
	Entry     float64  `json:"entry"`
	Exit      *float64 `json:"exit"`
	Quantity  float64  `json:"quantity"`
	StopLoss  *float64 `json:"sl"`
	PnL       *float64 `json:"pnl"`
	EntryTime string   `json:"entryTime"`
	Strategy  string   `json:"strategy"`
	Mistakes  []string `json:"mistakes"`
	Emotion   string   `json:"emotion"`
	Tags      []string `json:"tags"`
}

func NewJournalFeed(baseURL string, opts ...func(*resty.Client)) (*JournalFeed, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("baseURL is required")
	}

	client := resty.New().
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second)

	for _, opt := range opts {
		opt(client)
	}

	return &JournalFeed{
		client:  client,
		baseURL: baseURL,
	}, nil
}

func (f *JournalFeed) FetchTrades(ctx context.Context) ([]domain.Trade, error) {
	var payload []rawTrade

	resp, err := f.client.R().
		SetContext(ctx).
		SetResult(&payload).
		Get(f.baseURL)
	if err != nil {
		return nil, fmt.Errorf("fetch trades: %w", err)
	}

	if resp.StatusCode() >= 400 {
		return nil, fmt.Errorf("feed responded with status %d", resp.StatusCode())
	}

	trades := make([]domain.Trade, 0, len(payload))
	for _, item := range payload {
		if strings.TrimSpace(item.Symbol) == "" {
			continue
		}

		ts, err := time.Parse(time.RFC3339, item.EntryTime)
		if err != nil {
			// Skip malformed rows while allowing the rest to be processed.
			continue
		}

		trades = append(trades, domain.Trade{
			ID:         strings.TrimSpace(item.ID),
			Symbol:     strings.TrimSpace(item.Symbol),
			Direction:  normalizeDirection(item.Direction),
			EntryPrice: item.Entry,
			ExitPrice:  item.Exit,
			Quantity:   item.Quantity,
			StopLoss:   item.StopLoss,
			PnL:        item.PnL,
			EntryTime:  ts.UTC(),
			Strategy:   strings.TrimSpace(item.Strategy),
			Mistakes:   item.Mistakes,
			Emotion:    strings.TrimSpace(item.Emotion),
			Tags:       item.Tags,
		})
	}

	return trades, nil
}

func normalizeDirection(raw string) domain.TradeDirection {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "short", "sell":
		return domain.DirectionShort
	default:
		return domain.DirectionLong
	}
}
