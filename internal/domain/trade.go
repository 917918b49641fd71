package domain

import "time"

type TradeDirection string

const (
	DirectionLong  TradeDirection = "long"
	DirectionShort TradeDirection = "short"
)

// Fallback labels applied during normalization when the optional
// grouping fields are absent on a trade.
const (
	NoStrategy     = "No Strategy"
	NeutralEmotion = "Neutral"
	UntaggedLabel  = "Untagged"
)

// Trade is a single journal entry. ExitPrice, StopLoss and PnL are nil
// while unknown (open trade or sparse import row); Strategy and Emotion
// are empty strings when unset. Aggregators never read these fields
// directly, they go through Normalized first.
type Trade struct {
	ID         string
	Symbol     string
	Direction  TradeDirection
	EntryPrice float64
	ExitPrice  *float64
	Quantity   float64
	StopLoss   *float64
	PnL        *float64
	EntryTime  time.Time
	Strategy   string
	Mistakes   []string
	Emotion    string
	Tags       []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NormalizedTrade is the shape every aggregation pass consumes: all
// default-when-absent policy is applied here, in one place.
type NormalizedTrade struct {
	ID         string
	Symbol     string
	Direction  TradeDirection
	EntryPrice float64
	ExitPrice  float64
	Quantity   float64
	PnL        float64
	EntryTime  time.Time
	Strategy   string
	Mistakes   []string
	Emotion    string
	Tags       []string

	// RiskAmount is |entry - stop| * quantity. HasRisk is false when the
	// trade carries no stop loss, in which case RiskAmount is 0.
	RiskAmount float64
	HasRisk    bool
}

// Normalized applies the absent-field defaults and derives the risk
// distance for a trade.
func (t Trade) Normalized() NormalizedTrade {
	n := NormalizedTrade{
		ID:         t.ID,
		Symbol:     t.Symbol,
		Direction:  t.Direction,
		EntryPrice: t.EntryPrice,
		Quantity:   t.Quantity,
		EntryTime:  t.EntryTime,
		Strategy:   t.Strategy,
		Mistakes:   t.Mistakes,
		Emotion:    t.Emotion,
		Tags:       t.Tags,
	}

	if t.ExitPrice != nil {
		n.ExitPrice = *t.ExitPrice
	}
	if t.PnL != nil {
		n.PnL = *t.PnL
	}
	if t.StopLoss != nil {
		dist := t.EntryPrice - *t.StopLoss
		if dist < 0 {
			dist = -dist
		}
		n.RiskAmount = dist * t.Quantity
		n.HasRisk = true
	}

	if n.Strategy == "" {
		n.Strategy = NoStrategy
	}
	if n.Emotion == "" {
		n.Emotion = NeutralEmotion
	}
	if len(n.Tags) == 0 {
		n.Tags = []string{UntaggedLabel}
	}

	return n
}

// NormalizeAll maps a trade snapshot into its normalized form, preserving
// order.
func NormalizeAll(trades []Trade) []NormalizedTrade {
	out := make([]NormalizedTrade, len(trades))
	for i, t := range trades {
		out[i] = t.Normalized()
	}
	return out
}

// Strategy is an opaque grouping key for trades; the journal only needs
// its name and an optional free-text description.
type Strategy struct {
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
