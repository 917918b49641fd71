package repository

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"journal_server/internal/domain"
)

type TradeModel struct {
	ID         string         `gorm:"column:id;primaryKey"`
	Symbol     string         `gorm:"column:symbol;not null;index"`
	Direction  string         `gorm:"column:direction;not null"`
	EntryPrice float64        `gorm:"column:entry_price"`
	ExitPrice  *float64       `gorm:"column:exit_price"`
	Quantity   float64        `gorm:"column:quantity"`
	StopLoss   *float64       `gorm:"column:stop_loss"`
	PnL        *float64       `gorm:"column:pnl"`
	EntryTime  time.Time      `gorm:"column:entry_time;not null;index"`
	Strategy   *string        `gorm:"column:strategy"`
	Mistakes   datatypes.JSON `gorm:"column:mistakes"`
	Emotion    *string        `gorm:"column:emotion"`
	Tags       datatypes.JSON `gorm:"column:tags"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at"`
}

func (TradeModel) TableName() string {
	return "trades"
}

func toTradeModel(trade domain.Trade) TradeModel {
	return TradeModel{
		ID:         trade.ID,
		Symbol:     trade.Symbol,
		Direction:  string(trade.Direction),
		EntryPrice: trade.EntryPrice,
		ExitPrice:  trade.ExitPrice,
		Quantity:   trade.Quantity,
		StopLoss:   trade.StopLoss,
		PnL:        trade.PnL,
		EntryTime:  trade.EntryTime,
		Strategy:   stringPointerOrNil(trade.Strategy),
		Mistakes:   labelsToJSON(trade.Mistakes),
		Emotion:    stringPointerOrNil(trade.Emotion),
		Tags:       labelsToJSON(trade.Tags),
	}
}

func (m TradeModel) toDomain() domain.Trade {
	return domain.Trade{
		ID:         m.ID,
		Symbol:     m.Symbol,
		Direction:  domain.TradeDirection(m.Direction),
		EntryPrice: m.EntryPrice,
		ExitPrice:  m.ExitPrice,
		Quantity:   m.Quantity,
		StopLoss:   m.StopLoss,
		PnL:        m.PnL,
		EntryTime:  m.EntryTime,
		Strategy:   stringValueOrEmpty(m.Strategy),
		Mistakes:   labelsFromJSON(m.Mistakes),
		Emotion:    stringValueOrEmpty(m.Emotion),
		Tags:       labelsFromJSON(m.Tags),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

type StrategyModel struct {
	Name        string    `gorm:"column:name;primaryKey"`
	Description *string   `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (StrategyModel) TableName() string {
	return "strategies"
}

func toStrategyModel(strategy domain.Strategy) StrategyModel {
	return StrategyModel{
		Name:        strategy.Name,
		Description: stringPointerOrNil(strategy.Description),
	}
}

func (m StrategyModel) toDomain() domain.Strategy {
	return domain.Strategy{
		Name:        m.Name,
		Description: stringValueOrEmpty(m.Description),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func stringPointerOrNil(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func stringValueOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func labelsToJSON(labels []string) datatypes.JSON {
	if len(labels) == 0 {
		return datatypes.JSON([]byte("[]"))
	}
	raw, err := json.Marshal(labels)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(raw)
}

func labelsFromJSON(data datatypes.JSON) []string {
	if len(data) == 0 {
		return nil
	}
	var labels []string
	if err := json.Unmarshal(data, &labels); err != nil {
		return nil
	}
	return labels
}
