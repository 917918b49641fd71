package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	fiber "github.com/gofiber/fiber/v2"
	swagger "github.com/gofiber/swagger"

	"journal_server/internal/domain"
	"journal_server/internal/usecase"
)

type TradeService interface {
	RecordTrade(ctx context.Context, trade domain.Trade) error
	ListTrades(ctx context.Context, opts domain.ListTradesOptions) ([]domain.Trade, error)
	SaveStrategy(ctx context.Context, strategy domain.Strategy) error
	ListStrategies(ctx context.Context, limit int) ([]domain.Strategy, error)
}

type AnalyticsService interface {
	Report(ctx context.Context, from, to *time.Time) (domain.AnalyticsReport, error)
}

type CalendarService interface {
	MonthStats(ctx context.Context, year int, month time.Month) (map[int]domain.DayStats, error)
}

type DashboardService interface {
	Summary(ctx context.Context) (domain.DashboardSummary, error)
}

type ImportService interface {
	Sync(ctx context.Context) (int, error)
}

type Router struct {
	app       *fiber.App
	trades    TradeService
	analytics AnalyticsService
	calendar  CalendarService
	dashboard DashboardService
	importer  ImportService
}

func New(trades TradeService, analytics AnalyticsService, calendar CalendarService, dashboard DashboardService, importer ImportService) *Router {
	app := fiber.New()

	r := &Router{
		app:       app,
		trades:    trades,
		analytics: analytics,
		calendar:  calendar,
		dashboard: dashboard,
		importer:  importer,
	}

	api := app.Group("/api")
	v1 := api.Group("/v1")

	v1.Post("/trades", r.recordTrade)
	v1.Get("/trades", r.listTrades)
	v1.Get("/strategies", r.listStrategies)
	v1.Post("/strategies", r.saveStrategy)
	v1.Get("/analytics", r.getAnalytics)
	v1.Get("/calendar", r.getCalendar)
	v1.Get("/dashboard", r.getDashboard)
	v1.Post("/import/sync", r.syncImport)

	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	return r
}

func (r *Router) App() *fiber.App {
	return r.app
}

// recordTrade godoc
// @Summary Record a journal trade
// @Tags trades
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "Trade payload"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /trades [post]
func (r *Router) recordTrade(c *fiber.Ctx) error {
	if r.trades == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "trade service unavailable")
	}

	var payload map[string]any
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	trade, err := decodeTradePayload(payload)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	if err := r.trades.RecordTrade(ctx, trade); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "ok", "id": trade.ID})
}

// listTrades godoc
// @Summary List journal trades
// @Tags trades
// @Produce json
// @Param limit query int false "Maximum number of trades"
// @Param date_from query string false "Lower bound on entry time"
// @Param date_to query string false "Upper bound on entry time"
// @Success 200 {array} domain.Trade
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /trades [get]
func (r *Router) listTrades(c *fiber.Ctx) error {
	if r.trades == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "trade service unavailable")
	}

	opts := domain.ListTradesOptions{Limit: queryInt(c, "limit", 1000)}

	from, to, err := dateWindow(c)
	if err != nil {
		return err
	}
	opts.From = from
	opts.To = to

	ctx, cancel := context.WithTimeout(userContext(c), 5*time.Second)
	defer cancel()

	trades, err := r.trades.ListTrades(ctx, opts)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(trades)
}

// listStrategies godoc
// @Summary List strategies
// @Tags strategies
// @Produce json
// @Param limit query int false "Maximum number of strategies"
// @Success 200 {array} domain.Strategy
// @Failure 500 {object} map[string]string
// @Router /strategies [get]
func (r *Router) listStrategies(c *fiber.Ctx) error {
	if r.trades == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "trade service unavailable")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 5*time.Second)
	defer cancel()

	strategies, err := r.trades.ListStrategies(ctx, queryInt(c, "limit", 100))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(strategies)
}

// saveStrategy godoc
// @Summary Create or update a strategy
// @Tags strategies
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "Strategy payload"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /strategies [post]
func (r *Router) saveStrategy(c *fiber.Ctx) error {
	if r.trades == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "trade service unavailable")
	}

	var payload map[string]any
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	strategy := domain.Strategy{
		Name:        toString(payload["name"]),
		Description: toString(payload["description"]),
	}
	if strategy.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name required")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 5*time.Second)
	defer cancel()

	if err := r.trades.SaveStrategy(ctx, strategy); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "ok"})
}

// getAnalytics godoc
// @Summary Full analytics report for a trade window
// @Tags analytics
// @Produce json
// @Param date_from query string false "Lower bound on entry time"
// @Param date_to query string false "Upper bound on entry time"
// @Success 200 {object} domain.AnalyticsReport
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /analytics [get]
func (r *Router) getAnalytics(c *fiber.Ctx) error {
	if r.analytics == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "analytics service unavailable")
	}

	from, to, err := dateWindow(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(userContext(c), 30*time.Second)
	defer cancel()

	report, err := r.analytics.Report(ctx, from, to)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(report)
}

// getCalendar godoc
// @Summary Per-day statistics for one calendar month
// @Tags analytics
// @Produce json
// @Param year query int true "Calendar year"
// @Param month query int true "Calendar month (1-12)"
// @Success 200 {object} map[int]domain.DayStats
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /calendar [get]
func (r *Router) getCalendar(c *fiber.Ctx) error {
	if r.calendar == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "calendar service unavailable")
	}

	year := queryInt(c, "year", 0)
	month := queryInt(c, "month", 0)
	if year < 1970 || month < 1 || month > 12 {
		return fiber.NewError(fiber.StatusBadRequest, "valid year and month required")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 30*time.Second)
	defer cancel()

	stats, err := r.calendar.MonthStats(ctx, year, time.Month(month))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(stats)
}

// getDashboard godoc
// @Summary Dashboard KPI summary
// @Tags analytics
// @Produce json
// @Success 200 {object} domain.DashboardSummary
// @Failure 500 {object} map[string]string
// @Router /dashboard [get]
func (r *Router) getDashboard(c *fiber.Ctx) error {
	if r.dashboard == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "dashboard service unavailable")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 30*time.Second)
	defer cancel()

	summary, err := r.dashboard.Summary(ctx)
	if err != nil {
		if errors.Is(err, usecase.ErrNoTrades) {
			return c.JSON(fiber.Map{"status": "no data"})
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(summary)
}

// syncImport godoc
// @Summary Trigger a journal feed import
// @Tags import
// @Produce json
// @Success 200 {object} map[string]int
// @Failure 500 {object} map[string]string
// @Router /import/sync [post]
func (r *Router) syncImport(c *fiber.Ctx) error {
	if r.importer == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "import service unavailable")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 30*time.Second)
	defer cancel()

	count, err := r.importer.Sync(ctx)
	if err != nil {
		if errors.Is(err, usecase.ErrNoTrades) {
			return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
				"imported": 0,
				"status":   "no trades available",
			})
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{"imported": count})
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func queryInt(c *fiber.Ctx, name string, fallback int) int {
	if v := c.Query(name); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func dateWindow(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	var from, to *time.Time

	if fromStr := c.Query("date_from"); fromStr != "" {
		parsed := parseTime(fromStr, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02")
		if parsed.IsZero() {
			return nil, nil, fiber.NewError(fiber.StatusBadRequest, "invalid date_from")
		}
		fromCopy := parsed
		from = &fromCopy
	}

	if toStr := c.Query("date_to"); toStr != "" {
		parsed := parseTime(toStr, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02")
		if parsed.IsZero() {
			return nil, nil, fiber.NewError(fiber.StatusBadRequest, "invalid date_to")
		}
		toCopy := parsed
		to = &toCopy
	}

	return from, to, nil
}

// decodeTradePayload coerces a loosely typed trade row into the domain
// record. Optional fields stay nil when absent; nothing beyond the
// symbol is rejected.
func decodeTradePayload(payload map[string]any) (domain.Trade, error) {
	symbol := strings.TrimSpace(toString(payload["symbol"]))
	if symbol == "" {
		return domain.Trade{}, errors.New("symbol required")
	}

	direction := domain.DirectionLong
	if dir := strings.ToLower(strings.TrimSpace(toString(payload["direction"]))); dir == "short" || dir == "sell" {
		direction = domain.DirectionShort
	}

	return domain.Trade{
		ID:         strings.TrimSpace(toString(payload["id"])),
		Symbol:     symbol,
		Direction:  direction,
		EntryPrice: toFloat(payload["entry"]),
		ExitPrice:  toFloatPtr(payload["exit"]),
		Quantity:   toFloat(payload["quantity"]),
		StopLoss:   toFloatPtr(payload["sl"]),
		PnL:        toFloatPtr(payload["pnl"]),
		EntryTime:  parseTime(payload["entryTime"], time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"),
		Strategy:   strings.TrimSpace(toString(payload["strategy"])),
		Mistakes:   toStringSlice(payload["mistakes"]),
		Emotion:    strings.TrimSpace(toString(payload["emotion"])),
		Tags:       toStringSlice(payload["tags"]),
	}, nil
}

func toFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case json.Number:
		f, _ := val.Float64()
		return f
	case string:
		f, _ := strconv.ParseFloat(val, 64)
		return f
	default:
		return 0
	}
}

func toFloatPtr(v any) *float64 {
	if v == nil {
		return nil
	}
	f := toFloat(v)
	return &f
}

func toString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case fmt.Stringer:
		return val.String()
	default:
		return ""
	}
}

func toStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(toString(item)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func parseTime(value any, layouts ...string) time.Time {
	raw := toString(value)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range layouts {
		if layout == "" {
			continue
		}
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
