package notify

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pocket-ledger/backend/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// LimitExceededMessage is published when an expense takes a category over its limit.
type LimitExceededMessage struct {
	OwnerID      uuid.UUID       `json:"ownerId"`
	ExpenseID    uuid.UUID       `json:"expenseId"`
	CategoryID   uuid.UUID       `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Limit        decimal.Decimal `json:"limit"`
	Total        decimal.Decimal `json:"total"`
	Exceeded     decimal.Decimal `json:"exceeded"`
	Timestamp    time.Time       `json:"timestamp"`
}

// NewLimitExceededMessage builds the message for a recorded expense.
func NewLimitExceededMessage(expense models.Expense, e *models.LimitExceededError) LimitExceededMessage {
	return LimitExceededMessage{
		OwnerID:      expense.OwnerID,
		ExpenseID:    expense.ID,
		CategoryID:   e.CategoryID,
		CategoryName: e.CategoryName,
		Limit:        e.Limit,
		Total:        e.Total,
		Exceeded:     e.Exceeded,
		Timestamp:    time.Now().In(time.UTC),
	}
}

func (m LimitExceededMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// Publisher delivers notifications.
type Publisher interface {
	PublishLimitExceeded(ctx context.Context, msg LimitExceededMessage) error
	Close() error
}

// Nop discards all notifications.
type Nop struct{}

func (Nop) PublishLimitExceeded(context.Context, LimitExceededMessage) error { return nil }
func (Nop) Close() error                                                     { return nil }

// LimitBreaches counts the recorded expenses that took their category over its limit.
var LimitBreaches = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "limit_breaches_total",
		Help: "How many recorded expenses exceeded the limit of their category.",
	},
)

var (
	mu        sync.RWMutex
	publisher Publisher = Nop{}
)

// Use sets the publisher for LimitExceeded and returns the previous one.
func Use(p Publisher) Publisher {
	mu.Lock()
	defer mu.Unlock()

	previous := publisher
	publisher = p
	return previous
}

// LimitExceeded publishes the message with the configured publisher.
//
// Failures are logged and otherwise ignored, the expense is already recorded.
func LimitExceeded(ctx context.Context, msg LimitExceededMessage) {
	LimitBreaches.Inc()

	mu.RLock()
	p := publisher
	mu.RUnlock()

	err := p.PublishLimitExceeded(ctx, msg)
	if err != nil {
		log.Error().Err(err).Str("expense", msg.ExpenseID.String()).Str("category", msg.CategoryID.String()).Msg("publishing limit breach failed")
		return
	}

	log.Debug().Str("expense", msg.ExpenseID.String()).Str("exceeded", msg.Exceeded.String()).Msg("published limit breach")
}
