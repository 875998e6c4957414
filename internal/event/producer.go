// Package event publishes and consumes the store's domain events.
package event

import (
	"context"
	"log/slog"

	"github.com/Humanoid-1/Web-backend/internal/domain"
	pkgkafka "github.com/Humanoid-1/Web-backend/pkg/kafka"
	"github.com/Humanoid-1/Web-backend/pkg/logger"
)

// Source identifies events originating from this backend.
const Source = "web-backend"

// Catalog actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

var (
	TopicOrderCreated           = pkgkafka.Topic("order", "created")
	TopicOrderStatusChanged     = pkgkafka.Topic("order", "status_changed")
	TopicUserRegistered         = pkgkafka.Topic("user", "registered")
	TopicPasswordResetRequested = pkgkafka.Topic("user", "password_reset_requested")
	TopicContactSubmitted       = pkgkafka.Topic("contact", "submitted")
)

// CatalogTopic returns the topic for a catalog change, e.g.
// "ecommerce.catalog.laptop.created".
func CatalogTopic(entity, action string) string {
	return pkgkafka.Topic("catalog", entity, action)
}

// CatalogTopics lists every catalog topic.
func CatalogTopics() []string {
	var topics []string
	for _, entity := range []string{domain.EntityLaptop, domain.EntityAccessory, domain.EntityPart} {
		for _, action := range []string{ActionCreated, ActionUpdated, ActionDeleted} {
			topics = append(topics, CatalogTopic(entity, action))
		}
	}
	return topics
}

// CatalogChangedData is the payload of every catalog event.
type CatalogChangedData struct {
	Entity string `json:"entity"`
	ID     string `json:"id"`
	Action string `json:"action"`
	Record any    `json:"record,omitempty"`
}

type OrderCreatedData struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	PaymentID   string  `json:"payment_id"`
	TotalAmount float64 `json:"total_amount"`
	Items       int     `json:"items"`
}

type OrderStatusChangedData struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Status string `json:"status"`
}

type UserRegisteredData struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// PasswordResetRequestedData carries the raw token for the mailer.
type PasswordResetRequestedData struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

type ContactSubmittedData struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Publisher is satisfied by *pkgkafka.Producer.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes domain events. Failures are logged and swallowed: the
// write that triggered the event has already succeeded. A nil Publisher turns
// every method into a no-op.
type Producer struct {
	pub    Publisher
	logger *slog.Logger
}

// NewProducer creates a producer.
func NewProducer(pub Publisher, logger *slog.Logger) *Producer {
	return &Producer{pub: pub, logger: logger}
}

func (p *Producer) publish(ctx context.Context, topic, aggregateType, aggregateID string, data any) {
	if p == nil || p.pub == nil {
		return
	}
	l := logger.WithContext(ctx, p.logger)

	evt, err := pkgkafka.NewEvent(topic, aggregateType, aggregateID, Source, data)
	if err != nil {
		l.ErrorContext(ctx, "build event", slog.String("topic", topic), slog.String("error", err.Error()))
		return
	}
	evt.WithCorrelationID(logger.CorrelationIDFromContext(ctx))

	if err := p.pub.Publish(ctx, topic, evt); err != nil {
		l.ErrorContext(ctx, "publish event",
			slog.String("topic", topic),
			slog.String("aggregate_id", aggregateID),
			slog.String("error", err.Error()),
		)
		return
	}
	l.DebugContext(ctx, "published event", slog.String("topic", topic), slog.String("aggregate_id", aggregateID))
}

// CatalogChanged publishes a catalog write.
func (p *Producer) CatalogChanged(ctx context.Context, entity, action, id string, record any) {
	p.publish(ctx, CatalogTopic(entity, action), entity, id, CatalogChangedData{
		Entity: entity,
		ID:     id,
		Action: action,
		Record: record,
	})
}

func (p *Producer) OrderCreated(ctx context.Context, o *domain.Order) {
	p.publish(ctx, TopicOrderCreated, "order", o.ID, OrderCreatedData{
		ID:          o.ID,
		UserID:      o.UserID,
		PaymentID:   o.PaymentID,
		TotalAmount: o.TotalAmount,
		Items:       len(o.Items),
	})
}

func (p *Producer) OrderStatusChanged(ctx context.Context, o *domain.Order) {
	p.publish(ctx, TopicOrderStatusChanged, "order", o.ID, OrderStatusChangedData{
		ID:     o.ID,
		UserID: o.UserID,
		Status: o.Status,
	})
}

func (p *Producer) UserRegistered(ctx context.Context, u *domain.User) {
	p.publish(ctx, TopicUserRegistered, "user", u.ID, UserRegisteredData{ID: u.ID, Email: u.Email, Name: u.Name})
}

func (p *Producer) PasswordResetRequested(ctx context.Context, u *domain.User, token string) {
	p.publish(ctx, TopicPasswordResetRequested, "user", u.ID, PasswordResetRequestedData{
		UserID: u.ID,
		Email:  u.Email,
		Token:  token,
	})
}

func (p *Producer) ContactSubmitted(ctx context.Context, c *domain.Contact) {
	p.publish(ctx, TopicContactSubmitted, "contact", c.ID, ContactSubmittedData{ID: c.ID, Name: c.Name, Email: c.Email})
}
