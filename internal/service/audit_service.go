package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/insurance-product-service/internal/config"
	"github.com/spec-kit/insurance-product-service/internal/events"
)

// AuditService records product mutations for a change trail.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.AuditConfig
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.AuditConfig) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to product events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventProductCreated, a.handleEvent)
	a.dispatcher.Subscribe(events.EventProductUpdated, a.handleEvent)
	a.dispatcher.Subscribe(events.EventProductDeleted, a.handleEvent)
}

func (a *AuditService) handleEvent(ctx context.Context, event events.Event) error {
	a.logger.Info("product audit",
		zap.String("event_id", event.ID),
		zap.String("type", string(event.Type)),
		zap.String("product_code", event.ProductCode),
		zap.String("actor", event.Actor.Subject),
		zap.Any("payload", event.Payload),
	)
	a.sendWebhookStub(ctx, event)
	return nil
}

// sendWebhookStub logs the delivery that a real webhook sender would make.
// TODO: replace with an HTTP POST once the audit sink endpoint is finalized.
func (a *AuditService) sendWebhookStub(_ context.Context, event events.Event) {
	if a.cfg.WebhookURL == "" {
		return
	}
	a.logger.Debug("audit webhook stub",
		zap.String("url", a.cfg.WebhookURL),
		zap.String("event_id", event.ID),
	)
}
