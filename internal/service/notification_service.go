package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/issue-dashboard/internal/events"
)

// NotificationService logs notifications for issue lifecycle events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventIssueCreated, n.handleIssueCreated)
	n.dispatcher.Subscribe(events.EventIssueAssigned, n.handleIssueAssigned)
	n.dispatcher.Subscribe(events.EventIssueResolved, n.handleIssueResolved)
}

func (n *NotificationService) handleIssueCreated(_ context.Context, event events.Event) error {
	n.logger.Info("IssueCreated", zap.String("issue_id", event.IssueID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleIssueAssigned(_ context.Context, event events.Event) error {
	n.logger.Info("IssueAssigned", zap.String("issue_id", event.IssueID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleIssueResolved(_ context.Context, event events.Event) error {
	n.logger.Info("IssueResolved", zap.String("issue_id", event.IssueID), zap.Any("payload", event.Payload))
	return nil
}
