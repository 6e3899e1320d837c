package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/dashboard-service/internal/events"
	"github.com/spec-kit/dashboard-service/internal/repository"
)

// NotificationService reacts to dashboard events: it logs them and turns
// warning toggles into transient notices readable only by the warned
// identity.
type NotificationService struct {
	dispatcher events.Dispatcher
	notices    repository.NoticeStore
	logger     *zap.Logger
	noticeTTL  time.Duration
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, notices repository.NoticeStore, logger *zap.Logger, noticeTTL time.Duration) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		notices:    notices,
		logger:     logger,
		noticeTTL:  noticeTTL,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventMemberWarned, n.handleMemberWarned)
	n.dispatcher.Subscribe(events.EventMemberActivated, n.handleMemberActivated)
	n.dispatcher.Subscribe(events.EventMemberAdded, n.handleMemberAdded)
	n.dispatcher.Subscribe(events.EventMemberRemoved, n.handleMemberRemoved)
	n.dispatcher.Subscribe(events.EventNewsPosted, n.handleNewsPosted)
}

// Notice returns the pending transient notice for a character, empty when
// none exists or it has already expired.
func (n *NotificationService) Notice(ctx context.Context, characterName string) (string, error) {
	return n.notices.Get(ctx, characterName)
}

func (n *NotificationService) handleMemberWarned(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.MemberWarnedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("MemberWarned",
		zap.String("character_name", payload.CharacterName),
		zap.Int("level", payload.Level),
		zap.Int("new_level", payload.NewLevel))

	message := "You have been warned!"
	if payload.NewLevel == 0 {
		message = fmt.Sprintf("Warning W%d removed!", payload.Level)
	}
	if err := n.notices.Put(ctx, payload.CharacterName, message, n.noticeTTL); err != nil {
		n.logger.Warn("failed to store warning notice", zap.Error(err))
	}
	return nil
}

func (n *NotificationService) handleMemberActivated(_ context.Context, event events.Event) error {
	n.logger.Info("MemberActivated", zap.String("actor", event.Actor.CharacterName), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleMemberAdded(_ context.Context, event events.Event) error {
	n.logger.Info("MemberAdded", zap.String("actor", event.Actor.CharacterName), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleMemberRemoved(_ context.Context, event events.Event) error {
	n.logger.Info("MemberRemoved", zap.String("actor", event.Actor.CharacterName), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleNewsPosted(_ context.Context, event events.Event) error {
	n.logger.Info("NewsPosted", zap.String("actor", event.Actor.CharacterName), zap.Any("payload", event.Payload))
	return nil
}
