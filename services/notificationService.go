package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"boutique-tailoring/apperrors"
	"boutique-tailoring/logger"
	"boutique-tailoring/models"

	"github.com/google/uuid"
)

// Inbox writes outlive the request that triggered them.
const inboxWriteTimeout = 5 * time.Second

// Broadcaster pushes an event to every connected client.
type Broadcaster interface {
	Broadcast(event string, payload interface{})
}

type NotificationStore interface {
	Insert(ctx context.Context, n models.Notification) error
	ListByMaster(ctx context.Context, masterID int64, unreadOnly bool) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID string) error
}

// Event is something that happened to an order after it was committed.
type Event struct {
	Name    string
	OrderID int64
	// MasterID receives an inbox entry when set.
	MasterID int64
	Message  string
	Payload  interface{}
}

// Publisher is what the workflows need from the notification side.
type Publisher interface {
	Publish(ctx context.Context, ev Event)
}

type NotificationService struct {
	hub   Broadcaster
	store NotificationStore
	log   *slog.Logger
	now   func() time.Time
}

// NewNotificationService builds the service. store may be nil, in which case
// events are only broadcast and the inbox is unavailable.
func NewNotificationService(hub Broadcaster, store NotificationStore, log *slog.Logger) *NotificationService {
	return &NotificationService{hub: hub, store: store, log: log, now: time.Now}
}

// Publish never fails the caller: the order is already committed.
func (s *NotificationService) Publish(ctx context.Context, ev Event) {
	log := logger.FromContext(ctx, s.log)
	if s.hub != nil {
		s.hub.Broadcast(ev.Name, ev.Payload)
	}
	if s.store == nil || ev.MasterID <= 0 {
		return
	}

	n := models.Notification{
		NotificationID: uuid.New().String(),
		UserRole:       "master",
		UserID:         ev.MasterID,
		OrderID:        ev.OrderID,
		Event:          ev.Name,
		Message:        ev.Message,
		CreatedAt:      s.now().UTC(),
	}
	insertCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), inboxWriteTimeout)
	defer cancel()
	if err := s.store.Insert(insertCtx, n); err != nil {
		log.Error("store notification failed",
			slog.String("event", ev.Name),
			slog.Int64("order_id", ev.OrderID),
			slog.String("error", err.Error()))
		return
	}
	log.Debug("notification stored", slog.String("notification_id", n.NotificationID), slog.Int64("master_id", ev.MasterID))
}

func (s *NotificationService) ListForMaster(ctx context.Context, masterID int64, unreadOnly bool) ([]models.Notification, error) {
	if s.store == nil {
		return nil, fmt.Errorf("%w: notification inbox is not configured", apperrors.ErrUnavailable)
	}
	if masterID <= 0 {
		return nil, apperrors.NewValidation("master_id", "Missing required field: master_id")
	}
	return s.store.ListByMaster(ctx, masterID, unreadOnly)
}

func (s *NotificationService) MarkRead(ctx context.Context, notificationID string) error {
	if s.store == nil {
		return fmt.Errorf("%w: notification inbox is not configured", apperrors.ErrUnavailable)
	}
	if notificationID == "" {
		return apperrors.NewValidation("notification_id", "Missing required field: notification_id")
	}
	return s.store.MarkRead(ctx, notificationID)
}
