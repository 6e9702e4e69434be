package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	EventNewOrder      = "newOrder"
	EventOrderAssigned = "orderAssigned"
	EventOrderStatus   = "orderStatus"
)

type Notification struct {
	ID             primitive.ObjectID `bson:"_id" json:"-"`
	NotificationID string             `bson:"notification_id" json:"notification_id"`
	UserRole       string             `bson:"user_role" json:"user_role"`
	UserID         int64              `bson:"user_id" json:"user_id"`
	OrderID        int64              `bson:"order_id" json:"order_id"`
	Event          string             `bson:"event" json:"event"`
	Message        string             `bson:"message" json:"message"`
	IsRead         bool               `bson:"is_read" json:"is_read"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}
