package model

import "time"

// NotificationStatus describes outbox delivery state.
type NotificationStatus string

const (
	NotificationStatusPending    NotificationStatus = "PENDING"
	NotificationStatusProcessing NotificationStatus = "PROCESSING"
	NotificationStatusSent       NotificationStatus = "SENT"
	NotificationStatusFailed     NotificationStatus = "FAILED"
	NotificationStatusDead       NotificationStatus = "DEAD"
)

// Message is an email ready to be handed to a transport.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Notification is an outbox entry holding a message until it is delivered.
type Notification struct {
	ID            int64
	OrderID       string
	Message       Message
	Status        NotificationStatus
	Attempts      int
	LastError     string
	NextAttemptAt time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
