package model

import "time"

// NewsletterStatus is the lifecycle state of a newsletter.
type NewsletterStatus string

const (
	NewsletterDraft     NewsletterStatus = "draft"
	NewsletterScheduled NewsletterStatus = "scheduled"
	NewsletterSent      NewsletterStatus = "sent"
)

// Newsletter represents a newsletter issue. Status only ever moves forward:
// draft -> scheduled -> draft (unschedule) or draft/scheduled -> sent, never
// out of sent. SentCount is the number of recipients delivery succeeded for,
// fixed at send time.
type Newsletter struct {
	ID          uint             `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string           `json:"title" gorm:"type:varchar(200);not null"`
	Content     string           `json:"content" gorm:"type:text;not null"`
	Status      NewsletterStatus `json:"status" gorm:"type:varchar(20);not null;default:draft;index"`
	ScheduledAt *time.Time       `json:"scheduled_at,omitempty"`
	SentAt      *time.Time       `json:"sent_at,omitempty"`
	SentCount   int              `json:"sent_count" gorm:"not null;default:0"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// TableName specifies the table name for Newsletter
func (Newsletter) TableName() string {
	return "newsletters"
}

// RequestStatus is the review state of a newsletter topic request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

// NewsletterRequest is a reader-submitted topic suggestion for a future
// newsletter issue. Guests may submit, so the email is stored directly.
type NewsletterRequest struct {
	ID          uint          `json:"id" gorm:"primaryKey;autoIncrement"`
	Email       string        `json:"email" gorm:"type:varchar(255);not null;index"`
	Name        string        `json:"name,omitempty" gorm:"type:varchar(100)"`
	Topic       string        `json:"topic" gorm:"type:varchar(200);not null"`
	Description string        `json:"description,omitempty" gorm:"type:text"`
	Priority    int           `json:"priority" gorm:"not null;default:0"`
	Votes       int           `json:"votes" gorm:"not null;default:0"`
	Status      RequestStatus `json:"status" gorm:"type:varchar(20);not null;default:pending;index"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// TableName specifies the table name for NewsletterRequest
func (NewsletterRequest) TableName() string {
	return "newsletter_requests"
}
