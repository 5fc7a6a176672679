package model

import "time"

// Subscriber represents a newsletter recipient. Rows are never physically
// deleted; unsubscribing flips IsActive so historical send targeting stays
// auditable.
type Subscriber struct {
	ID               uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	Email            string     `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	IsActive         bool       `json:"is_active" gorm:"not null;default:false;index"`
	UnsubscribeToken string     `json:"-" gorm:"type:varchar(36);not null;uniqueIndex"`
	SubscribedAt     time.Time  `json:"subscribed_at"`
	UnsubscribedAt   *time.Time `json:"unsubscribed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// TableName specifies the table name for Subscriber
func (Subscriber) TableName() string {
	return "subscribers"
}
