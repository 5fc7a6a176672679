package model

import "time"

// ActivityType categorizes an activity log entry.
type ActivityType string

const (
	ActivityMeeting ActivityType = "meeting"
	ActivitySeminar ActivityType = "seminar"
	ActivityStudy   ActivityType = "study"
	ActivityProject ActivityType = "project"
)

// Activity records a team event: meetings, seminars, study sessions,
// project milestones.
type Activity struct {
	ID           uint         `json:"id" gorm:"primaryKey;autoIncrement"`
	Title        string       `json:"title" gorm:"type:varchar(200);not null;index"`
	Description  string       `json:"description" gorm:"type:text;not null"`
	ActivityDate time.Time    `json:"activity_date" gorm:"not null;index:idx_activity_type_date"`
	Type         ActivityType `json:"type" gorm:"type:varchar(20);not null;index:idx_activity_type_date"`
	Participants *int         `json:"participants,omitempty"`
	Location     string       `json:"location,omitempty" gorm:"type:varchar(200)"`
	Images       StringList   `json:"images,omitempty" gorm:"type:text"`
	CreatedBy    uint         `json:"created_by" gorm:"not null;index"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// TableName specifies the table name for Activity
func (Activity) TableName() string {
	return "activities"
}
