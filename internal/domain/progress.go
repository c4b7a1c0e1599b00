package domain

import "time"

// Milestone Model: a goal a center reports progress against
type Milestone struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CenterName  string     `gorm:"size:255;not null;index" json:"centerName"`
	Title       string     `gorm:"size:512;not null" json:"milestone"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// StatusUpdate Model: a free-text progress note posted by a center
type StatusUpdate struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CenterName string    `gorm:"size:255;not null;index" json:"centerName"`
	Update     string    `gorm:"size:2048;not null" json:"update"`
	Date       string    `gorm:"size:32;not null" json:"date"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
}
