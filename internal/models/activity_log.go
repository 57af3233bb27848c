package models

import "time"

// ActivityLog is an append-only audit trail of post mutations.
type ActivityLog struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Action   string    `gorm:"type:varchar(50);not null" json:"action"`
	PostID   uint      `gorm:"index;not null" json:"post_id"`
	ActorID  uint      `gorm:"index;not null" json:"actor_id"`
	LoggedAt time.Time `gorm:"autoCreateTime" json:"logged_at"`
}
