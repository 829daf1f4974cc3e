package model

import "time"

// Actions recorded automatically for identity events.
const (
	ActionUserCreated = "user created"
	ActionUserUpdated = "user updated"
	ActionUserDeleted = "user deleted"
	ActionTokenIssued = "token issued"
)

// AuditLog is an append-only entry. The actor reference is nulled when the user is deleted.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey;column:log_id" json:"log_id"`
	Timestamp time.Time `gorm:"autoCreateTime" json:"timestamp"`
	UserID    *uint     `gorm:"index" json:"-"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user"`
	Action    string    `gorm:"type:varchar(255);not null" json:"action"`
	Details   string    `gorm:"type:text" json:"details"`
}

type AuditLogInput struct {
	User    *uint  `json:"user"`
	Action  string `json:"action" validate:"required,max=255"`
	Details string `json:"details"`
}
