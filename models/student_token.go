package models

import "time"

// StudentToken stores hashed one-time tokens (currently only password resets).
type StudentToken struct {
	TokenID   int       `gorm:"primaryKey;column:token_id" json:"token_id"`
	StuNetID  string    `gorm:"column:stu_net_id" json:"stu_net_id"`
	TokenType string    `gorm:"column:token_type" json:"token_type"`
	Token     string    `gorm:"column:token" json:"-"`
	ExpiresAt time.Time `gorm:"column:expires_at" json:"expires_at"`
	IsRevoked bool      `gorm:"column:is_revoked" json:"is_revoked"`
	IPAddress string    `gorm:"column:ip_address" json:"ip_address"`
	UserAgent string    `gorm:"column:user_agent" json:"user_agent"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (StudentToken) TableName() string {
	return "student_tokens"
}
