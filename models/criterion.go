package models

import (
	"time"
)

// Criterion is one scoring dimension of a peer review. The active set is
// scoped by section and review type, not global.
type Criterion struct {
	CriteriaID  int        `gorm:"primaryKey;column:criteria_id" json:"criteria_id"`
	Name        string     `gorm:"column:criteria_name" json:"name"`
	Description string     `gorm:"column:criteria_description" json:"description"`
	ReviewType  string     `gorm:"column:review_type" json:"review_type"`
	SecCode     string     `gorm:"column:sec_code" json:"sec_code"`
	CreateAt    *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt    *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (Criterion) TableName() string {
	return "criteria"
}
