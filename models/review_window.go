package models

import "time"

// ReviewWindow represents review_windows records. Staff configure one row per
// (section, review type); the submission window runs from StartDate to
// EndDate, and averages become visible at ScoresReleaseAt.
type ReviewWindow struct {
	WindowID        int        `gorm:"column:window_id;primaryKey" json:"window_id"`
	SecCode         string     `gorm:"column:sec_code" json:"sec_code"`
	ReviewType      string     `gorm:"column:review_type" json:"review_type"`
	StartDate       time.Time  `gorm:"column:start_date" json:"start_date"`
	EndDate         time.Time  `gorm:"column:end_date" json:"end_date"`
	ScoresReleaseAt *time.Time `gorm:"column:scores_release_at" json:"scores_release_at,omitempty"`
	CreateAt        *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt        *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt        *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// TableName implements gorm's tablename interface.
func (ReviewWindow) TableName() string {
	return "review_windows"
}
