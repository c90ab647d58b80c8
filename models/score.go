package models

import "time"

// ScoreEntry is one submitted score. The five-column unique key makes
// resubmission an upsert rather than a duplicate row; a full score matrix is
// only ever written as one transactional batch.
type ScoreEntry struct {
	ScoreID       int        `gorm:"primaryKey;column:score_id" json:"score_id"`
	SecCode       string     `gorm:"column:sec_code;uniqueIndex:uq_score_key" json:"sec_code"`
	ReviewerNetID string     `gorm:"column:reviewer_net_id;uniqueIndex:uq_score_key" json:"reviewer_net_id"`
	RevieweeNetID string     `gorm:"column:reviewee_net_id;uniqueIndex:uq_score_key" json:"reviewee_net_id"`
	CriteriaName  string     `gorm:"column:criteria_name;uniqueIndex:uq_score_key" json:"criteria_name"`
	ReviewType    string     `gorm:"column:review_type;uniqueIndex:uq_score_key" json:"review_type"`
	Score         int        `gorm:"column:score" json:"score"`
	CreateAt      time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt      time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt      *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (ScoreEntry) TableName() string {
	return "scores"
}
