package models

import (
	"time"
)

type Student struct {
	NetID              string     `gorm:"primaryKey;column:stu_net_id" json:"net_id"`
	UtdID              string     `gorm:"column:stu_utd_id;unique" json:"utd_id"`
	Name               string     `gorm:"column:stu_name" json:"name"`
	Password           string     `gorm:"column:password" json:"-"`
	MustChangePassword bool       `gorm:"column:must_change_password" json:"must_change_password"`
	Email              *string    `gorm:"column:email" json:"email,omitempty"`
	CreateAt           *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt           *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt           *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Membership TeamMembership `gorm:"foreignKey:StuNetID;references:NetID" json:"membership,omitempty"`
}

// TeamMembership maps a student into a team within a course section.
// Many students per team, one team per student per section.
type TeamMembership struct {
	MemberID int        `gorm:"primaryKey;column:member_id" json:"member_id"`
	StuNetID string     `gorm:"column:stu_net_id" json:"stu_net_id"`
	SecCode  string     `gorm:"column:sec_code" json:"sec_code"`
	TeamNum  int        `gorm:"column:team_num" json:"team_num"`
	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// TableName overrides
func (Student) TableName() string {
	return "students"
}

func (TeamMembership) TableName() string {
	return "member_of"
}
