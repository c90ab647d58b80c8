package services

import (
	"strconv"

	"gorm.io/gorm"
)

// RosterService loads the reviewer's team roster and the active criteria set
// for the current review window, caching both in the session snapshot so the
// validate/submit round trip does not hit the database twice.
//
// Ordering matters: form field identity is built by pairing criteria and
// members positionally, so callers must render in exactly the order returned
// here (primary key order from the store).
type RosterService struct {
	db       *gorm.DB
	sessions *SessionStore
}

func NewRosterService(db *gorm.DB, sessions *SessionStore) *RosterService {
	return &RosterService{db: db, sessions: sessions}
}

// LoadTeamMembers fetches the roster for a team. The team number arrives as a
// session string and must parse to a positive integer before any query is
// issued.
func (s *RosterService) LoadTeamMembers(netID, teamNum, secCode string) ([]TeamMember, error) {
	team, err := strconv.Atoi(teamNum)
	if err != nil || team <= 0 {
		return nil, ErrInvalidTeamNumber
	}

	var members []TeamMember
	if err := s.db.Raw(
		`SELECT s.stu_net_id AS net_id, s.stu_name AS name
		 FROM member_of m
		 INNER JOIN students s ON s.stu_net_id = m.stu_net_id
		 WHERE m.team_num = ? AND m.sec_code = ? AND m.delete_at IS NULL
		 ORDER BY m.member_id`, team, secCode).Scan(&members).Error; err != nil {
		return nil, upstream(err)
	}

	s.sessions.Update(netID, func(session *ReviewSession) {
		session.TeamMembers = members
	})
	return members, nil
}

// LoadCriteria fetches the active criteria for the review type in primary key
// order.
func (s *RosterService) LoadCriteria(netID, reviewType, secCode string) ([]CriterionInfo, error) {
	var criteria []CriterionInfo
	if err := s.db.Raw(
		`SELECT criteria_name AS name, criteria_description AS description
		 FROM criteria
		 WHERE sec_code = ? AND review_type = ? AND delete_at IS NULL
		 ORDER BY criteria_id`, secCode, reviewType).Scan(&criteria).Error; err != nil {
		return nil, upstream(err)
	}

	s.sessions.Update(netID, func(session *ReviewSession) {
		session.ReviewType = reviewType
		session.Criteria = criteria
	})
	return criteria, nil
}
