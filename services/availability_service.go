package services

import (
	"gorm.io/gorm"

	"peer-review-api/models"
)

// AvailabilityService resolves the tri-state gate controlling submission and
// results access. The database owns the staff-configured windows; this service
// maps query results onto the Unavailable / <review type> / Completed lattice
// and mirrors the outcome into the session snapshot.
//
// Callers on state-changing paths must re-resolve rather than trust a cached
// "available": availability can close between page load and submit.
type AvailabilityService struct {
	db       *gorm.DB
	sessions *SessionStore
}

func NewAvailabilityService(db *gorm.DB, sessions *SessionStore) *AvailabilityService {
	return &AvailabilityService{db: db, sessions: sessions}
}

// ResolveSubmission returns "Unavailable", "Completed", or the open window's
// review type for the student's section.
func (s *AvailabilityService) ResolveSubmission(netID, secCode string) (string, error) {
	reviewType, err := s.openSubmissionWindow(secCode)
	if err != nil {
		return "", err
	}

	status := AvailabilityUnavailable
	if reviewType != "" {
		status = reviewType

		done, err := s.hasCompleteScoreSet(netID, secCode, reviewType)
		if err != nil {
			return "", err
		}
		if done {
			status = AvailabilityCompleted
		}
	}

	s.sessions.Update(netID, func(session *ReviewSession) {
		session.PRAvailability = status
	})
	return status, nil
}

// ResolveScores returns "Unavailable" or the review type whose averages have
// been released for the section. "Completed" is not meaningful on the read
// side.
func (s *AvailabilityService) ResolveScores(netID, secCode string) (string, error) {
	var reviewType string
	result := s.db.Raw(
		`SELECT review_type FROM review_windows
		 WHERE sec_code = ? AND delete_at IS NULL
		   AND scores_release_at IS NOT NULL AND scores_release_at <= NOW()
		 ORDER BY scores_release_at DESC LIMIT 1`, secCode).Scan(&reviewType)
	if result.Error != nil {
		return "", upstream(result.Error)
	}

	status := AvailabilityUnavailable
	if result.RowsAffected > 0 && reviewType != "" {
		status = reviewType
	}

	s.sessions.Update(netID, func(session *ReviewSession) {
		session.ScoresAvailability = status
	})
	return status, nil
}

// EnsureKind verifies that a review type is actually configured for the
// section at all; an unknown kind is a configuration problem, not a closed
// window.
func (s *AvailabilityService) EnsureKind(secCode, reviewType string) error {
	var count int64
	if err := s.db.Model(&models.ReviewWindow{}).
		Where("sec_code = ? AND review_type = ? AND delete_at IS NULL", secCode, reviewType).
		Count(&count).Error; err != nil {
		return upstream(err)
	}
	if count == 0 {
		return ErrInvalidConfiguration
	}
	return nil
}

func (s *AvailabilityService) openSubmissionWindow(secCode string) (string, error) {
	var reviewType string
	result := s.db.Raw(
		`SELECT review_type FROM review_windows
		 WHERE sec_code = ? AND delete_at IS NULL
		   AND start_date <= NOW() AND end_date >= NOW()
		 ORDER BY start_date LIMIT 1`, secCode).Scan(&reviewType)
	if result.Error != nil {
		return "", upstream(result.Error)
	}
	if result.RowsAffected == 0 {
		return "", nil
	}
	return reviewType, nil
}

// hasCompleteScoreSet reports whether the student already submitted the full
// matrix for the review type: one score per (teammate, criterion) pair.
func (s *AvailabilityService) hasCompleteScoreSet(netID, secCode, reviewType string) (bool, error) {
	var criteriaCount int64
	if err := s.db.Model(&models.Criterion{}).
		Where("sec_code = ? AND review_type = ? AND delete_at IS NULL", secCode, reviewType).
		Count(&criteriaCount).Error; err != nil {
		return false, upstream(err)
	}

	var teamSize int64
	if err := s.db.Raw(
		`SELECT COUNT(*) FROM member_of
		 WHERE sec_code = ? AND delete_at IS NULL
		   AND team_num = (SELECT team_num FROM member_of
		                   WHERE stu_net_id = ? AND sec_code = ? AND delete_at IS NULL)`,
		secCode, netID, secCode).Scan(&teamSize).Error; err != nil {
		return false, upstream(err)
	}

	if criteriaCount == 0 || teamSize == 0 {
		return false, nil
	}

	var submitted int64
	if err := s.db.Model(&models.ScoreEntry{}).
		Where("sec_code = ? AND reviewer_net_id = ? AND review_type = ? AND delete_at IS NULL", secCode, netID, reviewType).
		Count(&submitted).Error; err != nil {
		return false, upstream(err)
	}

	return submitted >= criteriaCount*teamSize, nil
}
