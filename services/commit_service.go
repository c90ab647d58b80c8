package services

import (
	"fmt"
	"os"
	"strconv"

	"gorm.io/gorm"
)

// CommitService persists a validated score matrix. The whole batch runs inside
// one transaction: the first rejected write aborts, everything rolls back, and
// the failure reason is surfaced verbatim. A timeout mid-batch rolls back the
// same way; a partial matrix can never exist.
//
// The upsert keys on (section, reviewer, reviewee, criterion, review type), so
// re-running a committed batch updates rows instead of duplicating them.
type CommitService struct {
	db *gorm.DB
}

func NewCommitService(db *gorm.DB) *CommitService {
	return &CommitService{db: db}
}

const upsertScoreSQL = `INSERT INTO scores
 (sec_code, reviewer_net_id, reviewee_net_id, criteria_name, review_type, score, create_at, update_at)
 VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())
 ON DUPLICATE KEY UPDATE score = VALUES(score), update_at = NOW(), delete_at = NULL`

// Commit writes every tuple or none of them.
func (s *CommitService) Commit(secCode, reviewerNetID, reviewType string, tuples []ScoreTuple) error {
	minScore, maxScore, bounded := scoreBounds()

	return s.db.Transaction(func(tx *gorm.DB) error {
		roster, err := rosterSet(tx, reviewerNetID, secCode)
		if err != nil {
			return err
		}

		for _, tuple := range tuples {
			if !roster[tuple.RevieweeNetID] {
				return &CommitFailureError{
					Reason: fmt.Sprintf("%s is not a member of your team", tuple.RevieweeNetID),
				}
			}
			if bounded && (tuple.Score < minScore || tuple.Score > maxScore) {
				return &CommitFailureError{
					Reason: fmt.Sprintf("score for %s in %s must be between %d and %d",
						tuple.RevieweeNetID, tuple.CriteriaName, minScore, maxScore),
				}
			}

			if err := tx.Exec(upsertScoreSQL,
				secCode, reviewerNetID, tuple.RevieweeNetID,
				tuple.CriteriaName, reviewType, tuple.Score).Error; err != nil {
				return &CommitFailureError{Reason: err.Error()}
			}
		}

		return nil
	})
}

func rosterSet(tx *gorm.DB, reviewerNetID, secCode string) (map[string]bool, error) {
	var netIDs []string
	if err := tx.Raw(
		`SELECT m2.stu_net_id FROM member_of m1
		 INNER JOIN member_of m2
		   ON m2.team_num = m1.team_num AND m2.sec_code = m1.sec_code
		 WHERE m1.stu_net_id = ? AND m1.sec_code = ?
		   AND m1.delete_at IS NULL AND m2.delete_at IS NULL`,
		reviewerNetID, secCode).Scan(&netIDs).Error; err != nil {
		return nil, upstream(err)
	}

	roster := make(map[string]bool, len(netIDs))
	for _, id := range netIDs {
		roster[id] = true
	}
	return roster, nil
}

// scoreBounds reads the optional SCORE_MIN/SCORE_MAX business rule. The bound
// is enforced at commit time, not in the validator, so the validator keeps the
// plain any-integer contract.
func scoreBounds() (int, int, bool) {
	minScore, errMin := strconv.Atoi(os.Getenv("SCORE_MIN"))
	maxScore, errMax := strconv.Atoi(os.Getenv("SCORE_MAX"))
	if errMin != nil || errMax != nil || minScore > maxScore {
		return 0, 0, false
	}
	return minScore, maxScore, true
}
