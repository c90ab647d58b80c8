package services

import (
	"fmt"
	"strconv"
	"strings"
)

// ScoreTuple is one validated (reviewee, criterion, score) cell of the matrix.
type ScoreTuple struct {
	RevieweeNetID string
	CriteriaName  string
	Score         int
}

// FieldKey builds the form field name for a (criterion, member) pair. The UI
// layer must produce exactly one input per pair under this key.
func FieldKey(criteriaName, memberNetID string) string {
	return fmt.Sprintf("%s-%s", criteriaName, memberNetID)
}

// ValidateScoreMatrix checks that the submitted fields cover every
// (teammate, criterion) pair and that every value parses as an integer.
// Validation is fail-fast: the first missing, empty, or malformed field aborts
// with a precise error and nothing is returned.
//
// Whether a student scores themselves is decided entirely by whether they
// appear in their own roster; no exclusion happens here. The returned tuples
// are the unit the committer writes as one atomic batch.
func ValidateScoreMatrix(members []TeamMember, criteria []CriterionInfo, form map[string]string) ([]ScoreTuple, error) {
	tuples := make([]ScoreTuple, 0, len(members)*len(criteria))

	for _, member := range members {
		for _, criterion := range criteria {
			key := FieldKey(criterion.Name, member.NetID)

			value, ok := form[key]
			if !ok || strings.TrimSpace(value) == "" {
				return nil, &IncompleteSubmissionError{FieldKey: key}
			}

			score, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return nil, &InvalidScoreFormatError{
					MemberName:   member.Name,
					CriteriaName: criterion.Name,
				}
			}

			tuples = append(tuples, ScoreTuple{
				RevieweeNetID: member.NetID,
				CriteriaName:  criterion.Name,
				Score:         score,
			})
		}
	}

	return tuples, nil
}
