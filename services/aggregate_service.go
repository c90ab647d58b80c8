package services

import (
	"log"
	"strconv"

	"gorm.io/gorm"
)

// CriterionAverage is one row of the results view.
type CriterionAverage struct {
	CriteriaName string  `json:"criteria_name"`
	AvgScore     float64 `json:"avg_score"`
}

// AggregateService reads per-criterion averages for the results page. Pure
// read; ordering follows the criteria table's primary key so the results line
// up with the submission form.
type AggregateService struct {
	db *gorm.DB
}

func NewAggregateService(db *gorm.DB) *AggregateService {
	return &AggregateService{db: db}
}

type averageRow struct {
	CriteriaName string
	// Pointer: AVG is NULL for a criterion nobody has scored yet.
	AvgScore *string
}

// Averages returns the average score the student received per criterion.
// An aggregate value that does not parse is recorded as 0 rather than failing
// the whole page; the bad value is logged so data problems stay visible.
func (s *AggregateService) Averages(netID, secCode, reviewType string) ([]CriterionAverage, error) {
	var rows []averageRow
	if err := s.db.Raw(
		`SELECT c.criteria_name AS criteria_name, AVG(sc.score) AS avg_score
		 FROM criteria c
		 LEFT JOIN scores sc
		   ON sc.criteria_name = c.criteria_name
		  AND sc.review_type = c.review_type
		  AND sc.sec_code = c.sec_code
		  AND sc.reviewee_net_id = ?
		  AND sc.delete_at IS NULL
		 WHERE c.sec_code = ? AND c.review_type = ? AND c.delete_at IS NULL
		 GROUP BY c.criteria_id, c.criteria_name
		 ORDER BY c.criteria_id`,
		netID, secCode, reviewType).Scan(&rows).Error; err != nil {
		return nil, upstream(err)
	}

	averages := make([]CriterionAverage, 0, len(rows))
	for _, row := range rows {
		var avg float64
		if row.AvgScore != nil && *row.AvgScore != "" {
			parsed, err := strconv.ParseFloat(*row.AvgScore, 64)
			if err != nil {
				log.Printf("unparseable average %q for criterion %s, recording 0", *row.AvgScore, row.CriteriaName)
			} else {
				avg = parsed
			}
		}
		averages = append(averages, CriterionAverage{
			CriteriaName: row.CriteriaName,
			AvgScore:     avg,
		})
	}

	return averages, nil
}
