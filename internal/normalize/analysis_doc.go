// Package normalize extracts canonical replies from raw provider responses.
package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/edulab/agent-gateway/internal/domain"
)

// analysisDoc mirrors domain.Analysis with lenient integer fields, so that
// an LLM emitting "engagement": "85" still decodes. Range and enum
// enforcement stays in domain.Analysis.Validate.
type analysisDoc struct {
	Students []studentDoc `json:"students"`
	Summary  summaryDoc   `json:"summary"`
}

type studentDoc struct {
	Name                string  `json:"name"`
	Category            string  `json:"category"`
	Engagement          flexInt `json:"engagement"`
	ProgressScore       flexInt `json:"progress_score"`
	StudyRecommendation string  `json:"study_recommendation"`
}

type summaryDoc struct {
	ClassAvgProgress      flexInt  `json:"class_avg_progress"`
	ClassEngagementHealth string   `json:"class_engagement_health"`
	PriorityActions       []string `json:"priority_actions"`
}

func (d *analysisDoc) toDomain() domain.Analysis {
	students := make([]domain.StudentEvaluation, len(d.Students))
	for i, s := range d.Students {
		students[i] = domain.StudentEvaluation{
			Name:                s.Name,
			Category:            s.Category,
			Engagement:          int(s.Engagement),
			ProgressScore:       int(s.ProgressScore),
			StudyRecommendation: s.StudyRecommendation,
		}
	}

	actions := d.Summary.PriorityActions
	if actions == nil {
		actions = []string{}
	}
	if students == nil {
		students = []domain.StudentEvaluation{}
	}

	return domain.Analysis{
		Students: students,
		Summary: domain.ClassSummary{
			ClassAvgProgress:      int(d.Summary.ClassAvgProgress),
			ClassEngagementHealth: d.Summary.ClassEngagementHealth,
			PriorityActions:       actions,
		},
	}
}

// flexInt decodes from a JSON number or a numeric string.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = 0
		return nil
	}

	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		n, err := strconv.Atoi(strings.TrimSpace(str))
		if err != nil {
			return fmt.Errorf("cannot coerce %q to integer", str)
		}
		*f = flexInt(n)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	n, err := num.Int64()
	if err != nil {
		// Accept whole-valued floats like 70.0, reject true fractions.
		fl, ferr := num.Float64()
		if ferr != nil || fl != float64(int64(fl)) {
			return fmt.Errorf("cannot coerce %s to integer", num)
		}
		n = int64(fl)
	}
	*f = flexInt(n)
	return nil
}
