// Package domain contains the core business entities and value objects.
package domain

import "fmt"

// Performance categories for a single student.
const (
	CategoryHighPerformer = "High Performer"
	CategoryModerate      = "Moderate"
	CategoryNeedsSupport  = "Needs Support"
)

// Engagement health levels for the whole class.
const (
	EngagementGood   = "Good"
	EngagementNormal = "Normal"
	EngagementLow    = "Low"
)

// Analysis is the structured evaluation produced by the academic evaluator.
// It is the fixed JSON contract the LLM is asked to emit.
type Analysis struct {
	Students []StudentEvaluation `json:"students"`
	Summary  ClassSummary        `json:"summary"`
}

// StudentEvaluation is the per-student portion of an Analysis.
type StudentEvaluation struct {
	Name                string `json:"name"`
	Category            string `json:"category"`
	Engagement          int    `json:"engagement"`
	ProgressScore       int    `json:"progress_score"`
	StudyRecommendation string `json:"study_recommendation"`
}

// ClassSummary is the aggregate portion of an Analysis.
type ClassSummary struct {
	ClassAvgProgress      int      `json:"class_avg_progress"`
	ClassEngagementHealth string   `json:"class_engagement_health"`
	PriorityActions       []string `json:"priority_actions"`
}

// SchemaError reports the first field of an Analysis that violates the
// schema contract. Validation is strict: no partial coercion or repair.
type SchemaError struct {
	Field  string // JSON path of the offending field, e.g. "students[0].engagement"
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("analysis schema violation at %s: %s", e.Field, e.Reason)
}

// Validate checks the structural and range invariants of the analysis:
// scores within [0,100] and enum fields restricted to their literals.
// It returns a *SchemaError for the first violated field, or nil.
func (a *Analysis) Validate() error {
	for i, s := range a.Students {
		if s.Name == "" {
			return &SchemaError{
				Field:  fmt.Sprintf("students[%d].name", i),
				Reason: "must be non-empty",
			}
		}
		if !isValidCategory(s.Category) {
			return &SchemaError{
				Field:  fmt.Sprintf("students[%d].category", i),
				Reason: fmt.Sprintf("%q is not one of: High Performer, Moderate, Needs Support", s.Category),
			}
		}
		if s.Engagement < 0 || s.Engagement > 100 {
			return &SchemaError{
				Field:  fmt.Sprintf("students[%d].engagement", i),
				Reason: fmt.Sprintf("%d is outside [0,100]", s.Engagement),
			}
		}
		if s.ProgressScore < 0 || s.ProgressScore > 100 {
			return &SchemaError{
				Field:  fmt.Sprintf("students[%d].progress_score", i),
				Reason: fmt.Sprintf("%d is outside [0,100]", s.ProgressScore),
			}
		}
	}

	if a.Summary.ClassAvgProgress < 0 || a.Summary.ClassAvgProgress > 100 {
		return &SchemaError{
			Field:  "summary.class_avg_progress",
			Reason: fmt.Sprintf("%d is outside [0,100]", a.Summary.ClassAvgProgress),
		}
	}
	if !isValidEngagementHealth(a.Summary.ClassEngagementHealth) {
		return &SchemaError{
			Field:  "summary.class_engagement_health",
			Reason: fmt.Sprintf("%q is not one of: Good, Normal, Low", a.Summary.ClassEngagementHealth),
		}
	}

	return nil
}

func isValidCategory(c string) bool {
	switch c {
	case CategoryHighPerformer, CategoryModerate, CategoryNeedsSupport:
		return true
	default:
		return false
	}
}

func isValidEngagementHealth(h string) bool {
	switch h {
	case EngagementGood, EngagementNormal, EngagementLow:
		return true
	default:
		return false
	}
}
