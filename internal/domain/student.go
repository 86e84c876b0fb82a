// Package domain contains the core business entities and value objects.
package domain

// StudentRecord is a read-only entry in the static student directory.
// Records are seeded at startup and never mutated by the gateway.
type StudentRecord struct {
	ID           int            `json:"id"`
	Name         string         `json:"name"`
	Class        string         `json:"class"`
	Subjects     []string       `json:"subjects"`
	Attendance   Attendance     `json:"attendance"`
	Grades       map[string]int `json:"grades"`
	AIEvaluation string         `json:"ai_evaluation"`
}

// Attendance holds present/absent day counts for a student.
type Attendance struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
}
