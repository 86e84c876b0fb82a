// Package directory serves the static in-memory student records consumed by
// the evaluation endpoints. The data is a fixed demo dataset; the gateway
// never mutates it.
package directory

import (
	"sort"

	"github.com/edulab/agent-gateway/internal/domain"
)

// Directory is a read-only lookup table of student records.
type Directory struct {
	byID map[int]domain.StudentRecord
}

// New returns a Directory seeded with the demo student records.
func New() *Directory {
	d := &Directory{byID: make(map[int]domain.StudentRecord)}
	for _, s := range seedStudents {
		d.byID[s.ID] = s
	}
	return d
}

// List returns all student records ordered by id.
func (d *Directory) List() []domain.StudentRecord {
	records := make([]domain.StudentRecord, 0, len(d.byID))
	for _, s := range d.byID {
		records = append(records, s)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].ID < records[j].ID
	})
	return records
}

// Get returns the record with the given id, if present.
func (d *Directory) Get(id int) (domain.StudentRecord, bool) {
	s, ok := d.byID[id]
	return s, ok
}

// seedStudents is the static demo dataset.
var seedStudents = []domain.StudentRecord{
	{
		ID:       1,
		Name:     "Budi Santoso",
		Class:    "XI IPA 1",
		Subjects: []string{"Matematika", "Fisika", "Kimia"},
		Attendance: domain.Attendance{
			Present: 52,
			Absent:  2,
		},
		Grades: map[string]int{
			"Matematika": 88,
			"Fisika":     82,
			"Kimia":      90,
		},
		AIEvaluation: "Konsisten dan aktif di kelas. Disarankan mengikuti olimpiade sains.",
	},
	{
		ID:       2,
		Name:     "Siti Rahayu",
		Class:    "XI IPA 1",
		Subjects: []string{"Matematika", "Biologi", "Kimia"},
		Attendance: domain.Attendance{
			Present: 50,
			Absent:  4,
		},
		Grades: map[string]int{
			"Matematika": 75,
			"Biologi":    91,
			"Kimia":      78,
		},
		AIEvaluation: "Sangat kuat di Biologi. Perlu latihan tambahan untuk Matematika.",
	},
	{
		ID:       3,
		Name:     "Andi Wijaya",
		Class:    "XI IPS 2",
		Subjects: []string{"Ekonomi", "Sosiologi", "Geografi"},
		Attendance: domain.Attendance{
			Present: 45,
			Absent:  9,
		},
		Grades: map[string]int{
			"Ekonomi":   68,
			"Sosiologi": 72,
			"Geografi":  65,
		},
		AIEvaluation: "Kehadiran menurun bulan ini. Disarankan sesi pendampingan belajar.",
	},
	{
		ID:       4,
		Name:     "Dewi Lestari",
		Class:    "XI IPS 2",
		Subjects: []string{"Ekonomi", "Sejarah", "Sosiologi"},
		Attendance: domain.Attendance{
			Present: 54,
			Absent:  0,
		},
		Grades: map[string]int{
			"Ekonomi":   94,
			"Sejarah":   89,
			"Sosiologi": 92,
		},
		AIEvaluation: "Performa sangat baik di semua mata pelajaran. Kandidat ketua kelompok belajar.",
	},
}
