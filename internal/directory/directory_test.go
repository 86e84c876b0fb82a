package directory

import "testing"

func TestList_OrderedByID(t *testing.T) {
	d := New()

	records := d.List()
	if len(records) == 0 {
		t.Fatal("List() returned no records")
	}

	for i := 1; i < len(records); i++ {
		if records[i-1].ID >= records[i].ID {
			t.Errorf("List() out of order at index %d: %d >= %d", i, records[i-1].ID, records[i].ID)
		}
	}
}

func TestGet(t *testing.T) {
	d := New()

	s, ok := d.Get(1)
	if !ok {
		t.Fatal("Get(1) = not found, want a record")
	}
	if s.Name == "" || s.Class == "" {
		t.Errorf("Get(1) returned incomplete record: %+v", s)
	}
	if s.Attendance.Present <= 0 {
		t.Errorf("Get(1) attendance present = %d, want > 0", s.Attendance.Present)
	}

	if _, ok := d.Get(9999); ok {
		t.Error("Get(9999) found a record, want miss")
	}
}
