package models

import "testing"

func TestNewPagination(t *testing.T) {
	cases := []struct {
		name    string
		total   int64
		page    int
		perPage int
		pages   int
		hasPrev bool
		hasNext bool
	}{
		{"first of several", 25, 1, 10, 3, false, true},
		{"middle page", 25, 2, 10, 3, true, true},
		{"last page", 25, 3, 10, 3, true, false},
		{"past the last page", 2, 9, 10, 1, true, false},
		{"empty listing", 0, 1, 10, 0, false, false},
		{"exact fit", 20, 2, 10, 2, true, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPagination(tc.total, tc.page, tc.perPage)
			if p.Pages != tc.pages {
				t.Errorf("pages = %d, want %d", p.Pages, tc.pages)
			}
			if p.HasPrev != tc.hasPrev {
				t.Errorf("has_prev = %v, want %v", p.HasPrev, tc.hasPrev)
			}
			if p.HasNext != tc.hasNext {
				t.Errorf("has_next = %v, want %v", p.HasNext, tc.hasNext)
			}
			if p.Total != tc.total || p.Page != tc.page || p.PerPage != tc.perPage {
				t.Errorf("echoed fields wrong: %+v", p)
			}
		})
	}
}
