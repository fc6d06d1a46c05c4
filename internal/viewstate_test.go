package internal

import (
	"math"
	"testing"
)

func TestPageStore_PageCount(t *testing.T) {
	tests := []struct {
		name     string
		pageSize int
		total    int
		want     int
	}{
		{"empty dataset still has one page", 6, 0, 1},
		{"exact single page", 6, 6, 1},
		{"one over the boundary", 6, 7, 2},
		{"thirteen records at six per page", 6, 13, 3},
		{"page size one", 1, 5, 5},
		{"negative total treated as empty", 6, -3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewPageStore(tt.pageSize)
			if got := s.PageCount(tt.total); got != tt.want {
				t.Errorf("PageCount(%d) = %d, want %d", tt.total, got, tt.want)
			}
		})
	}
}

func TestPageStore_PageCountFormula(t *testing.T) {
	// pageCount = max(1, ceil(n/pageSize)) for all n ≥ 0, pageSize ≥ 1
	for pageSize := 1; pageSize <= 8; pageSize++ {
		s := NewPageStore(pageSize)
		for n := 0; n <= 50; n++ {
			want := int(math.Ceil(float64(n) / float64(pageSize)))
			if want < 1 {
				want = 1
			}
			if got := s.PageCount(n); got != want {
				t.Fatalf("PageCount(%d) with pageSize %d = %d, want %d", n, pageSize, got, want)
			}
		}
	}
}

func TestPageStore_Clamping(t *testing.T) {
	ref := DatasetRef{MessageID: 1, Dataset: "work_orders"}
	tests := []struct {
		name    string
		request int
		total   int
		want    int
	}{
		{"page five of three clamps to three", 5, 13, 3},
		{"page zero clamps to one", 0, 13, 1},
		{"negative page clamps to one", -2, 13, 1},
		{"in-range page kept", 2, 13, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewPageStore(6)
			s.SetPage(ref, tt.request, tt.total)
			if got := s.Page(ref, tt.total); got != tt.want {
				t.Errorf("Page after SetPage(%d) = %d, want %d", tt.request, got, tt.want)
			}
		})
	}
}

func TestPageStore_ReclampOnRead(t *testing.T) {
	// The same ref can be reused across payload refreshes with a smaller
	// record count: page must re-clamp on every read, not only on write.
	s := NewPageStore(6)
	ref := DatasetRef{MessageID: 3, Dataset: "inventory"}

	s.SetPage(ref, 3, 13)
	if got := s.Page(ref, 13); got != 3 {
		t.Fatalf("Page = %d, want 3", got)
	}

	// dataset shrank to 4 records → one page
	if got := s.Page(ref, 4); got != 1 {
		t.Errorf("Page after shrink = %d, want 1", got)
	}
}

func TestPageStore_NextPrevBoundaries(t *testing.T) {
	s := NewPageStore(6)
	ref := DatasetRef{MessageID: 1, Dataset: "d"}
	total := 13 // three pages

	// prev at page one is a no-op, no wraparound
	s.Prev(ref, total)
	if got := s.Page(ref, total); got != 1 {
		t.Errorf("Prev at first page = %d, want 1", got)
	}

	s.Next(ref, total)
	s.Next(ref, total)
	if got := s.Page(ref, total); got != 3 {
		t.Errorf("Page after two Next = %d, want 3", got)
	}

	// next at the last page is a no-op, no wraparound
	s.Next(ref, total)
	if got := s.Page(ref, total); got != 3 {
		t.Errorf("Next at last page = %d, want 3", got)
	}

	s.Jump(ref, 2, total)
	if got := s.Page(ref, total); got != 2 {
		t.Errorf("Page after Jump(2) = %d, want 2", got)
	}
}

func TestPageStore_KeyIsolation(t *testing.T) {
	s := NewPageStore(6)
	a := DatasetRef{MessageID: 1, Dataset: "inventory"}
	b := DatasetRef{MessageID: 1, Dataset: "work_orders"}
	c := DatasetRef{MessageID: 2, Dataset: "inventory"}

	s.SetPage(a, 2, 13)
	if got := s.Page(b, 13); got != 1 {
		t.Errorf("Page(b) = %d, want untouched default 1", got)
	}
	if got := s.Page(c, 13); got != 1 {
		t.Errorf("Page(c) = %d, want untouched default 1", got)
	}
	if got := s.Page(a, 13); got != 2 {
		t.Errorf("Page(a) = %d, want 2", got)
	}
}

func TestExpandStore(t *testing.T) {
	s := NewExpandStore()
	a := DatasetRef{MessageID: 1, Dataset: "inventory"}
	b := DatasetRef{MessageID: 1, Dataset: "work_orders"}

	if s.IsExpanded(a) {
		t.Error("IsExpanded should default to false")
	}

	s.Toggle(a)
	if !s.IsExpanded(a) {
		t.Error("Toggle should expand a")
	}
	if s.IsExpanded(b) {
		t.Error("Toggling a must not alter b")
	}

	s.Toggle(a)
	if s.IsExpanded(a) {
		t.Error("Second toggle should collapse a")
	}
}

func TestExpandCollapseKeepsPage(t *testing.T) {
	pages := NewPageStore(6)
	expanded := NewExpandStore()
	ref := DatasetRef{MessageID: 1, Dataset: "d"}

	pages.SetPage(ref, 2, 13)
	expanded.Toggle(ref)
	expanded.Toggle(ref) // collapse again

	if got := pages.Page(ref, 13); got != 2 {
		t.Errorf("Page after collapse = %d, want 2 (collapsing must not reset paging)", got)
	}
}

func TestStoreReset(t *testing.T) {
	pages := NewPageStore(6)
	expanded := NewExpandStore()
	ref := DatasetRef{MessageID: 1, Dataset: "d"}

	pages.SetPage(ref, 2, 13)
	expanded.Toggle(ref)
	pages.Reset()
	expanded.Reset()

	if got := pages.Page(ref, 13); got != 1 {
		t.Errorf("Page after Reset = %d, want 1", got)
	}
	if expanded.IsExpanded(ref) {
		t.Error("IsExpanded after Reset should be false")
	}
}
