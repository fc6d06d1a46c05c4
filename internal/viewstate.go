package internal

// DefaultPageSize is the number of records shown per page in card and table
// views.
const DefaultPageSize = 6

// DatasetRef addresses per-dataset view state: one dataset of one message.
// A structured key rather than string concatenation, so dataset keys may
// contain any character without colliding.
type DatasetRef struct {
	MessageID int
	Dataset   string
}

// PageStore tracks the current page per dataset. Entries are created lazily
// and live for the session; Reset clears them when the conversation log is
// cleared. Page is re-clamped on every read because the same ref can be
// reused across payload refreshes with a different record count.
type PageStore struct {
	pages    map[DatasetRef]int
	pageSize int
}

// NewPageStore creates a page store. pageSize values < 1 fall back to
// DefaultPageSize.
func NewPageStore(pageSize int) *PageStore {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &PageStore{
		pages:    make(map[DatasetRef]int),
		pageSize: pageSize,
	}
}

// PageSize returns the configured records-per-page.
func (s *PageStore) PageSize() int {
	return s.pageSize
}

// PageCount derives the number of pages for a record count. Always ≥ 1, so an
// empty dataset still has one (empty) page.
func (s *PageStore) PageCount(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + s.pageSize - 1) / s.pageSize
}

// Page returns the current page for a ref, clamped into
// [1, PageCount(total)]. Unset refs default to page 1.
func (s *PageStore) Page(ref DatasetRef, total int) int {
	return clampPage(s.pages[ref], s.PageCount(total))
}

// SetPage stores a page for a ref, clamped into range. Out-of-range requests
// are clamped, never errors.
func (s *PageStore) SetPage(ref DatasetRef, page, total int) {
	s.pages[ref] = clampPage(page, s.PageCount(total))
}

// Next advances one page, staying at the last page (no wraparound).
func (s *PageStore) Next(ref DatasetRef, total int) {
	s.SetPage(ref, s.Page(ref, total)+1, total)
}

// Prev moves back one page, staying at page 1 (no wraparound).
func (s *PageStore) Prev(ref DatasetRef, total int) {
	s.SetPage(ref, s.Page(ref, total)-1, total)
}

// Jump navigates directly to a page, clamped into range.
func (s *PageStore) Jump(ref DatasetRef, page, total int) {
	s.SetPage(ref, page, total)
}

// Reset drops all stored pages.
func (s *PageStore) Reset() {
	s.pages = make(map[DatasetRef]int)
}

func clampPage(page, pageCount int) int {
	if page < 1 {
		return 1
	}
	if page > pageCount {
		return pageCount
	}
	return page
}

// ExpandStore tracks whether each dataset panel is expanded. Independent of
// pagination: collapsing a dataset does not reset its page.
type ExpandStore struct {
	expanded map[DatasetRef]bool
}

// NewExpandStore creates an expansion store.
func NewExpandStore() *ExpandStore {
	return &ExpandStore{expanded: make(map[DatasetRef]bool)}
}

// IsExpanded reports the expansion state for a ref, defaulting to false.
func (s *ExpandStore) IsExpanded(ref DatasetRef) bool {
	return s.expanded[ref]
}

// Toggle flips the expansion state for a ref.
func (s *ExpandStore) Toggle(ref DatasetRef) {
	s.expanded[ref] = !s.expanded[ref]
}

// Reset drops all stored expansion state.
func (s *ExpandStore) Reset() {
	s.expanded = make(map[DatasetRef]bool)
}
