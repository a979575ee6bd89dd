package dashboard

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"frontend-gin/internal/models"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ListQuery is the page and sort order requested for a checklist list.
type ListQuery struct {
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// allowedSortFields maps the accepted sort_by values to a comparable column.
var allowedSortFields = map[string]string{
	"id":                       "id",
	"patient_id":               "patient_id",
	"patient_name":             "patient_name",
	"name":                     "patient_name",
	"submission_date":          "submission_date",
	"submissiondate":           "submission_date",
	"most_recent_seizure_date": "most_recent_seizure_date",
	"seizure_frequency":        "seizure_frequency",
	"condition_trend":          "condition_trend",
}

// ParseListQuery reads page, page_size, sort_by and sort_order, falling back
// to defaults for missing or invalid values.
func ParseListQuery(q url.Values) ListQuery {
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(q.Get("page_size"))
	if err != nil || pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	sortBy, ok := allowedSortFields[strings.ToLower(q.Get("sort_by"))]
	if !ok {
		sortBy = "id"
	}
	sortOrder := strings.ToLower(q.Get("sort_order"))
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "asc"
	}

	return ListQuery{Page: page, PageSize: pageSize, SortBy: sortBy, SortOrder: sortOrder}
}

// ListPage is one page of a sorted checklist list.
type ListPage struct {
	ListQuery
	Total   int
	Pages   int
	Records []models.ChecklistRecord
}

func (p ListPage) HasPrev() bool { return p.Page > 1 }
func (p ListPage) HasNext() bool { return p.Page < p.Pages }

// Link returns the query string for page n keeping the current sort.
func (p ListPage) Link(n int) string {
	return p.query(n, p.SortBy, p.SortOrder)
}

// SortLink returns the query string sorting by field, flipping the order when
// field is already the sort column.
func (p ListPage) SortLink(field string) string {
	order := "asc"
	if field == p.SortBy && p.SortOrder == "asc" {
		order = "desc"
	}
	return p.query(1, field, order)
}

func (p ListPage) query(page int, sortBy, sortOrder string) string {
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	v.Set("page_size", strconv.Itoa(p.PageSize))
	v.Set("sort_by", sortBy)
	v.Set("sort_order", sortOrder)
	return v.Encode()
}

// Paginate sorts records and cuts out the requested page. A page past the end
// is empty.
func Paginate(records []models.ChecklistRecord, q ListQuery) ListPage {
	sorted := make([]models.ChecklistRecord, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sortValue(sorted[i], q.SortBy), sortValue(sorted[j], q.SortBy)
		if q.SortOrder == "desc" {
			return compareValues(b, a) < 0
		}
		return compareValues(a, b) < 0
	})

	if q.PageSize < 1 {
		q.PageSize = defaultPageSize
	}
	if q.Page < 1 {
		q.Page = 1
	}

	total := len(sorted)
	pages := total / q.PageSize
	if total%q.PageSize != 0 {
		pages++
	}

	// Compare page numbers before multiplying so a huge page cannot overflow.
	offset, end := total, total
	if q.Page-1 < pages {
		offset = (q.Page - 1) * q.PageSize
		end = min(offset+q.PageSize, total)
	}

	return ListPage{
		ListQuery: q,
		Total:     total,
		Pages:     pages,
		Records:   sorted[offset:end],
	}
}

func sortValue(r models.ChecklistRecord, field string) string {
	switch field {
	case "patient_id":
		return r.PatientID.String()
	case "patient_name":
		return r.PatientName
	case "submission_date":
		return r.SubmissionDate
	case "most_recent_seizure_date":
		return r.MostRecentSeizureDate
	case "seizure_frequency":
		return r.SeizureFrequency
	case "condition_trend":
		return r.ConditionTrend
	}
	return r.ID.String()
}

// compareValues orders numeric ids numerically and everything else as
// case-insensitive text.
func compareValues(a, b string) int {
	na, errA := strconv.ParseFloat(a, 64)
	nb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return 0
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
