package dashboard

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"frontend-gin/internal/models"

	"github.com/gorilla/schema"
)

var formDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

type patientList struct {
	api API
}

func (s *patientList) Template() string { return "section_patient_list" }

func (s *patientList) Load(ctx context.Context, req Request) (any, error) {
	records, err := s.api.PatientChecklists(ctx, req.Session.Token, req.Session.UserID)
	if err != nil {
		return nil, failed(err, "Failed to load patients. Please try again.")
	}
	return Paginate(records, ParseListQuery(req.Query)), nil
}

// ReportView lists submitted checklists; Selected is the one opened for review.
type ReportView struct {
	Records  []models.ChecklistRecord
	Selected *models.ChecklistRecord
}

type patientReport struct {
	api API
}

func (s *patientReport) Template() string { return "section_patient_report" }

func (s *patientReport) Load(ctx context.Context, req Request) (any, error) {
	records, err := s.api.PatientChecklists(ctx, req.Session.Token, req.Session.UserID)
	if err != nil {
		return nil, failed(err, "Failed to load patients. Please try again.")
	}

	view := ReportView{Records: records}
	if id := req.Query.Get("report"); id != "" {
		for i := range records {
			if records[i].ID.String() == id {
				view.Selected = &records[i]
				break
			}
		}
	}
	return view, nil
}

// Act saves the doctor's comments and reviewed sections for one checklist.
func (s *patientReport) Act(ctx context.Context, req Request, form url.Values) (Outcome, error) {
	var report models.DoctorReport
	if err := formDecoder.Decode(&report, form); err != nil {
		return Outcome{}, &SectionError{Message: "Failed to save report. Please try again.", Err: fmt.Errorf("decode report: %w", err)}
	}

	back := url.Values{}
	back.Set("report", report.PatientID)

	if report.PatientID == "" {
		return Outcome{}, &SectionError{Message: "Select a report before saving."}
	}
	if err := s.api.ReportChecklist(ctx, req.Session.Token, report); err != nil {
		return Outcome{Query: back}, &SectionError{Message: "Failed to save report. Please try again.", Err: err}
	}
	return Outcome{Kind: "success", Message: "Report saved successfully!", Query: back}, nil
}

type historyTimeline struct {
	api API
}

func (s *historyTimeline) Template() string { return "section_history_timeline" }

func (s *historyTimeline) Load(ctx context.Context, req Request) (any, error) {
	records, err := s.api.PatientHistory(ctx, req.Session.Token, req.Session.UserID)
	if err != nil {
		return nil, failed(err, "Failed to load timeline data. Please try again.")
	}
	return HistoryEvents(records), nil
}

// HistoryEvents turns checklist history into dated events, oldest first.
// Events whose date cannot be parsed sort last.
func HistoryEvents(records []models.ChecklistRecord) []models.TimelineItem {
	var events []models.TimelineItem
	for _, r := range records {
		if r.FirstSeizureDate != "" {
			events = append(events, models.TimelineItem{
				ID:      models.Text(r.ID.String() + "-first-seizure"),
				Type:    models.TimelineFirstSeizure,
				Date:    r.FirstSeizureDate,
				Details: "Patient's first recorded seizure.",
			})
		}
		if r.MostRecentSeizureDate != "" {
			events = append(events, models.TimelineItem{
				ID:      models.Text(r.ID.String() + "-most-recent-seizure"),
				Type:    models.TimelineMostRecentSeizure,
				Date:    r.MostRecentSeizureDate,
				Details: "Patient's most recent recorded seizure.",
			})
		}
		if r.SubmissionDate != "" {
			events = append(events, models.TimelineItem{
				ID:      models.Text(r.ID.String() + "-submission"),
				Type:    models.TimelineRecordSubmission,
				Date:    r.SubmissionDate,
				Details: fmt.Sprintf("A record was submitted for patient ID %s.", r.PatientID),
			})
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		a, okA := ParseDate(events[i].Date)
		b, okB := ParseDate(events[j].Date)
		switch {
		case okA && okB:
			return a.Before(b)
		case okA:
			return true
		}
		return false
	})
	return events
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02 15:04:05",
}

// ParseDate accepts the date formats the backend is known to return.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
