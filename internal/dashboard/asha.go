package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"time"

	"frontend-gin/internal/models"
	"frontend-gin/internal/wizard"
)

// Wizard form operations posted as "op".
const (
	OpNext     = "next"
	OpPrevious = "previous"
	OpSubmit   = "submit"
	OpCancel   = "cancel"
)

// VisitsView is either the list of submitted visits or the open wizard.
type VisitsView struct {
	ShowForm bool
	Patients []models.ChecklistRecord
	Wizard   *WizardView
}

type WizardView struct {
	Page       wizard.Page
	TotalPages int
	Fields     []FieldView
}

func (w WizardView) IsFirst() bool { return w.Page.Number == wizard.FirstPage }
func (w WizardView) IsLast() bool  { return w.Page.Number == wizard.LastPage }

// FieldView is a field with its current answer.
type FieldView struct {
	wizard.Field
	Value   string
	Checked bool
	Visible bool
}

// NewWizardView pairs the current page's fields with their answers.
func NewWizardView(state wizard.State) (*WizardView, error) {
	values, err := state.Values()
	if err != nil {
		return nil, err
	}
	page := state.Current()
	view := &WizardView{Page: page, TotalPages: wizard.LastPage}
	for _, f := range page.Fields {
		fv := FieldView{Field: f, Visible: wizard.Visible(values, f)}
		switch v := values[f.Name].(type) {
		case bool:
			fv.Checked = v
		case nil:
		default:
			fv.Value = fmt.Sprint(v)
		}
		view.Fields = append(view.Fields, fv)
	}
	return view, nil
}

type communityVisits struct {
	api    API
	drafts wizard.Store
	now    func() time.Time
}

func (s *communityVisits) Template() string { return "section_community_visits" }

func (s *communityVisits) Load(ctx context.Context, req Request) (any, error) {
	if req.Query.Get("view") == "form" {
		state, err := wizard.Resume(ctx, s.drafts, req.DraftID, s.now())
		if err != nil {
			return nil, failed(err, "Failed to load the assessment. Please try again.")
		}
		view, err := NewWizardView(state)
		if err != nil {
			return nil, failed(err, "Failed to load the assessment. Please try again.")
		}
		return VisitsView{ShowForm: true, Wizard: view}, nil
	}

	records, err := s.api.PatientChecklists(ctx, req.Session.Token, req.Session.UserID)
	if err != nil {
		return nil, failed(err, "Failed to load patients. Please try again.")
	}
	return VisitsView{Patients: records}, nil
}

// Act moves the wizard. The posted answers of the current page are kept
// whatever the operation, and the draft is saved before the redirect.
func (s *communityVisits) Act(ctx context.Context, req Request, form url.Values) (Outcome, error) {
	formView := url.Values{"view": {"form"}}

	state, err := wizard.Resume(ctx, s.drafts, req.DraftID, s.now())
	if err != nil {
		return Outcome{Query: formView}, failed(err, "Failed to load the assessment. Please try again.")
	}

	op := form.Get("op")
	if op == OpCancel {
		if err := s.drafts.Delete(ctx, req.DraftID); err != nil {
			return Outcome{}, failed(err, "Failed to discard the assessment.")
		}
		return Outcome{}, nil
	}

	if err := state.Apply(form); err != nil {
		return Outcome{Query: formView}, &SectionError{Message: "Some answers could not be read. Please check the form.", Err: err}
	}

	switch op {
	case OpNext:
		state.Next()
	case OpPrevious:
		state.Previous()
	case OpSubmit:
		if _, err := state.Submit(ctx, s.api, req.Session.Token, s.now()); err != nil {
			if saveErr := s.drafts.Save(ctx, req.DraftID, state); saveErr != nil {
				err = fmt.Errorf("%w (draft not saved: %v)", err, saveErr)
			}
			return Outcome{Query: formView}, &SectionError{Message: wizard.Message(err), Err: err}
		}
		if err := s.drafts.Delete(ctx, req.DraftID); err != nil {
			slog.Warn("submitted draft not deleted", "draft", req.DraftID, "error", err)
		}
		return Outcome{Kind: "success", Message: wizard.SubmittedMessage}, nil
	}

	if err := s.drafts.Save(ctx, req.DraftID, state); err != nil {
		return Outcome{Query: formView}, failed(err, "Failed to save the assessment. Please try again.")
	}
	return Outcome{Query: formView}, nil
}

// HealthRow summarises one submitted assessment.
type HealthRow struct {
	ID        string
	Patient   string
	Date      string
	Frequency string
	Trend     string
	Notes     string
}

type HealthView struct {
	Checks []HealthRow
	Trends map[string]int
}

type healthCheck struct {
	api API
}

func (s *healthCheck) Template() string { return "section_health_check" }

func (s *healthCheck) Load(ctx context.Context, req Request) (any, error) {
	records, err := s.api.PatientChecklists(ctx, req.Session.Token, req.Session.UserID)
	if err != nil {
		return nil, failed(err, "Failed to load health checks. Please try again.")
	}
	return HealthSummary(records), nil
}

// HealthSummary lists assessments newest first and counts them by condition
// trend. A missing trend counts as "Unknown".
func HealthSummary(records []models.ChecklistRecord) HealthView {
	view := HealthView{Trends: map[string]int{}}
	for _, r := range records {
		trend := r.ConditionTrend
		if trend == "" {
			trend = "Unknown"
		}
		view.Trends[trend]++
		view.Checks = append(view.Checks, HealthRow{
			ID:        r.ID.String(),
			Patient:   r.PatientName,
			Date:      r.SubmissionDate,
			Frequency: r.SeizureFrequency,
			Trend:     trend,
			Notes:     r.Symptoms,
		})
	}
	sort.SliceStable(view.Checks, func(i, j int) bool {
		return view.Checks[i].Date > view.Checks[j].Date
	})
	return view
}
