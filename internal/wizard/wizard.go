// Package wizard holds the five-page community-visit assessment: page
// definitions, the form state carried between pages and the final submission.
package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"frontend-gin/internal/backend"
	"frontend-gin/internal/models"

	"github.com/gorilla/schema"
)

const dateLayout = "2006-01-02"

var (
	ErrNoToken         = errors.New("authentication token not found")
	ErrConsentRequired = errors.New("patient consent is required")
)

// SubmittedMessage is shown after a successful submission.
const SubmittedMessage = "Assessment submitted successfully!"

var decoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	d.ZeroEmpty(true)
	return d
}()

// Creator posts a finished checklist. *backend.Client satisfies it.
type Creator interface {
	CreateChecklist(ctx context.Context, token string, payload map[string]any) (*models.ChecklistRecord, error)
}

// State is the wizard's form state. Page is always within [FirstPage, LastPage].
type State struct {
	Page int                        `json:"page"`
	Form models.ChecklistAssessment `json:"form"`
}

// New returns the initial state: page one, every answer blank and the
// submission date set to today.
func New(now time.Time) State {
	return State{
		Page: FirstPage,
		Form: models.ChecklistAssessment{SubmissionDate: now.Format(dateLayout)},
	}
}

func (s *State) Next() {
	s.Page = ClampPage(s.Page + 1)
}

func (s *State) Previous() {
	s.Page = ClampPage(s.Page - 1)
}

// Current returns the page being shown.
func (s State) Current() Page {
	return PageAt(s.Page)
}

// Apply merges the posted answers of the current page into the form. Keys
// belonging to other pages are ignored and a checkbox of this page that was
// not posted is unticked.
func (s *State) Apply(posted url.Values) error {
	page := s.Current()
	values := url.Values{}
	for _, f := range page.Fields {
		v, ok := posted[f.Name]
		switch {
		case f.Kind == KindCheckbox && !ok:
			values.Set(f.Name, "false")
		case ok:
			values[f.Name] = v
		}
	}

	if err := decoder.Decode(&s.Form, values); err != nil {
		return fmt.Errorf("decode page %d: %w", page.Number, err)
	}
	return nil
}

// Values returns the form keyed by JSON field name.
func (s State) Values() (map[string]any, error) {
	raw, err := json.Marshal(s.Form)
	if err != nil {
		return nil, fmt.Errorf("encode form: %w", err)
	}
	values := map[string]any{}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("decode form values: %w", err)
	}
	return values, nil
}

// Visible reports whether f is shown given the answers in values.
func Visible(values map[string]any, f Field) bool {
	if f.VisibleWhen == "" {
		return true
	}
	on, _ := values[f.VisibleWhen].(bool)
	return on
}

// Payload is the body posted to the backend. Date answers that are empty or
// not a calendar date are left out.
func (s State) Payload() (map[string]any, error) {
	payload, err := s.Values()
	if err != nil {
		return nil, err
	}
	for _, key := range models.ChecklistDateFields {
		v, _ := payload[key].(string)
		if v == "" {
			delete(payload, key)
			continue
		}
		if _, err := time.Parse(dateLayout, v); err != nil {
			delete(payload, key)
		}
	}
	return payload, nil
}

// Submit checks consent, posts the payload and on success resets the state.
// On any failure the state is left untouched so the user can retry.
func (s *State) Submit(ctx context.Context, api Creator, token string, now time.Time) (*models.ChecklistRecord, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	if !s.Form.ConsentGiven {
		return nil, ErrConsentRequired
	}

	payload, err := s.Payload()
	if err != nil {
		return nil, fmt.Errorf("submit assessment: %w", err)
	}
	record, err := api.CreateChecklist(ctx, token, payload)
	if err != nil {
		return nil, fmt.Errorf("submit assessment: %w", err)
	}

	*s = New(now)
	return record, nil
}

// Message turns a Submit error into the text shown above the form.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrNoToken):
		return "Authentication token not found"
	case errors.Is(err, ErrConsentRequired):
		return "Patient consent is required"
	}
	return backend.Message(err, "Failed to submit assessment. Please try again.")
}
