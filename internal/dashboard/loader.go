// Package dashboard resolves a role's selected service to the section that
// renders it, and implements those sections.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"frontend-gin/internal/backend"
	"frontend-gin/internal/models"
	"frontend-gin/internal/wizard"
)

// LoadErrorMessage is shown in place of a section that could not be resolved.
const LoadErrorMessage = "Failed to load service component. Please try again."

// LoadError reports a (role, service) pair with no registered section.
type LoadError struct {
	Role      models.Role
	Service   string
	Component string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("no %s section %q for service %q", e.Role, e.Component, e.Service)
}

// SectionError carries the message shown when a section fails to load its data.
type SectionError struct {
	Message string
	Err     error
}

func (e *SectionError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *SectionError) Unwrap() error {
	return e.Err
}

// UserMessage picks the text shown for a loader or section failure.
func UserMessage(err error) string {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return LoadErrorMessage
	}
	var sectionErr *SectionError
	if errors.As(err, &sectionErr) {
		return sectionErr.Message
	}
	return backend.Message(err, "Something went wrong. Please try again.")
}

func failed(err error, fallback string) error {
	return &SectionError{Message: backend.Message(err, fallback), Err: err}
}

// Request is what a section sees of the incoming request.
type Request struct {
	Session models.Session
	DraftID string
	Query   url.Values
}

// Outcome is the result of a section action. Query is appended to the
// section URL for the redirect that follows.
type Outcome struct {
	Kind    string
	Message string
	Query   url.Values
}

// Section renders one dashboard service.
type Section interface {
	// Template names the html template that renders the view model.
	Template() string
	Load(ctx context.Context, req Request) (any, error)
}

// Actor is a section that also handles form posts.
type Actor interface {
	Section
	Act(ctx context.Context, req Request, form url.Values) (Outcome, error)
}

// API is the part of the backend client the sections use.
type API interface {
	wizard.Creator
	ReportChecklist(ctx context.Context, token string, report models.DoctorReport) error
	PatientChecklists(ctx context.Context, token, patientID string) ([]models.ChecklistRecord, error)
	PatientHistory(ctx context.Context, token, patientID string) ([]models.ChecklistRecord, error)
	PatientDetails(ctx context.Context, token, userID string) (*models.Patient, error)
	PatientTimeline(ctx context.Context, token, userID string) ([]models.TimelineItem, error)
}

type Deps struct {
	API    API
	Drafts wizard.Store
	Now    func() time.Time
}

// Loader maps (role, service) to a section. Sections hold no per-user state,
// so nothing is cached between requests or roles.
type Loader struct {
	catalog  *Catalog
	sections map[string]Section
}

func NewLoader(catalog *Catalog, deps Deps) *Loader {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	l := &Loader{catalog: catalog, sections: map[string]Section{}}

	l.Register(models.RoleDoctor, "PatientList", &patientList{api: deps.API})
	l.Register(models.RoleDoctor, "PatientReport", &patientReport{api: deps.API})
	l.Register(models.RoleDoctor, "PatientTimeline", &historyTimeline{api: deps.API})

	l.Register(models.RolePatient, "PatientDetails", &patientDetails{api: deps.API})
	l.Register(models.RolePatient, "PatientTimeline", &gatewayTimeline{api: deps.API})

	l.Register(models.RoleASHAWorker, "CommunityVisits", &communityVisits{api: deps.API, drafts: deps.Drafts, now: deps.Now})
	l.Register(models.RoleASHAWorker, "HealthCheck", &healthCheck{api: deps.API})
	l.Register(models.RoleASHAWorker, "PatientTimeline", &gatewayTimeline{api: deps.API})

	return l
}

func (l *Loader) Register(role models.Role, component string, s Section) {
	l.sections[string(role)+"/"+component] = s
}

func (l *Loader) Services(role models.Role) []Service {
	return l.catalog.Services(role)
}

// ServiceName returns the sidebar label of key, or key itself.
func (l *Loader) ServiceName(role models.Role, key string) string {
	for _, s := range l.catalog.Services(role) {
		if s.Key == key {
			return s.Name
		}
	}
	return key
}

// Resolve maps serviceKey through the service map and returns the section
// registered for role under the resulting identifier.
func (l *Loader) Resolve(role models.Role, serviceKey string) (Section, error) {
	component := ComponentFor(serviceKey)
	s, ok := l.sections[string(role)+"/"+component]
	if !ok {
		return nil, &LoadError{Role: role, Service: serviceKey, Component: component}
	}
	return s, nil
}
