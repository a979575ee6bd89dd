package dashboard

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"frontend-gin/internal/backend"
	"frontend-gin/internal/models"
	"frontend-gin/internal/wizard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

type fakeAPI struct {
	records  []models.ChecklistRecord
	history  []models.ChecklistRecord
	timeline []models.TimelineItem
	patient  *models.Patient
	err      error

	created   []map[string]any
	reports   []models.DoctorReport
	patientID string
}

func (f *fakeAPI) CreateChecklist(_ context.Context, _ string, payload map[string]any) (*models.ChecklistRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, payload)
	return &models.ChecklistRecord{ID: "100"}, nil
}

func (f *fakeAPI) ReportChecklist(_ context.Context, _ string, report models.DoctorReport) error {
	if f.err != nil {
		return f.err
	}
	f.reports = append(f.reports, report)
	return nil
}

func (f *fakeAPI) PatientChecklists(_ context.Context, _, patientID string) ([]models.ChecklistRecord, error) {
	f.patientID = patientID
	return f.records, f.err
}

func (f *fakeAPI) PatientHistory(_ context.Context, _, patientID string) ([]models.ChecklistRecord, error) {
	f.patientID = patientID
	return f.history, f.err
}

func (f *fakeAPI) PatientDetails(_ context.Context, _, userID string) (*models.Patient, error) {
	f.patientID = userID
	return f.patient, f.err
}

func (f *fakeAPI) PatientTimeline(_ context.Context, _, userID string) ([]models.TimelineItem, error) {
	f.patientID = userID
	return f.timeline, f.err
}

func newTestLoader(t *testing.T, api *fakeAPI) (*Loader, *wizard.MemoryStore) {
	t.Helper()
	catalog, err := DefaultCatalog()
	require.NoError(t, err)
	drafts := wizard.NewMemoryStore()
	return NewLoader(catalog, Deps{API: api, Drafts: drafts, Now: func() time.Time { return fixedNow }}), drafts
}

func record(id, patientID, name, submitted string) models.ChecklistRecord {
	r := models.ChecklistRecord{ID: models.Text(id), PatientID: models.Text(patientID)}
	r.PatientName = name
	r.SubmissionDate = submitted
	return r
}

func TestEveryCatalogServiceResolves(t *testing.T) {
	loader, _ := newTestLoader(t, &fakeAPI{})
	for _, role := range models.Roles {
		services := loader.Services(role)
		assert.NotEmpty(t, services, role)
		for _, s := range services {
			_, err := loader.Resolve(role, s.Key)
			assert.NoError(t, err, "%s/%s", role, s.Key)
		}
	}
}

func TestResolveMapsServiceKeys(t *testing.T) {
	loader, _ := newTestLoader(t, &fakeAPI{})

	s, err := loader.Resolve(models.RoleDoctor, "patients")
	require.NoError(t, err)
	assert.Equal(t, "section_patient_list", s.Template())

	s, err = loader.Resolve(models.RoleDoctor, "patient-report")
	require.NoError(t, err)
	_, isActor := s.(Actor)
	assert.True(t, isActor)

	s, err = loader.Resolve(models.RoleDoctor, "PatientReport")
	require.NoError(t, err)
	assert.Equal(t, "section_patient_report", s.Template())
}

func TestResolveUnknownService(t *testing.T) {
	loader, _ := newTestLoader(t, &fakeAPI{})

	tests := []struct {
		role      models.Role
		key       string
		component string
	}{
		{models.RoleDoctor, "appointments", "appointments"},
		{models.RolePatient, "patients", "PatientList"},
		{models.RoleASHAWorker, "PatientReport", "PatientReport"},
		{"admin", "PatientTimeline", "PatientTimeline"},
	}
	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+tt.key, func(t *testing.T) {
			s, err := loader.Resolve(tt.role, tt.key)
			assert.Nil(t, s)

			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Equal(t, tt.component, loadErr.Component)
			assert.Equal(t, LoadErrorMessage, UserMessage(err))
		})
	}
}

func TestParseCatalogRejectsUnknownRole(t *testing.T) {
	_, err := ParseCatalog([]byte("roles:\n  admin:\n    - name: Users\n      key: users\n"))
	assert.Error(t, err)

	_, err = ParseCatalog([]byte("roles:\n  doctor:\n    - name: Nameless\n"))
	assert.Error(t, err)

	c, err := ParseCatalog([]byte("roles:\n  patient:\n    - name: Mine\n      key: PatientDetails\n"))
	require.NoError(t, err)
	assert.Equal(t, []Service{{Name: "Mine", Key: "PatientDetails"}}, c.Services(models.RolePatient))
	assert.Empty(t, c.Services(models.RoleDoctor))
}

func TestPaginate(t *testing.T) {
	records := []models.ChecklistRecord{
		record("10", "3", "Ravi", "2024-05-01"),
		record("2", "1", "anita", "2024-07-11"),
		record("7", "2", "Bala", "2024-01-20"),
	}

	page := Paginate(records, ParseListQuery(url.Values{}))
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 1, page.Pages)
	assert.Equal(t, []models.Text{"2", "7", "10"}, ids(page.Records), "ids sort numerically")

	page = Paginate(records, ParseListQuery(url.Values{"sort_by": {"Name"}, "sort_order": {"desc"}}))
	assert.Equal(t, []models.Text{"10", "7", "2"}, ids(page.Records))

	page = Paginate(records, ParseListQuery(url.Values{"page": {"2"}, "page_size": {"2"}, "sort_by": {"submission_date"}}))
	assert.Equal(t, 2, page.Pages)
	assert.True(t, page.HasPrev())
	assert.False(t, page.HasNext())
	assert.Equal(t, []models.Text{"2"}, ids(page.Records))

	page = Paginate(records, ParseListQuery(url.Values{"page": {"9"}, "page_size": {"x"}, "sort_by": {"password"}, "sort_order": {"sideways"}}))
	assert.Equal(t, defaultPageSize, page.PageSize)
	assert.Equal(t, "id", page.SortBy)
	assert.Equal(t, "asc", page.SortOrder)
	assert.Empty(t, page.Records)

	page = Paginate(records, ParseListQuery(url.Values{"page": {"922337203685477582"}}))
	assert.Equal(t, 922337203685477582, page.Page)
	assert.Empty(t, page.Records)
	assert.False(t, page.HasNext())

	page = Paginate(records, ParseListQuery(url.Values{"page": {"2"}, "page_size": {"9223372036854775807"}}))
	assert.Equal(t, maxPageSize, page.PageSize)
	assert.Equal(t, 1, page.Pages)
	assert.Empty(t, page.Records)

	page = Paginate(records, ListQuery{Page: 1, PageSize: int(^uint(0) >> 1), SortBy: "id", SortOrder: "asc"})
	assert.Len(t, page.Records, 3)

	assert.Equal(t, 3, len(records), "input is not reordered in place")
	assert.Equal(t, models.Text("10"), records[0].ID)
}

func TestSortLinkFlipsOrder(t *testing.T) {
	page := ListPage{ListQuery: ListQuery{Page: 3, PageSize: 5, SortBy: "patient_name", SortOrder: "asc"}}
	q, err := url.ParseQuery(page.SortLink("patient_name"))
	require.NoError(t, err)
	assert.Equal(t, "desc", q.Get("sort_order"))
	assert.Equal(t, "1", q.Get("page"))

	q, err = url.ParseQuery(page.SortLink("submission_date"))
	require.NoError(t, err)
	assert.Equal(t, "asc", q.Get("sort_order"))
}

func ids(records []models.ChecklistRecord) []models.Text {
	out := make([]models.Text, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestHistoryEvents(t *testing.T) {
	first := record("1", "9", "Ravi", "2024-03-10")
	first.FirstSeizureDate = "2019-08-01"
	first.MostRecentSeizureDate = "2024-02-28"
	second := record("2", "9", "Ravi", "not a date")

	events := HistoryEvents([]models.ChecklistRecord{first, second})
	require.Len(t, events, 4)
	assert.Equal(t, models.TimelineFirstSeizure, events[0].Type)
	assert.Equal(t, models.Text("1-first-seizure"), events[0].ID)
	assert.Equal(t, models.TimelineMostRecentSeizure, events[1].Type)
	assert.Equal(t, models.TimelineRecordSubmission, events[2].Type)
	assert.Equal(t, "A record was submitted for patient ID 9.", events[2].Details)
	assert.Equal(t, "not a date", events[3].Date)
}

func TestSectionsUseSessionUserID(t *testing.T) {
	api := &fakeAPI{patient: &models.Patient{ID: "u7", Name: "Kiran"}}
	loader, _ := newTestLoader(t, api)
	req := Request{Session: models.Session{Token: "tkn", Role: models.RolePatient, UserID: "u7"}, Query: url.Values{}}

	s, err := loader.Resolve(models.RolePatient, "PatientDetails")
	require.NoError(t, err)
	data, err := s.Load(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Kiran", data.(*models.Patient).Name)
	assert.Equal(t, "u7", api.patientID)

	s, err = loader.Resolve(models.RolePatient, "PatientTimeline")
	require.NoError(t, err)
	data, err = s.Load(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, data.([]models.TimelineItem))
}

func TestSectionLoadFailureMessage(t *testing.T) {
	api := &fakeAPI{err: errors.New("dial tcp: i/o timeout")}
	loader, _ := newTestLoader(t, api)

	s, err := loader.Resolve(models.RoleASHAWorker, "CommunityVisits")
	require.NoError(t, err)
	_, err = s.Load(context.Background(), Request{Query: url.Values{}})
	assert.Equal(t, "Failed to load patients. Please try again.", UserMessage(err))

	api.err = &backend.Error{Status: 404, Message: "No history for patient"}
	s, err = loader.Resolve(models.RoleDoctor, "PatientTimeline")
	require.NoError(t, err)
	_, err = s.Load(context.Background(), Request{Query: url.Values{}})
	assert.Equal(t, "No history for patient", UserMessage(err))
}

func TestPatientReport(t *testing.T) {
	api := &fakeAPI{records: []models.ChecklistRecord{record("5", "2", "Ravi", "2024-01-01"), record("6", "3", "Meena", "2024-02-01")}}
	loader, _ := newTestLoader(t, api)
	s, err := loader.Resolve(models.RoleDoctor, "patient-report")
	require.NoError(t, err)

	data, err := s.Load(context.Background(), Request{Query: url.Values{"report": {"6"}}})
	require.NoError(t, err)
	view := data.(ReportView)
	require.NotNil(t, view.Selected)
	assert.Equal(t, "Meena", view.Selected.PatientName)

	out, err := s.(Actor).Act(context.Background(), Request{Session: models.Session{Token: "tkn"}}, url.Values{
		"patientId":                 {"6"},
		"comments":                  {"Needs EEG follow-up"},
		"checkmarks.seizureInfo":    {"true"},
		"checkmarks.additionalInfo": {"true"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Report saved successfully!", out.Message)
	assert.Equal(t, "6", out.Query.Get("report"))
	require.Len(t, api.reports, 1)
	assert.Equal(t, models.DoctorReport{
		PatientID:  "6",
		Comments:   "Needs EEG follow-up",
		Checkmarks: models.ReportCheckmarks{SeizureInfo: true, AdditionalInfo: true},
	}, api.reports[0])

	api.err = errors.New("boom")
	_, err = s.(Actor).Act(context.Background(), Request{}, url.Values{"patientId": {"6"}})
	assert.Equal(t, "Failed to save report. Please try again.", UserMessage(err))
}

func TestCommunityVisitsWizardFlow(t *testing.T) {
	api := &fakeAPI{}
	loader, drafts := newTestLoader(t, api)
	s, err := loader.Resolve(models.RoleASHAWorker, "CommunityVisits")
	require.NoError(t, err)
	visits := s.(Actor)

	ctx := context.Background()
	req := Request{Session: models.Session{Token: "tkn", UserID: "a1"}, DraftID: "draft-1", Query: url.Values{"view": {"form"}}}

	out, err := visits.Act(ctx, req, url.Values{"op": {OpNext}, "patient_name": {"Meena"}, "patient_age": {"31"}})
	require.NoError(t, err)
	assert.Equal(t, "form", out.Query.Get("view"))

	state, err := drafts.Load(ctx, "draft-1")
	require.NoError(t, err)
	assert.Equal(t, 2, state.Page)
	assert.Equal(t, "Meena", state.Form.PatientName)

	data, err := visits.Load(ctx, req)
	require.NoError(t, err)
	view := data.(VisitsView)
	require.True(t, view.ShowForm)
	assert.Equal(t, 2, view.Wizard.Page.Number)
	for _, f := range view.Wizard.Fields {
		if f.Name == "aura_description" {
			assert.False(t, f.Visible)
		}
	}

	// Jump to the last page and submit without consent.
	for i := 0; i < 5; i++ {
		_, err = visits.Act(ctx, req, url.Values{"op": {OpNext}})
		require.NoError(t, err)
	}
	_, err = visits.Act(ctx, req, url.Values{"op": {OpSubmit}})
	assert.Equal(t, "Patient consent is required", UserMessage(err))
	assert.Empty(t, api.created)

	state, err = drafts.Load(ctx, "draft-1")
	require.NoError(t, err)
	assert.Equal(t, wizard.LastPage, state.Page)

	out, err = visits.Act(ctx, req, url.Values{"op": {OpSubmit}, "consent_given": {"true"}})
	require.NoError(t, err)
	assert.Equal(t, wizard.SubmittedMessage, out.Message)
	require.Len(t, api.created, 1)
	assert.Equal(t, "Meena", api.created[0]["patient_name"])
	assert.Equal(t, "2025-06-01", api.created[0]["submission_date"])

	_, err = drafts.Load(ctx, "draft-1")
	assert.ErrorIs(t, err, wizard.ErrDraftNotFound)
}

func TestHealthSummary(t *testing.T) {
	a := record("1", "1", "Ravi", "2024-01-05")
	a.ConditionTrend = "Stable"
	b := record("2", "2", "Meena", "2024-03-01")
	c := record("3", "3", "Bala", "2024-02-10")
	c.ConditionTrend = "Stable"

	view := HealthSummary([]models.ChecklistRecord{a, b, c})
	assert.Equal(t, map[string]int{"Stable": 2, "Unknown": 1}, view.Trends)
	require.Len(t, view.Checks, 3)
	assert.Equal(t, "Meena", view.Checks[0].Patient)
	assert.Equal(t, "Ravi", view.Checks[2].Patient)
}
