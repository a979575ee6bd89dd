package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"frontend-gin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, srv.URL+"/gatewayApi", 2*time.Second)
}

func TestSignInPostsCredentials(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var body SignInRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "asha@example.com", body.Email)
		assert.Equal(t, "secret123", body.Password)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "message": "ok", "token": "tkn", "user": {"id": 1}}`))
	})

	res, err := client.SignIn(context.Background(), SignInRequest{Email: "asha@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "tkn", res.Token)
	assert.Equal(t, "ok", res.Message)
	assert.JSONEq(t, `{"id": 1}`, string(res.User))
}

func TestErrorStatusCarriesBackendMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success": false, "message": "Invalid credentials"}`))
	})

	_, err := client.SignIn(context.Background(), SignInRequest{Email: "x", Password: "y"})
	require.Error(t, err)

	var backendErr *Error
	require.True(t, errors.As(err, &backendErr))
	assert.Equal(t, http.StatusUnauthorized, backendErr.Status)
	assert.Equal(t, "Invalid credentials", Message(err, "Signin failed"))
}

func TestSuccessFalseIsAnError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "message": "Duplicate checklist"}`))
	})

	_, err := client.CreateChecklist(context.Background(), "tkn", map[string]any{"consent_given": true})
	require.Error(t, err)
	assert.Equal(t, "Duplicate checklist", Message(err, "fallback"))
}

func TestMessageFallsBackForTransportErrors(t *testing.T) {
	assert.Equal(t, "fallback", Message(errors.New("dial tcp: refused"), "fallback"))
	assert.Equal(t, "fallback", Message(&Error{Status: 502}, "fallback"))
}

func TestAuthenticatedCallsSendBearerToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tkn", r.Header.Get("Authorization"))
		assert.Equal(t, "/api/v1/checklists/patient/17", r.URL.Path)
		w.Write([]byte(`{"success": true, "data": [{"id": 3, "patient_id": 17, "patient_name": "Asha", "condition_trend": "Stable"}]}`))
	})

	records, err := client.PatientChecklists(context.Background(), "tkn", "17")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.Text("3"), records[0].ID)
	assert.Equal(t, "Asha", records[0].PatientName)
	assert.Equal(t, "Stable", records[0].ConditionTrend)
}

func TestGatewayEndpoints(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/gatewayApi/api/v1/patients/u1":
			w.Write([]byte(`{"success": true, "data": {"id": "u1", "name": "Ravi", "age": 30}}`))
		case "/gatewayApi/api/v1/patients/u1/timeline":
			w.Write([]byte(`{"success": true, "data": [{"id": 1, "type": "Visit", "date": "2024-02-01", "attachments": [{"name": "EEG", "url": "https://files.test/eeg.pdf"}]}]}`))
		default:
			http.NotFound(w, r)
		}
	})

	patient, err := client.PatientDetails(context.Background(), "tkn", "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ravi", patient.Name)
	require.NotNil(t, patient.Age)
	assert.Equal(t, models.Text("30"), *patient.Age)

	items, err := client.PatientTimeline(context.Background(), "tkn", "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.TimelineVisit, items[0].Type)
	require.Len(t, items[0].Attachments, 1)
	assert.Equal(t, "EEG", items[0].Attachments[0].Name)
}

func TestBareArrayResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat": 12.9, "lng": 77.5, "count": 4}]`))
	})

	raw, err := client.Heatmap(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"lat": 12.9, "lng": 77.5, "count": 4}]`, string(raw))
}

func TestReportChecklist(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/checklists/report", r.URL.Path)
		var report models.DoctorReport
		require.NoError(t, json.NewDecoder(r.Body).Decode(&report))
		assert.Equal(t, "9", report.PatientID)
		assert.True(t, report.Checkmarks.SeizureInfo)
		w.Write([]byte(`{"success": true}`))
	})

	err := client.ReportChecklist(context.Background(), "tkn", models.DoctorReport{
		PatientID:  "9",
		Comments:   "Reviewed",
		Checkmarks: models.ReportCheckmarks{SeizureInfo: true},
	})
	assert.NoError(t, err)
}
