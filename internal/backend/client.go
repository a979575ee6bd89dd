// Package backend is the HTTP/JSON client for the remote epilepsy-care API and
// its gateway. Every call is a single request with no retry.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"frontend-gin/internal/models"
)

const maxResponseBytes = 4 << 20

// Error is a non-2xx answer, or a 2xx answer with success=false.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Message)
}

// Message converts err into something that can be shown to the user. Backend
// messages are passed through, anything else becomes fallback.
func Message(err error, fallback string) string {
	var backendErr *Error
	if errors.As(err, &backendErr) && backendErr.Message != "" {
		return backendErr.Message
	}
	return fallback
}

// Envelope is the response shape shared by all backend endpoints.
type Envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
	Token   string          `json:"token"`
	User    json.RawMessage `json:"user"`
}

// Succeeded treats a missing success flag as success.
func (e *Envelope) Succeeded() bool {
	return e.Success == nil || *e.Success
}

type Client struct {
	baseURL    string
	gatewayURL string
	httpClient *http.Client
}

func NewClient(baseURL, gatewayURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		gatewayURL: strings.TrimRight(gatewayURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) do(ctx context.Context, method, endpoint, token string, body any) (*Envelope, []byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}

	var env Envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		return nil, raw, &Error{Status: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		// Some endpoints answer with a bare array instead of an envelope.
		return &Envelope{Data: raw}, raw, nil
	}
	if !env.Succeeded() {
		return &env, raw, &Error{Status: resp.StatusCode, Message: env.Message}
	}
	return &env, raw, nil
}

func (c *Client) backendURL(path string, segments ...string) string {
	return joinURL(c.baseURL, path, segments...)
}

func (c *Client) gatewayEndpoint(path string, segments ...string) string {
	return joinURL(c.gatewayURL, path, segments...)
}

func joinURL(base, path string, segments ...string) string {
	var b strings.Builder
	b.WriteString(base)
	b.WriteString(path)
	for _, s := range segments {
		b.WriteString("/")
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

// decodeData unmarshals the envelope payload. A missing payload is not an error.
func decodeData(env *Envelope, v any) error {
	if len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

// AuthResult is what sign-in and sign-up return.
type AuthResult struct {
	Message string
	Token   string
	User    json.RawMessage
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignUpRequest struct {
	Name     string      `json:"name"`
	Gender   string      `json:"gender"`
	Mobile   string      `json:"mobile"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
	ASHAID   string      `json:"ashaId,omitempty"`
	DocID    string      `json:"docId,omitempty"`
}

func (c *Client) SignIn(ctx context.Context, req SignInRequest) (*AuthResult, error) {
	env, _, err := c.do(ctx, http.MethodPost, c.backendURL("/api/v1/auth/login"), "", req)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	return &AuthResult{Message: env.Message, Token: env.Token, User: env.User}, nil
}

func (c *Client) SignUp(ctx context.Context, req SignUpRequest) (*AuthResult, error) {
	env, _, err := c.do(ctx, http.MethodPost, c.backendURL("/api/v1/auth/signup"), "", req)
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}
	return &AuthResult{Message: env.Message, Token: env.Token, User: env.User}, nil
}

// CreateChecklist posts an assessment payload. The payload is a map so that
// stripped date fields are absent rather than empty.
func (c *Client) CreateChecklist(ctx context.Context, token string, payload map[string]any) (*models.ChecklistRecord, error) {
	env, _, err := c.do(ctx, http.MethodPost, c.backendURL("/api/v1/checklists/create"), token, payload)
	if err != nil {
		return nil, fmt.Errorf("create checklist: %w", err)
	}
	var record models.ChecklistRecord
	if err := decodeData(env, &record); err != nil {
		return nil, fmt.Errorf("create checklist: %w", err)
	}
	return &record, nil
}

func (c *Client) ReportChecklist(ctx context.Context, token string, report models.DoctorReport) error {
	if _, _, err := c.do(ctx, http.MethodPost, c.backendURL("/api/v1/checklists/report"), token, report); err != nil {
		return fmt.Errorf("report checklist: %w", err)
	}
	return nil
}

// PatientChecklists lists the checklists filed for a patient.
func (c *Client) PatientChecklists(ctx context.Context, token, patientID string) ([]models.ChecklistRecord, error) {
	env, _, err := c.do(ctx, http.MethodGet, c.backendURL("/api/v1/checklists/patient", patientID), token, nil)
	if err != nil {
		return nil, fmt.Errorf("list checklists: %w", err)
	}
	var records []models.ChecklistRecord
	if err := decodeData(env, &records); err != nil {
		return nil, fmt.Errorf("list checklists: %w", err)
	}
	return records, nil
}

// PatientHistory lists the history records the doctor timeline is derived from.
func (c *Client) PatientHistory(ctx context.Context, token, patientID string) ([]models.ChecklistRecord, error) {
	env, _, err := c.do(ctx, http.MethodGet, c.backendURL("/api/v1/checklists/patients", patientID), token, nil)
	if err != nil {
		return nil, fmt.Errorf("patient history: %w", err)
	}
	var records []models.ChecklistRecord
	if err := decodeData(env, &records); err != nil {
		return nil, fmt.Errorf("patient history: %w", err)
	}
	return records, nil
}

func (c *Client) PatientDetails(ctx context.Context, token, userID string) (*models.Patient, error) {
	env, _, err := c.do(ctx, http.MethodGet, c.gatewayEndpoint("/api/v1/patients", userID), token, nil)
	if err != nil {
		return nil, fmt.Errorf("patient details: %w", err)
	}
	var patient models.Patient
	if err := decodeData(env, &patient); err != nil {
		return nil, fmt.Errorf("patient details: %w", err)
	}
	return &patient, nil
}

func (c *Client) PatientTimeline(ctx context.Context, token, userID string) ([]models.TimelineItem, error) {
	env, _, err := c.do(ctx, http.MethodGet, c.gatewayEndpoint("/api/v1/patients", userID, "timeline"), token, nil)
	if err != nil {
		return nil, fmt.Errorf("patient timeline: %w", err)
	}
	var items []models.TimelineItem
	if err := decodeData(env, &items); err != nil {
		return nil, fmt.Errorf("patient timeline: %w", err)
	}
	return items, nil
}

// Heatmap returns the raw aggregate document. Its shape is owned by the
// backend, so callers decide how much of it to interpret.
func (c *Client) Heatmap(ctx context.Context) (json.RawMessage, error) {
	_, raw, err := c.do(ctx, http.MethodGet, c.backendURL("/api/v1/heatmap"), "", nil)
	if err != nil {
		return nil, fmt.Errorf("heatmap: %w", err)
	}
	return json.RawMessage(raw), nil
}
