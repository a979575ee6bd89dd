package handlers

import (
	"log/slog"
	"net/http"

	"frontend-gin/internal/backend"
	"frontend-gin/internal/dashboard"
	"frontend-gin/internal/models"
	"frontend-gin/internal/session"

	"github.com/gin-gonic/gin"
)

// apiSession returns the signed-in session for a JSON endpoint, or answers
// the request itself and reports false.
func apiSession(c *gin.Context, roles ...models.Role) (models.Session, bool) {
	state := session.FromContext(c)
	if !state.Authenticated {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication token not found"})
		return models.Session{}, false
	}
	if len(roles) == 0 {
		return state.Session, true
	}
	for _, role := range roles {
		if state.Role == role {
			return state.Session, true
		}
	}
	c.JSON(http.StatusForbidden, gin.H{"message": "Not allowed for role " + state.Role.Label()})
	return models.Session{}, false
}

// GetPatientsWithPage lists a patient's submitted checklists one page at a
// time. patient_id defaults to the signed-in user.
func (h *Handler) GetPatientsWithPage(c *gin.Context) {
	sess, ok := apiSession(c, models.RoleDoctor, models.RoleASHAWorker)
	if !ok {
		return
	}

	patientID := c.DefaultQuery("patient_id", sess.UserID)
	if patientID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid patient_id format for filtering"})
		return
	}

	records, err := h.api.PatientChecklists(c.Request.Context(), sess.Token, patientID)
	if err != nil {
		slog.Error("list checklists failed", "patient_id", patientID, "error", err)
		c.JSON(failureStatus(err), gin.H{"message": backend.Message(err, "Error fetching paginated patients")})
		return
	}

	page := dashboard.Paginate(records, dashboard.ParseListQuery(c.Request.URL.Query()))
	c.JSON(http.StatusOK, gin.H{
		"total":      page.Total,
		"page":       page.Page,
		"page_size":  page.PageSize,
		"sort_by":    page.SortBy,
		"sort_order": page.SortOrder,
		"patients":   page.Records,
	})
}

// GetPatientHistory returns the dated events derived from a patient's
// checklist history, oldest first.
func (h *Handler) GetPatientHistory(c *gin.Context) {
	sess, ok := apiSession(c)
	if !ok {
		return
	}

	patientID := sess.UserID
	if sess.Role != models.RolePatient {
		patientID = c.DefaultQuery("patient_id", sess.UserID)
	}

	records, err := h.api.PatientHistory(c.Request.Context(), sess.Token, patientID)
	if err != nil {
		slog.Error("patient history failed", "patient_id", patientID, "error", err)
		c.JSON(failureStatus(err), gin.H{"message": backend.Message(err, "Failed to load timeline data. Please try again.")})
		return
	}

	events := dashboard.HistoryEvents(records)
	if events == nil {
		events = []models.TimelineItem{}
	}
	c.JSON(http.StatusOK, gin.H{"patient_id": patientID, "events": events})
}
