package dashboard

import (
	"context"

	"frontend-gin/internal/models"
)

type patientDetails struct {
	api API
}

func (s *patientDetails) Template() string { return "section_patient_details" }

func (s *patientDetails) Load(ctx context.Context, req Request) (any, error) {
	patient, err := s.api.PatientDetails(ctx, req.Session.Token, req.Session.UserID)
	if err != nil {
		return nil, failed(err, "Failed to load patient details. Please try again.")
	}
	return patient, nil
}

// gatewayTimeline shows the typed timeline kept by the gateway. Patients and
// ASHA workers both use it.
type gatewayTimeline struct {
	api API
}

func (s *gatewayTimeline) Template() string { return "section_timeline" }

func (s *gatewayTimeline) Load(ctx context.Context, req Request) (any, error) {
	items, err := s.api.PatientTimeline(ctx, req.Session.Token, req.Session.UserID)
	if err != nil {
		return nil, failed(err, "Failed to load timeline data. Please try again.")
	}
	if items == nil {
		items = []models.TimelineItem{}
	}
	return items, nil
}
