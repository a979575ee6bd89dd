package models

// Timeline entry types returned by the backend.
const (
	TimelineMedication = "Medication"
	TimelineVisit      = "Visit"
	TimelineTest       = "Test"
	TimelineSeizure    = "Seizure"
)

// Timeline entry types derived locally from checklist history.
const (
	TimelineFirstSeizure      = "First Seizure"
	TimelineMostRecentSeizure = "Most Recent Seizure"
	TimelineRecordSubmission  = "Record Submission"
)

// TimelineItem is one event in a patient's history. Which of the optional
// fields are set depends on Type.
type TimelineItem struct {
	ID          Text   `json:"id"`
	Type        string `json:"type"`
	Date        string `json:"date"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Details     string `json:"details"`
	Notes       string `json:"notes"`

	// Medication
	MedicationName string `json:"medication_name"`
	Dosage         string `json:"dosage"`
	Duration       string `json:"duration"`

	// Visit
	DoctorName string `json:"doctor_name"`
	Purpose    string `json:"purpose"`
	Diagnosis  string `json:"diagnosis"`

	// Test
	TestName string `json:"test_name"`
	Location string `json:"location"`
	Results  string `json:"results"`

	// Seizure
	SeizureType string `json:"seizure_type"`
	Severity    string `json:"severity"`
	Triggers    string `json:"triggers"`

	Attachments []Attachment `json:"attachments"`
}
