package models

// ChecklistAssessment is the community-visit checklist collected by the
// assessment wizard. Field names match the backend's JSON contract.
type ChecklistAssessment struct {
	// Seizure information
	PatientName           string `json:"patient_name" schema:"patient_name"`
	PatientAge            Text   `json:"patient_age" schema:"patient_age"`
	SubmissionDate        string `json:"submission_date" schema:"submission_date"`
	FirstSeizureDate      string `json:"first_seizure_date" schema:"first_seizure_date"`
	MostRecentSeizureDate string `json:"most_recent_seizure_date" schema:"most_recent_seizure_date"`
	SeizureFrequency      string `json:"seizure_frequency" schema:"seizure_frequency"`
	SeizureDuration       string `json:"seizure_duration" schema:"seizure_duration"`
	TimeOfDay             string `json:"time_of_day" schema:"time_of_day"`
	SeizureIncreased      bool   `json:"seizure_increased" schema:"seizure_increased"`

	// Symptoms and history
	Aura              bool   `json:"aura" schema:"aura"`
	AuraDescription   string `json:"aura_description" schema:"aura_description"`
	HeadInjury        bool   `json:"head_injury" schema:"head_injury"`
	HeadInjuryDetails string `json:"head_injury_details" schema:"head_injury_details"`
	Symptoms          string `json:"symptoms" schema:"symptoms"`

	// Medical history
	FamilyHistory     bool   `json:"family_history" schema:"family_history"`
	TakingMedication  bool   `json:"taking_medication" schema:"taking_medication"`
	MedicationDetails string `json:"medication_details" schema:"medication_details"`
	PastConditions    string `json:"past_conditions" schema:"past_conditions"`
	TestsDone         bool   `json:"tests_done" schema:"tests_done"`
	TestDocuments     string `json:"test_documents" schema:"test_documents"`
	SubstanceUse      bool   `json:"substance_use" schema:"substance_use"`
	SubstanceDetails  string `json:"substance_details" schema:"substance_details"`
	VaccineHistory    string `json:"vaccine_history" schema:"vaccine_history"`

	// Social factors
	CanWork           string `json:"can_work" schema:"can_work"`
	InjuryFromSeizure bool   `json:"injury_from_seizure" schema:"injury_from_seizure"`
	InjuryDetails     string `json:"injury_details" schema:"injury_details"`
	SocialChallenges  string `json:"social_challenges" schema:"social_challenges"`
	FamilySupport     bool   `json:"family_support" schema:"family_support"`
	Stigma            bool   `json:"stigma" schema:"stigma"`
	StigmaDescription string `json:"stigma_description" schema:"stigma_description"`

	// Care history, attachments and consent
	VisitedDoctorBefore    bool   `json:"visited_doctor_before" schema:"visited_doctor_before"`
	DoctorDetails          string `json:"doctor_details" schema:"doctor_details"`
	LastConsultationDate   string `json:"last_consultation_date" schema:"last_consultation_date"`
	MedicationHistory      string `json:"medication_history" schema:"medication_history"`
	MissedDoses            bool   `json:"missed_doses" schema:"missed_doses"`
	ConditionTrend         string `json:"condition_trend" schema:"condition_trend"`
	Hospitalized           bool   `json:"hospitalized" schema:"hospitalized"`
	HospitalizationDetails string `json:"hospitalization_details" schema:"hospitalization_details"`
	VideoURL               string `json:"video_url" schema:"video_url"`
	DocumentURLs           string `json:"document_urls" schema:"document_urls"`
	TimestampAnnotation    string `json:"timestamp_annotation" schema:"timestamp_annotation"`
	ConsentGiven           bool   `json:"consent_given" schema:"consent_given"`
}

// ChecklistRecord is a submitted checklist as the backend returns it.
type ChecklistRecord struct {
	ID        Text `json:"id"`
	PatientID Text `json:"patient_id"`
	ChecklistAssessment
}

// ChecklistDateFields are the optional date answers that are dropped from a
// submission when empty or unparseable.
var ChecklistDateFields = []string{
	"first_seizure_date",
	"most_recent_seizure_date",
	"last_consultation_date",
}
