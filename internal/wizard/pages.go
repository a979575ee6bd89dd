package wizard

// FieldKind selects how a field is rendered and how an absent value is read.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindNumber   FieldKind = "number"
	KindDate     FieldKind = "date"
	KindURL      FieldKind = "url"
	KindSelect   FieldKind = "select"
	KindCheckbox FieldKind = "checkbox"
)

// Field is one input of a wizard page. Name is the checklist's JSON key.
type Field struct {
	Name        string
	Label       string
	Kind        FieldKind
	Placeholder string
	Options     []string
	// VisibleWhen names the checkbox that must be ticked for the field to show.
	VisibleWhen string
}

type Page struct {
	Number int
	Title  string
	Fields []Field
}

const (
	FirstPage = 1
	LastPage  = 5
)

var Pages = []Page{
	{
		Number: 1,
		Title:  "Patient and Seizure Information",
		Fields: []Field{
			{Name: "patient_name", Label: "Patient Name", Kind: KindText, Placeholder: "Enter patient name"},
			{Name: "patient_age", Label: "Patient Age", Kind: KindNumber, Placeholder: "Enter patient age"},
			{Name: "first_seizure_date", Label: "First Seizure Date", Kind: KindDate},
			{Name: "most_recent_seizure_date", Label: "Most Recent Seizure Date", Kind: KindDate},
			{Name: "seizure_frequency", Label: "Seizure Frequency", Kind: KindSelect, Options: []string{"Daily", "Weekly", "Monthly", "Yearly"}},
			{Name: "seizure_duration", Label: "Seizure Duration", Kind: KindText, Placeholder: "e.g., 2-3 minutes"},
			{Name: "time_of_day", Label: "Time of Day", Kind: KindSelect, Options: []string{"Morning", "Afternoon", "Evening", "Night"}},
			{Name: "seizure_increased", Label: "Seizure Frequency Increased", Kind: KindCheckbox},
		},
	},
	{
		Number: 2,
		Title:  "Symptoms and Aura",
		Fields: []Field{
			{Name: "symptoms", Label: "Symptoms", Kind: KindText, Placeholder: "Describe symptoms"},
			{Name: "aura", Label: "Aura Present", Kind: KindCheckbox},
			{Name: "aura_description", Label: "Aura Description", Kind: KindText, VisibleWhen: "aura"},
			{Name: "head_injury", Label: "Head Injury", Kind: KindCheckbox},
			{Name: "head_injury_details", Label: "Head Injury Details", Kind: KindText, VisibleWhen: "head_injury"},
		},
	},
	{
		Number: 3,
		Title:  "Medical History",
		Fields: []Field{
			{Name: "family_history", Label: "Family History", Kind: KindCheckbox},
			{Name: "taking_medication", Label: "Currently Taking Medication", Kind: KindCheckbox},
			{Name: "medication_details", Label: "Medication Details", Kind: KindText, VisibleWhen: "taking_medication"},
			{Name: "past_conditions", Label: "Past Conditions", Kind: KindText},
			{Name: "tests_done", Label: "Tests Done", Kind: KindCheckbox},
			{Name: "test_documents", Label: "Test Documents", Kind: KindText, VisibleWhen: "tests_done"},
			{Name: "substance_use", Label: "Substance Use", Kind: KindCheckbox},
			{Name: "substance_details", Label: "Substance Details", Kind: KindText, VisibleWhen: "substance_use"},
			{Name: "vaccine_history", Label: "Vaccine History", Kind: KindText},
		},
	},
	{
		Number: 4,
		Title:  "Social and Support Information",
		Fields: []Field{
			{Name: "can_work", Label: "Can Work", Kind: KindSelect, Options: []string{"Fully", "Partially", "Not at all"}},
			{Name: "injury_from_seizure", Label: "Injury from Seizure", Kind: KindCheckbox},
			{Name: "injury_details", Label: "Injury Details", Kind: KindText, VisibleWhen: "injury_from_seizure"},
			{Name: "social_challenges", Label: "Social Challenges", Kind: KindText},
			{Name: "family_support", Label: "Family Support Available", Kind: KindCheckbox},
			{Name: "stigma", Label: "Experiences Stigma", Kind: KindCheckbox},
			{Name: "stigma_description", Label: "Stigma Description", Kind: KindText, VisibleWhen: "stigma"},
		},
	},
	{
		Number: 5,
		Title:  "Previous Medical Care and Additional Information",
		Fields: []Field{
			{Name: "visited_doctor_before", Label: "Visited Doctor Before", Kind: KindCheckbox},
			{Name: "doctor_details", Label: "Doctor Details", Kind: KindText, VisibleWhen: "visited_doctor_before"},
			{Name: "last_consultation_date", Label: "Last Consultation Date", Kind: KindDate, VisibleWhen: "visited_doctor_before"},
			{Name: "medication_history", Label: "Medication History", Kind: KindText},
			{Name: "missed_doses", Label: "Missed Doses", Kind: KindCheckbox},
			{Name: "condition_trend", Label: "Condition Trend", Kind: KindSelect, Options: []string{"Improving", "Stable", "Worsening"}},
			{Name: "hospitalized", Label: "Hospitalized", Kind: KindCheckbox},
			{Name: "hospitalization_details", Label: "Hospitalization Details", Kind: KindText, VisibleWhen: "hospitalized"},
			{Name: "video_url", Label: "Video URL", Kind: KindURL, Placeholder: "https://"},
			{Name: "document_urls", Label: "Document URLs", Kind: KindText, Placeholder: "Comma-separated links"},
			{Name: "timestamp_annotation", Label: "Timestamp Annotation", Kind: KindText},
			{Name: "consent_given", Label: "I confirm that I have obtained consent from the patient/guardian to collect and share this information", Kind: KindCheckbox},
		},
	},
}

// ClampPage keeps n inside [FirstPage, LastPage].
func ClampPage(n int) int {
	if n < FirstPage {
		return FirstPage
	}
	if n > LastPage {
		return LastPage
	}
	return n
}

// PageAt returns page n, clamped into range.
func PageAt(n int) Page {
	return Pages[ClampPage(n)-1]
}
