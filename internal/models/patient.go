package models

// Patient is the backend's patient record. The front end only ever reads it.
type Patient struct {
	ID                    Text              `json:"id"`
	Name                  string            `json:"name"`
	Age                   *Text             `json:"age"`
	DOB                   string            `json:"dob"`
	Gender                *string           `json:"gender"`
	Phone                 *string           `json:"phone"`
	Email                 *string           `json:"email"`
	Address               *string           `json:"address"`
	SeizureFrequency      string            `json:"seizure_frequency"`
	FirstSeizureDate      string            `json:"first_seizure_date"`
	MostRecentSeizureDate string            `json:"most_recent_seizure_date"`
	MedicationDetails     string            `json:"medication_details"`
	FamilyHistory         bool              `json:"family_history"`
	VisitedDoctorBefore   bool              `json:"visited_doctor_before"`
	CanWork               string            `json:"can_work"`
	SocialChallenges      string            `json:"social_challenges"`
	Checklists            []ChecklistRecord `json:"checklists"`
	CreateTime            string            `json:"create_time"`
	UpdateTime            string            `json:"update_time"`
}
