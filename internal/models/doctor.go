package models

// ReportCheckmarks records which sections of a checklist the doctor has reviewed.
type ReportCheckmarks struct {
	SeizureInfo    bool `json:"seizureInfo" schema:"seizureInfo"`
	MedicalHistory bool `json:"medicalHistory" schema:"medicalHistory"`
	SocialSupport  bool `json:"socialSupport" schema:"socialSupport"`
	AdditionalInfo bool `json:"additionalInfo" schema:"additionalInfo"`
}

// DoctorReport is the review a doctor attaches to a submitted checklist.
type DoctorReport struct {
	PatientID  string           `json:"patientId" schema:"patientId"`
	Comments   string           `json:"comments" schema:"comments"`
	Checkmarks ReportCheckmarks `json:"checkmarks" schema:"checkmarks"`
}
