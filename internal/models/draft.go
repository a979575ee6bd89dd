package models

// ChecklistDraft stores an in-progress assessment wizard between requests.
type ChecklistDraft struct {
	ID         string `json:"id" gorm:"primaryKey;size:36"`
	Page       int    `json:"page"`
	Form       string `json:"form" gorm:"type:jsonb"`
	CreateTime string `json:"create_time"`
	UpdateTime string `json:"update_time"`
	IsDeleted  bool   `json:"is_deleted,omitempty" gorm:"default:false;index"`
}
