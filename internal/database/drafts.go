package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"frontend-gin/internal/models"
	"frontend-gin/internal/wizard"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DraftStore keeps wizard drafts in the checklist_drafts table. Deleting a
// draft only flags it.
type DraftStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewDraftStore(db *gorm.DB) *DraftStore {
	return &DraftStore{db: db, now: time.Now}
}

func (s *DraftStore) Load(ctx context.Context, id string) (wizard.State, error) {
	var draft models.ChecklistDraft
	err := s.db.WithContext(ctx).Where("id = ? AND is_deleted = ?", id, false).First(&draft).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return wizard.State{}, wizard.ErrDraftNotFound
	}
	if err != nil {
		return wizard.State{}, fmt.Errorf("load draft %s: %w", id, err)
	}
	return wizard.FromDraft(draft)
}

// Save upserts the draft. A previously deleted draft with the same id is
// revived.
func (s *DraftStore) Save(ctx context.Context, id string, state wizard.State) error {
	draft, err := wizard.ToDraft(id, state, s.now())
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"page", "form", "update_time", "is_deleted"}),
	}).Create(&draft).Error
	if err != nil {
		return fmt.Errorf("save draft %s: %w", id, err)
	}
	return nil
}

func (s *DraftStore) Delete(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Model(&models.ChecklistDraft{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_deleted":  true,
			"update_time": s.now().Format("2006-01-02 15:04:05"),
		}).Error
	if err != nil {
		return fmt.Errorf("delete draft %s: %w", id, err)
	}
	return nil
}
