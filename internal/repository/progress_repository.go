package repository

import (
	"codequest_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) FindByUser(userID uint, courseID uint) ([]model.UserProgress, error) {
	query := r.DB.Where("user_id = ?", userID)
	if courseID != 0 {
		query = query.Where("course_id = ?", courseID)
	}

	var records []model.UserProgress
	err := query.Find(&records).Error
	return records, err
}

func (r *ProgressRepository) Upsert(progress *model.UserProgress) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"completion", "time_spent", "last_accessed", "completed_at", "updated_at",
		}),
	}).Create(progress).Error
}
