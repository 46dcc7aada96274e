package repository

import (
	"codequest_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FlashcardRepository struct {
	DB *gorm.DB
}

func NewFlashcardRepository(db *gorm.DB) *FlashcardRepository {
	return &FlashcardRepository{DB: db}
}

func (r *FlashcardRepository) FindActive(languageID, courseID uint) ([]model.Flashcard, error) {
	query := r.DB.Where("is_active = ?", true)
	if languageID != 0 {
		query = query.Where("language_id = ?", languageID)
	}
	if courseID != 0 {
		query = query.Where("course_id = ?", courseID)
	}

	var cards []model.Flashcard
	err := query.Find(&cards).Error
	return cards, err
}

func (r *FlashcardRepository) FindByID(id uint) (*model.Flashcard, error) {
	var card model.Flashcard
	err := r.DB.First(&card, id).Error
	return &card, err
}

func (r *FlashcardRepository) Create(card *model.Flashcard) error {
	return r.DB.Create(card).Error
}

func (r *FlashcardRepository) Update(card *model.Flashcard) error {
	return r.DB.Save(card).Error
}

func (r *FlashcardRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Flashcard{}, id).Error
}

type FlashcardProgressRepository struct {
	DB *gorm.DB
}

func NewFlashcardProgressRepository(db *gorm.DB) *FlashcardProgressRepository {
	return &FlashcardProgressRepository{DB: db}
}

func (r *FlashcardProgressRepository) FindByUserAndCard(userID, flashcardID uint) (*model.FlashcardProgress, error) {
	var progress model.FlashcardProgress
	err := r.DB.Where("user_id = ? AND flashcard_id = ?", userID, flashcardID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *FlashcardProgressRepository) FindByUser(userID uint) ([]model.FlashcardProgress, error) {
	var records []model.FlashcardProgress
	err := r.DB.Where("user_id = ?", userID).Find(&records).Error
	return records, err
}

// Upsert 按 (user, flashcard) 键插入或更新
func (r *FlashcardProgressRepository) Upsert(progress *model.FlashcardProgress) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "flashcard_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"correct_count", "incorrect_count", "mastery_level", "last_reviewed", "updated_at",
		}),
	}).Create(progress).Error
}

// CountMastered 统计掌握度达到上限的卡片数，供成就评估使用
func (r *FlashcardProgressRepository) CountMastered(userID uint, masteryLevel int) (int64, error) {
	var count int64
	err := r.DB.Model(&model.FlashcardProgress{}).
		Where("user_id = ? AND mastery_level >= ?", userID, masteryLevel).
		Count(&count).Error
	return count, err
}
