package model

import "time"

// FlashcardProgress 记录单个用户对单张卡片的掌握情况
// correct/incorrect 只增不减，mastery_level 限制在 [0,5]
type FlashcardProgress struct {
	BaseModel
	UserID         uint      `gorm:"uniqueIndex:idx_user_flashcard;not null" json:"userId"`
	FlashcardID    uint      `gorm:"uniqueIndex:idx_user_flashcard;not null" json:"flashcardId"`
	CorrectCount   int       `gorm:"default:0" json:"correctCount"`
	IncorrectCount int       `gorm:"default:0" json:"incorrectCount"`
	MasteryLevel   int       `gorm:"default:0" json:"masteryLevel"`
	LastReviewed   time.Time `json:"lastReviewed"`
}

func (FlashcardProgress) TableName() string {
	return "flashcard_progress"
}
