package model

import "time"

// QuizAttempt 一次测验提交的不可变记录，创建后不再修改
type QuizAttempt struct {
	BaseModel
	UserID         uint         `gorm:"index;not null" json:"userId"`
	QuizID         uint         `gorm:"index;not null" json:"quizId"`
	Answers        map[uint]int `gorm:"type:json;serializer:json" json:"answers"`
	Score          int          `gorm:"not null" json:"score"` // 0-100
	TotalQuestions int          `gorm:"not null" json:"totalQuestions"`
	TimeTaken      int          `gorm:"default:0" json:"timeTaken"` // 秒
	Passed         bool         `gorm:"default:false" json:"passed"`
	XPEarned       int          `gorm:"default:0" json:"xpEarned"`
	AttemptedAt    time.Time    `json:"attemptedAt"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
