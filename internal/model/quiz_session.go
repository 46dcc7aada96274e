package model

import "time"

type QuizSessionStatus string

const (
	SessionOpen          QuizSessionStatus = "open"
	SessionSubmitted     QuizSessionStatus = "submitted"
	SessionAutoSubmitted QuizSessionStatus = "auto_submitted"
)

// QuizSession 限时测验的进行中状态；到期未提交则由后台任务自动交卷
type QuizSession struct {
	BaseModel
	UserID   uint              `gorm:"index:idx_session_user_quiz;not null" json:"userId"`
	QuizID   uint              `gorm:"index:idx_session_user_quiz;not null" json:"quizId"`
	Answers  map[uint]int      `gorm:"type:json;serializer:json" json:"answers"`
	Deadline *time.Time        `gorm:"index" json:"deadline,omitempty"` // nil表示不限时
	Status   QuizSessionStatus `gorm:"size:20;default:'open';index" json:"status"`
}

func (QuizSession) TableName() string {
	return "quiz_sessions"
}
