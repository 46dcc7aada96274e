package model

import "time"

type UserProgress struct {
	BaseModel
	UserID       uint       `gorm:"uniqueIndex:idx_user_course;not null" json:"userId"`
	CourseID     uint       `gorm:"uniqueIndex:idx_user_course;not null" json:"courseId"`
	Completion   int        `gorm:"default:0" json:"completionPercentage"` // 0-100
	TimeSpent    int        `gorm:"default:0" json:"timeSpent"`            // 秒
	LastAccessed time.Time  `json:"lastAccessed"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}
