package model

import (
	"time"
)

// Checkin 记录用户的学习签到信息
// swagger:model Checkin
type Checkin struct {
	BaseModel
	UserID     uint      `gorm:"uniqueIndex:idx_user_checkin_date;not null" json:"userId"`
	CheckinAt  time.Time `gorm:"uniqueIndex:idx_user_checkin_date;not null" json:"checkinAt"`
	StreakDays int       `gorm:"default:1" json:"streakDays"` // 连续签到天数
}

func (Checkin) TableName() string {
	return "checkins"
}
