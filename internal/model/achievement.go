package model

import "time"

// Achievement 成就目录条目，运行期只读
type Achievement struct {
	BaseModel
	Name            string `gorm:"size:100;not null" json:"name"`
	Description     string `gorm:"size:500" json:"description"`
	IconURL         string `gorm:"size:255" json:"iconUrl,omitempty"`
	RequirementType string `gorm:"size:30;not null;index" json:"requirementType"` // xp / streak / quizzes_passed / cards_mastered
	RequirementVal  int    `gorm:"not null" json:"requirementValue"`
	XPReward        int    `gorm:"default:0" json:"xpReward"`
	BadgeColor      string `gorm:"size:20" json:"badgeColor,omitempty"`
	IsActive        bool   `gorm:"default:true" json:"isActive"`
}

func (Achievement) TableName() string {
	return "achievements"
}

// UserAchievement 用户已获得的成就，(user, achievement) 全局唯一
type UserAchievement struct {
	BaseModel
	UserID        uint      `gorm:"uniqueIndex:idx_user_achievement;not null" json:"userId"`
	AchievementID uint      `gorm:"uniqueIndex:idx_user_achievement;not null" json:"achievementId"`
	EarnedAt      time.Time `json:"earnedAt"`

	Achievement *Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}
