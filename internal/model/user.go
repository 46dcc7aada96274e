package model

import (
	"time"
)

type UserRole string

const (
	Student  UserRole = "student"
	Educator UserRole = "educator"
	Admin    UserRole = "admin"
)

type SubscriptionStatus string

const (
	SubFreeTrial SubscriptionStatus = "free_trial"
	SubActive    SubscriptionStatus = "active"
	SubExpired   SubscriptionStatus = "expired"
	SubCancelled SubscriptionStatus = "cancelled"
)

// swagger:model User
type User struct {
	BaseModel
	Name               string             `gorm:"size:100;not null" json:"name"`
	Email              string             `gorm:"size:100;unique;not null" json:"email"`
	Password           string             `gorm:"size:100;not null" json:"-"`
	Role               UserRole           `gorm:"size:20;default:'student'" json:"role"`
	GradeLevel         int                `gorm:"default:0" json:"gradeLevel"`
	XPPoints           int                `gorm:"default:0" json:"xpPoints"` // 累计经验值，只增不减
	StreakDays         int                `gorm:"default:0" json:"streakDays"`
	Avatar             string             `gorm:"size:255" json:"avatar"`
	SubscriptionStatus SubscriptionStatus `gorm:"size:20;default:'free_trial'" json:"subscriptionStatus"`
	SubscriptionPlan   string             `gorm:"size:50" json:"subscriptionPlan,omitempty"`
	TrialEndsAt        *time.Time         `json:"trialEndsAt,omitempty"`
	Disabled           bool               `gorm:"default:false" json:"disabled"`
	LastActivity       time.Time          `json:"lastActivity"`
	LastSeen           time.Time          `json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
