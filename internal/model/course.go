package model

type Course struct {
	BaseModel
	LanguageID  uint       `gorm:"index;not null" json:"languageId"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"size:1000" json:"description"`
	Difficulty  Difficulty `gorm:"size:20;default:'beginner'" json:"difficulty"`
	OrderIndex  int        `gorm:"default:0" json:"orderIndex"`
	Content     string     `gorm:"type:text" json:"content,omitempty"`
	XPReward    int        `gorm:"default:0" json:"xpReward"`
	Duration    int        `gorm:"default:0" json:"estimatedDuration"` // 预计时长（分钟）
	IsPublished bool       `gorm:"default:false" json:"isPublished"`
	CreatedBy   uint       `gorm:"index" json:"createdBy,omitempty"`

	Language *ProgrammingLanguage `gorm:"foreignKey:LanguageID" json:"language,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}
