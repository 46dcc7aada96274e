package model

type Quiz struct {
	BaseModel
	LanguageID   uint       `gorm:"index;not null" json:"languageId"`
	CourseID     *uint      `gorm:"index" json:"courseId,omitempty"`
	Title        string     `gorm:"size:200;not null" json:"title"`
	Description  string     `gorm:"size:1000" json:"description,omitempty"`
	Difficulty   Difficulty `gorm:"size:20;default:'beginner'" json:"difficulty"`
	TimeLimit    int        `gorm:"default:0" json:"timeLimit"` // 秒，0表示不限时
	PassingScore int        `gorm:"default:70" json:"passingScore"`
	XPPerCorrect int        `gorm:"default:0" json:"xpPerCorrect"` // 0表示使用全局配置
	IsPublished  bool       `gorm:"default:false" json:"isPublished"`
	CreatedBy    uint       `gorm:"index" json:"createdBy,omitempty"`

	Questions []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}
