package model

type Flashcard struct {
	BaseModel
	LanguageID  uint       `gorm:"index;not null" json:"languageId"`
	CourseID    *uint      `gorm:"index" json:"courseId,omitempty"`
	Question    string     `gorm:"size:1000;not null" json:"question"`
	Answer      string     `gorm:"size:1000;not null" json:"answer"`
	CodeSnippet string     `gorm:"type:text" json:"codeSnippet,omitempty"`
	Explanation string     `gorm:"size:1000" json:"explanation,omitempty"`
	Difficulty  Difficulty `gorm:"size:20;default:'beginner'" json:"difficulty"`
	IsActive    bool       `gorm:"default:true" json:"isActive"`
	CreatedBy   uint       `gorm:"index" json:"createdBy,omitempty"`
}

func (Flashcard) TableName() string {
	return "flashcards"
}
