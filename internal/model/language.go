package model

type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// ProgrammingLanguage 课程目录中的编程语言条目
type ProgrammingLanguage struct {
	BaseModel
	Name        string     `gorm:"size:50;unique;not null" json:"name"`
	Description string     `gorm:"size:500" json:"description"`
	IconURL     string     `gorm:"size:255" json:"iconUrl,omitempty"`
	Color       string     `gorm:"size:20" json:"color"`
	Difficulty  Difficulty `gorm:"size:20;default:'beginner'" json:"difficulty"`
	IsActive    bool       `gorm:"default:true" json:"isActive"`
}

func (ProgrammingLanguage) TableName() string {
	return "programming_languages"
}
