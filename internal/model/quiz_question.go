package model

type QuizQuestion struct {
	BaseModel
	QuizID        uint     `gorm:"index;not null" json:"quizId"`
	Question      string   `gorm:"size:1000;not null" json:"question"`
	Options       []string `gorm:"type:json;serializer:json" json:"options"`
	CorrectOption int      `gorm:"not null" json:"-"` // 正确选项下标，不下发给学生
	Explanation   string   `gorm:"size:1000" json:"explanation,omitempty"`
	Points        int      `gorm:"default:1" json:"points"`
	OrderIndex    int      `gorm:"default:0" json:"orderIndex"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}
