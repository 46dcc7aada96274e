package model

import "time"

// VirtualPet 每个用户唯一的虚拟宠物
// happiness/hunger/energy 始终在 [0,100]，version 用于乐观锁
type VirtualPet struct {
	BaseModel
	UserID         uint      `gorm:"uniqueIndex;not null" json:"userId"`
	Name           string    `gorm:"size:50;default:'Pixel'" json:"name"`
	PetType        string    `gorm:"size:30;default:'dragon'" json:"petType"`
	Level          int       `gorm:"default:1" json:"level"`
	Happiness      int       `gorm:"default:80" json:"happiness"`
	Hunger         int       `gorm:"default:60" json:"hunger"`
	Energy         int       `gorm:"default:70" json:"energy"`
	XP             int       `gorm:"default:0" json:"xp"`
	EvolutionStage string    `gorm:"size:20;default:'baby'" json:"evolutionStage"`
	LastFed        time.Time `json:"lastFed"`
	LastPlayed     time.Time `json:"lastPlayed"`
	Version        int       `gorm:"default:0" json:"-"`
}

func (VirtualPet) TableName() string {
	return "virtual_pets"
}
