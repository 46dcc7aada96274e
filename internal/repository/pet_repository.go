package repository

import (
	"codequest_backend/internal/model"
	"errors"

	"gorm.io/gorm"
)

// ErrPetConflict 乐观锁版本冲突，调用方应重读后重试
var ErrPetConflict = errors.New("pet was modified concurrently")

type PetRepository struct {
	DB *gorm.DB
}

func NewPetRepository(db *gorm.DB) *PetRepository {
	return &PetRepository{DB: db}
}

func (r *PetRepository) FindByUser(userID uint) (*model.VirtualPet, error) {
	var pet model.VirtualPet
	err := r.DB.Where("user_id = ?", userID).First(&pet).Error
	if err != nil {
		return nil, err
	}
	return &pet, nil
}

func (r *PetRepository) Create(pet *model.VirtualPet) error {
	return r.DB.Create(pet).Error
}

// UpdateCAS 带版本号的条件更新，防止快速连点导致的丢失更新
func (r *PetRepository) UpdateCAS(pet *model.VirtualPet) error {
	result := r.DB.Model(&model.VirtualPet{}).
		Where("id = ? AND version = ?", pet.ID, pet.Version).
		Updates(map[string]interface{}{
			"name":            pet.Name,
			"happiness":       pet.Happiness,
			"hunger":          pet.Hunger,
			"energy":          pet.Energy,
			"level":           pet.Level,
			"xp":              pet.XP,
			"evolution_stage": pet.EvolutionStage,
			"last_fed":        pet.LastFed,
			"last_played":     pet.LastPlayed,
			"version":         pet.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPetConflict
	}

	pet.Version++
	return nil
}
