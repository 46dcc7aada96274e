package repository

import (
	"codequest_backend/internal/gamify"
	"codequest_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type AchievementRepository struct {
	DB *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: db}
}

// FindActiveCatalog 成就目录按门槛从低到高返回，评估顺序与下发顺序一致
func (r *AchievementRepository) FindActiveCatalog() ([]model.Achievement, error) {
	var achievements []model.Achievement
	err := r.DB.Where("is_active = ?", true).Order("requirement_val asc, id asc").Find(&achievements).Error
	return achievements, err
}

func (r *AchievementRepository) FindByUserID(userID uint) ([]model.UserAchievement, error) {
	var records []model.UserAchievement
	err := r.DB.Preload("Achievement").Where("user_id = ?", userID).
		Order("earned_at DESC").Find(&records).Error
	return records, err
}

func (r *AchievementRepository) Create(achievement *model.Achievement) error {
	return r.DB.Create(achievement).Error
}

func (r *AchievementRepository) Update(achievement *model.Achievement) error {
	return r.DB.Save(achievement).Error
}

// Award 在一个事务里写入获得记录并发放奖励XP
// (user, achievement) 的唯一索引保证同一成就至多授予一次；
// 行写入与XP发放同事务提交，崩溃重试不会重复发奖
func (r *AchievementRepository) Award(userID, achievementID uint, xpReward int) error {
	if _, err := gamify.ApplyXP(0, xpReward); err != nil {
		return err
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		record := &model.UserAchievement{
			UserID:        userID,
			AchievementID: achievementID,
			EarnedAt:      time.Now(),
		}
		if err := tx.Create(record).Error; err != nil {
			return err
		}

		if xpReward > 0 {
			return tx.Model(&model.User{}).
				Where("id = ?", userID).
				Update("xp_points", gorm.Expr("xp_points + ?", xpReward)).
				Error
		}
		return nil
	})
}
