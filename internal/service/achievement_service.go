package service

import (
	"codequest_backend/internal/gamify"
	"codequest_backend/internal/model"
	"codequest_backend/internal/repository"
	"codequest_backend/pkg/logger"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type AchievementService struct {
	AchievementRepo  *repository.AchievementRepository
	UserRepo         *repository.UserRepository
	QuizRepo         *repository.QuizRepository
	CardProgressRepo *repository.FlashcardProgressRepository
	Redis            *redis.Client
}

func NewAchievementService(
	achievementRepo *repository.AchievementRepository,
	userRepo *repository.UserRepository,
	quizRepo *repository.QuizRepository,
	cardProgressRepo *repository.FlashcardProgressRepository,
	rdb *redis.Client,
) *AchievementService {
	return &AchievementService{
		AchievementRepo:  achievementRepo,
		UserRepo:         userRepo,
		QuizRepo:         quizRepo,
		CardProgressRepo: cardProgressRepo,
		Redis:            rdb,
	}
}

// EvaluateForUser 扫描成就目录并授予新达成的成就
// 评估本身是纯函数且幂等；授予依赖 (user, achievement) 唯一索引，
// 重复调用（包括崩溃后的重试）不会二次发奖
func (s *AchievementService) EvaluateForUser(userID uint) ([]model.Achievement, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	earned, err := s.AchievementRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	alreadyEarned := make(map[uint]bool, len(earned))
	for _, ua := range earned {
		alreadyEarned[ua.AchievementID] = true
	}

	catalog, err := s.AchievementRepo.FindActiveCatalog()
	if err != nil {
		return nil, err
	}

	quizzesPassed, err := s.QuizRepo.CountPassed(userID)
	if err != nil {
		return nil, err
	}
	cardsMastered, err := s.CardProgressRepo.CountMastered(userID, gamify.MaxMasteryLevel)
	if err != nil {
		return nil, err
	}

	snapshot := gamify.ProfileSnapshot{
		XPPoints:      user.XPPoints,
		StreakDays:    user.StreakDays,
		QuizzesPassed: int(quizzesPassed),
		CardsMastered: int(cardsMastered),
	}

	requirements := make([]gamify.Requirement, len(catalog))
	byID := make(map[uint]model.Achievement, len(catalog))
	for i, a := range catalog {
		requirements[i] = gamify.Requirement{
			AchievementID: a.ID,
			Type:          a.RequirementType,
			Value:         a.RequirementVal,
			XPReward:      a.XPReward,
			Active:        a.IsActive,
		}
		byID[a.ID] = a
	}

	var awarded []model.Achievement
	for _, e := range gamify.EvaluateAchievements(snapshot, alreadyEarned, requirements) {
		if err := s.AchievementRepo.Award(userID, e.AchievementID, e.XPReward); err != nil {
			// 唯一索引冲突说明并发请求已授予，按已获得处理
			if isDuplicateKeyError(err) {
				continue
			}
			return awarded, err
		}
		logger.Log.Info("achievement awarded",
			zap.Uint("userID", userID),
			zap.Uint("achievementID", e.AchievementID),
			zap.Int("xpReward", e.XPReward))
		awarded = append(awarded, byID[e.AchievementID])
	}

	return awarded, nil
}

func isDuplicateKeyError(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "Duplicate entry") ||
		strings.Contains(err.Error(), "UNIQUE constraint failed"))
}

type UserAchievements struct {
	TotalXP      int                     `json:"totalXp"`
	CurrentLevel int                     `json:"currentLevel"`
	NextLevelXP  int                     `json:"nextLevelXp"`
	StreakDays   int                     `json:"streakDays"`
	Badges       []model.UserAchievement `json:"badges"`
	Leaderboard  []LeaderboardEntry      `json:"leaderboard"`
}

type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	User   string `json:"user"`
	XP     int    `json:"xp"`
	Avatar string `json:"avatar,omitempty"`
}

func (s *AchievementService) GetUserAchievements(userID uint) (*UserAchievements, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	badges, err := s.AchievementRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	leaderboard, err := s.GetLeaderboard(context.Background(), 10)
	if err != nil {
		return nil, err
	}

	level, nextLevelXP := gamify.LevelForXP(user.XPPoints)

	return &UserAchievements{
		TotalXP:      user.XPPoints,
		CurrentLevel: level,
		NextLevelXP:  nextLevelXP,
		StreakDays:   user.StreakDays,
		Badges:       badges,
		Leaderboard:  leaderboard,
	}, nil
}

// GetLeaderboard 排行榜带30秒Redis缓存，避免每次请求全表排序
func (s *AchievementService) GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	cacheKey := fmt.Sprintf("leaderboard:top%d", limit)

	if s.Redis != nil {
		if val, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var cached []LeaderboardEntry
			if json.Unmarshal([]byte(val), &cached) == nil {
				return cached, nil
			}
		}
	}

	users, err := s.UserRepo.FindTopByXP(limit)
	if err != nil {
		return nil, err
	}

	leaderboard := make([]LeaderboardEntry, len(users))
	for i, user := range users {
		leaderboard[i] = LeaderboardEntry{
			Rank:   i + 1,
			User:   user.Name,
			XP:     user.XPPoints,
			Avatar: user.Avatar,
		}
	}

	if s.Redis != nil {
		if data, err := json.Marshal(leaderboard); err == nil {
			s.Redis.Set(ctx, cacheKey, data, 30*time.Second)
		}
	}

	return leaderboard, nil
}

func (s *AchievementService) GetCatalog() ([]model.Achievement, error) {
	return s.AchievementRepo.FindActiveCatalog()
}

type AchievementRequest struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	IconURL         string `json:"iconUrl"`
	RequirementType string `json:"requirementType" binding:"required"`
	RequirementVal  int    `json:"requirementValue" binding:"required"`
	XPReward        int    `json:"xpReward"`
	BadgeColor      string `json:"badgeColor"`
}

func (s *AchievementService) CreateAchievement(req AchievementRequest) (*model.Achievement, error) {
	achievement := &model.Achievement{
		Name:            req.Name,
		Description:     req.Description,
		IconURL:         req.IconURL,
		RequirementType: req.RequirementType,
		RequirementVal:  req.RequirementVal,
		XPReward:        req.XPReward,
		BadgeColor:      req.BadgeColor,
		IsActive:        true,
	}
	if err := s.AchievementRepo.Create(achievement); err != nil {
		return nil, err
	}
	return achievement, nil
}

func (s *AchievementService) SetAchievementActive(id uint, active bool) error {
	achievement := &model.Achievement{}
	if err := s.AchievementRepo.DB.First(achievement, id).Error; err != nil {
		return err
	}
	achievement.IsActive = active
	return s.AchievementRepo.Update(achievement)
}
