package service

import (
	"codequest_backend/internal/model"
	"codequest_backend/internal/repository"
	"codequest_backend/internal/util"
	"codequest_backend/pkg/logger"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProgressService struct {
	ProgressRepo       *repository.ProgressRepository
	CourseRepo         *repository.CourseRepository
	UserRepo           *repository.UserRepository
	AchievementService *AchievementService
}

func NewProgressService(
	progressRepo *repository.ProgressRepository,
	courseRepo *repository.CourseRepository,
	userRepo *repository.UserRepository,
	achievementService *AchievementService,
) *ProgressService {
	return &ProgressService{
		ProgressRepo:       progressRepo,
		CourseRepo:         courseRepo,
		UserRepo:           userRepo,
		AchievementService: achievementService,
	}
}

func (s *ProgressService) GetProgress(userID, courseID uint) ([]model.UserProgress, error) {
	return s.ProgressRepo.FindByUser(userID, courseID)
}

type ProgressUpdateRequest struct {
	Completion int `json:"completionPercentage" binding:"min=0,max=100"`
	TimeSpent  int `json:"timeSpent" binding:"min=0"`
}

type ProgressUpdateResult struct {
	Progress          *model.UserProgress `json:"progress"`
	XPAwarded         int                 `json:"xpAwarded"`
	NewlyEarnedBadges []model.Achievement `json:"newlyEarnedBadges,omitempty"`
}

// UpdateProgress 记录课程学习进度；首次达到100%时一次性发放课程XP奖励
func (s *ProgressService) UpdateProgress(userID, courseID uint, req ProgressUpdateRequest) (*ProgressUpdateResult, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	now := time.Now()
	progress := &model.UserProgress{
		UserID:       userID,
		CourseID:     courseID,
		Completion:   req.Completion,
		TimeSpent:    req.TimeSpent,
		LastAccessed: now,
	}

	// 已完成过的课程不会因为重新学习而再次奖励
	firstCompletion := false
	existing, err := s.findExisting(userID, courseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		progress.TimeSpent = existing.TimeSpent + req.TimeSpent
		progress.CompletedAt = existing.CompletedAt
		// 进度只进不退
		if existing.Completion > progress.Completion {
			progress.Completion = existing.Completion
		}
	}
	if progress.Completion >= 100 && progress.CompletedAt == nil {
		progress.CompletedAt = &now
		firstCompletion = true
	}

	if err := s.ProgressRepo.Upsert(progress); err != nil {
		return nil, err
	}

	result := &ProgressUpdateResult{Progress: progress}
	if firstCompletion && course.XPReward > 0 {
		if err := s.UserRepo.UpdateXP(userID, course.XPReward); err != nil {
			return nil, err
		}
		result.XPAwarded = course.XPReward

		badges, err := s.AchievementService.EvaluateForUser(userID)
		if err != nil {
			logger.Log.Error("achievement evaluation failed", zap.Uint("userID", userID), zap.Error(err))
		}
		result.NewlyEarnedBadges = badges
	}

	return result, nil
}

func (s *ProgressService) findExisting(userID, courseID uint) (*model.UserProgress, error) {
	records, err := s.ProgressRepo.FindByUser(userID, courseID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}
