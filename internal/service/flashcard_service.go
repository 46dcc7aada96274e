package service

import (
	"codequest_backend/internal/gamify"
	"codequest_backend/internal/model"
	"codequest_backend/internal/repository"
	"codequest_backend/pkg/logger"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type FlashcardService struct {
	FlashcardRepo      *repository.FlashcardRepository
	ProgressRepo       *repository.FlashcardProgressRepository
	AchievementService *AchievementService
}

func NewFlashcardService(
	flashcardRepo *repository.FlashcardRepository,
	progressRepo *repository.FlashcardProgressRepository,
	achievementService *AchievementService,
) *FlashcardService {
	return &FlashcardService{
		FlashcardRepo:      flashcardRepo,
		ProgressRepo:       progressRepo,
		AchievementService: achievementService,
	}
}

func (s *FlashcardService) GetFlashcards(languageID, courseID uint) ([]model.Flashcard, error) {
	return s.FlashcardRepo.FindActive(languageID, courseID)
}

func (s *FlashcardService) GetUserProgress(userID uint) ([]model.FlashcardProgress, error) {
	return s.ProgressRepo.FindByUser(userID)
}

type ReviewResult struct {
	Progress          model.FlashcardProgress `json:"progress"`
	NewlyEarnedBadges []model.Achievement     `json:"newlyEarnedBadges,omitempty"`
}

// ReviewFlashcard 记录一次闪卡复习：读当前进度 → 纯函数计算 → upsert → 评估成就
// 无历史记录按首次复习的全零状态处理
func (s *FlashcardService) ReviewFlashcard(userID, flashcardID uint, wasCorrect bool) (*ReviewResult, error) {
	if _, err := s.FlashcardRepo.FindByID(flashcardID); err != nil {
		return nil, err
	}

	var current *gamify.MasteryState
	existing, err := s.ProgressRepo.FindByUserAndCard(userID, flashcardID)
	if err == nil {
		current = &gamify.MasteryState{
			CorrectCount:   existing.CorrectCount,
			IncorrectCount: existing.IncorrectCount,
			MasteryLevel:   existing.MasteryLevel,
			LastReviewed:   existing.LastReviewed,
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	next := gamify.UpdateMastery(current, wasCorrect, time.Now())

	progress := &model.FlashcardProgress{
		UserID:         userID,
		FlashcardID:    flashcardID,
		CorrectCount:   next.CorrectCount,
		IncorrectCount: next.IncorrectCount,
		MasteryLevel:   next.MasteryLevel,
		LastReviewed:   next.LastReviewed,
	}
	if err := s.ProgressRepo.Upsert(progress); err != nil {
		return nil, err
	}

	badges, err := s.AchievementService.EvaluateForUser(userID)
	if err != nil {
		// 成就评估失败不影响本次复习结果，记录后继续
		logger.Log.Error("achievement evaluation failed", zap.Uint("userID", userID), zap.Error(err))
	}

	return &ReviewResult{Progress: *progress, NewlyEarnedBadges: badges}, nil
}

type FlashcardRequest struct {
	LanguageID  uint             `json:"languageId" binding:"required"`
	CourseID    *uint            `json:"courseId"`
	Question    string           `json:"question" binding:"required"`
	Answer      string           `json:"answer" binding:"required"`
	CodeSnippet string           `json:"codeSnippet"`
	Explanation string           `json:"explanation"`
	Difficulty  model.Difficulty `json:"difficulty"`
}

func (s *FlashcardService) CreateFlashcard(creatorID uint, req FlashcardRequest) (*model.Flashcard, error) {
	card := &model.Flashcard{
		LanguageID:  req.LanguageID,
		CourseID:    req.CourseID,
		Question:    req.Question,
		Answer:      req.Answer,
		CodeSnippet: req.CodeSnippet,
		Explanation: req.Explanation,
		Difficulty:  req.Difficulty,
		IsActive:    true,
		CreatedBy:   creatorID,
	}
	if err := s.FlashcardRepo.Create(card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *FlashcardService) DeleteFlashcard(id uint) error {
	return s.FlashcardRepo.Delete(id)
}
