package service

import (
	"codequest_backend/internal/model"
	"codequest_backend/internal/repository"
	"codequest_backend/internal/util"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// 课程目录基本只读，用Redis做10分钟缓存，教师端改动时主动失效
const catalogCacheTTL = 10 * time.Minute

type ContentService struct {
	LanguageRepo *repository.LanguageRepository
	CourseRepo   *repository.CourseRepository
	Redis        *redis.Client
}

func NewContentService(languageRepo *repository.LanguageRepository, courseRepo *repository.CourseRepository, rdb *redis.Client) *ContentService {
	return &ContentService{
		LanguageRepo: languageRepo,
		CourseRepo:   courseRepo,
		Redis:        rdb,
	}
}

func (s *ContentService) GetLanguages(ctx context.Context) ([]model.ProgrammingLanguage, error) {
	const cacheKey = "catalog:languages"

	if s.Redis != nil {
		if val, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var cached []model.ProgrammingLanguage
			if json.Unmarshal([]byte(val), &cached) == nil {
				return cached, nil
			}
		}
	}

	languages, err := s.LanguageRepo.FindActive()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(languages); err == nil {
			s.Redis.Set(ctx, cacheKey, data, catalogCacheTTL)
		}
	}

	return languages, nil
}

func (s *ContentService) GetCourses(ctx context.Context, languageID uint) ([]model.Course, error) {
	cacheKey := fmt.Sprintf("catalog:courses:%d", languageID)

	if s.Redis != nil {
		if val, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var cached []model.Course
			if json.Unmarshal([]byte(val), &cached) == nil {
				return cached, nil
			}
		}
	}

	courses, err := s.CourseRepo.FindPublished(languageID)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(courses); err == nil {
			s.Redis.Set(ctx, cacheKey, data, catalogCacheTTL)
		}
	}

	return courses, nil
}

func (s *ContentService) GetCourse(id uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

type CourseRequest struct {
	LanguageID  uint             `json:"languageId" binding:"required"`
	Title       string           `json:"title" binding:"required"`
	Description string           `json:"description"`
	Difficulty  model.Difficulty `json:"difficulty"`
	OrderIndex  int              `json:"orderIndex"`
	Content     string           `json:"content"`
	XPReward    int              `json:"xpReward"`
	Duration    int              `json:"estimatedDuration"`
	IsPublished bool             `json:"isPublished"`
}

func (s *ContentService) CreateCourse(creatorID uint, req CourseRequest) (*model.Course, error) {
	course := &model.Course{
		LanguageID:  req.LanguageID,
		Title:       req.Title,
		Description: req.Description,
		Difficulty:  req.Difficulty,
		OrderIndex:  req.OrderIndex,
		Content:     req.Content,
		XPReward:    req.XPReward,
		Duration:    req.Duration,
		IsPublished: req.IsPublished,
		CreatedBy:   creatorID,
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}

	s.invalidateCourseCache(course.LanguageID)
	return course, nil
}

func (s *ContentService) UpdateCourse(id uint, req CourseRequest) (*model.Course, error) {
	course, err := s.GetCourse(id)
	if err != nil {
		return nil, err
	}

	course.LanguageID = req.LanguageID
	course.Title = req.Title
	course.Description = req.Description
	course.Difficulty = req.Difficulty
	course.OrderIndex = req.OrderIndex
	course.Content = req.Content
	course.XPReward = req.XPReward
	course.Duration = req.Duration
	course.IsPublished = req.IsPublished

	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}

	s.invalidateCourseCache(course.LanguageID)
	return course, nil
}

func (s *ContentService) DeleteCourse(id uint) error {
	course, err := s.GetCourse(id)
	if err != nil {
		return err
	}
	if err := s.CourseRepo.Delete(id); err != nil {
		return err
	}

	s.invalidateCourseCache(course.LanguageID)
	return nil
}

func (s *ContentService) invalidateCourseCache(languageID uint) {
	if s.Redis == nil {
		return
	}
	ctx := context.Background()
	s.Redis.Del(ctx, fmt.Sprintf("catalog:courses:%d", languageID))
	s.Redis.Del(ctx, "catalog:courses:0")
}
