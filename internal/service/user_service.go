package service

import (
	"codequest_backend/internal/model"
	"codequest_backend/internal/repository"
	"codequest_backend/internal/util"
	"errors"
	"time"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo    *repository.UserRepository
	CheckinRepo *repository.CheckinRepository
	CheckinXP   int
}

func NewUserService(userRepo *repository.UserRepository, checkinRepo *repository.CheckinRepository, checkinXP int) *UserService {
	return &UserService{
		UserRepo:    userRepo,
		CheckinRepo: checkinRepo,
		CheckinXP:   checkinXP,
	}
}

type ProfileUpdateRequest struct {
	Name       string `json:"name"`
	GradeLevel int    `json:"gradeLevel"`
	Avatar     string `json:"avatar"`
}

func (s *UserService) GetUserByID(id uint) (*model.User, error) {
	return s.UserRepo.FindByID(id)
}

func (s *UserService) UpdateProfile(userID uint, req ProfileUpdateRequest) (*model.User, error) {
	fields := map[string]interface{}{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.GradeLevel > 0 {
		fields["grade_level"] = req.GradeLevel
	}
	if req.Avatar != "" {
		fields["avatar"] = req.Avatar
	}

	if len(fields) > 0 {
		if err := s.UserRepo.UpdateFields(userID, fields); err != nil {
			return nil, err
		}
	}
	return s.UserRepo.FindByID(userID)
}

type CheckinResult struct {
	StreakDays int  `json:"streakDays"`
	XPEarned   int  `json:"xpEarned"`
	AlreadyIn  bool `json:"alreadyCheckedIn"`
}

// Checkin 每日签到：同一天只记一次；与昨日连续则累加连续天数，否则重置为1
func (s *UserService) Checkin(userID uint) (*CheckinResult, error) {
	now := time.Now()

	if _, err := s.CheckinRepo.FindByUserAndDate(userID, now); err == nil {
		return nil, util.ErrAlreadyCheckedIn
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	streak := 1
	latest, err := s.CheckinRepo.FindLatestByUser(userID)
	if err == nil {
		yesterday := now.AddDate(0, 0, -1)
		if sameDay(latest.CheckinAt, yesterday) {
			streak = latest.StreakDays + 1
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 按天截断后入库，(user, checkin_at) 唯一索引兜底并发的重复签到
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	checkin := &model.Checkin{
		UserID:     userID,
		CheckinAt:  day,
		StreakDays: streak,
	}
	if err := s.CheckinRepo.Create(checkin); err != nil {
		if isDuplicateKeyError(err) {
			return nil, util.ErrAlreadyCheckedIn
		}
		return nil, err
	}

	if err := s.UserRepo.UpdateStreak(userID, streak); err != nil {
		return nil, err
	}
	if s.CheckinXP > 0 {
		if err := s.UserRepo.UpdateXP(userID, s.CheckinXP); err != nil {
			return nil, err
		}
	}

	return &CheckinResult{StreakDays: streak, XPEarned: s.CheckinXP}, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (s *UserService) ListUsers(page, limit int, role model.UserRole) ([]model.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.UserRepo.List(page, limit, role)
}

func (s *UserService) DisableUser(id uint, disable bool) error {
	return s.UserRepo.SetDisabled(id, disable)
}
