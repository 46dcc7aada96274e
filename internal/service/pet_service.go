package service

import (
	"codequest_backend/internal/config"
	"codequest_backend/internal/gamify"
	"codequest_backend/internal/model"
	"codequest_backend/internal/repository"
	"codequest_backend/internal/util"
	"codequest_backend/pkg/logger"
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CAS冲突时的最大重试次数；超过说明用户在疯狂连点，直接放弃
const petUpdateRetries = 3

type PetService struct {
	PetRepo            *repository.PetRepository
	AchievementService *AchievementService
	Deduper            *Deduper
	Gamify             *config.GamifyConfig
}

func NewPetService(
	petRepo *repository.PetRepository,
	achievementService *AchievementService,
	deduper *Deduper,
	gamifyCfg *config.GamifyConfig,
) *PetService {
	return &PetService{
		PetRepo:            petRepo,
		AchievementService: achievementService,
		Deduper:            deduper,
		Gamify:             gamifyCfg,
	}
}

// GetOrCreatePet 宠物是每用户单例，首次访问时自动领养
func (s *PetService) GetOrCreatePet(userID uint) (*model.VirtualPet, error) {
	pet, err := s.PetRepo.FindByUser(userID)
	if err == nil {
		return pet, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pet = &model.VirtualPet{
		UserID:         userID,
		Level:          1,
		Happiness:      80,
		Hunger:         60,
		Energy:         70,
		EvolutionStage: string(gamify.StageBaby),
	}
	if err := s.PetRepo.Create(pet); err != nil {
		// 并发首次访问：另一个请求已创建
		if isDuplicateKeyError(err) {
			return s.PetRepo.FindByUser(userID)
		}
		return nil, err
	}
	return pet, nil
}

type PetActionResult struct {
	Pet               *model.VirtualPet   `json:"pet"`
	NewlyEarnedBadges []model.Achievement `json:"newlyEarnedBadges,omitempty"`
}

func (s *PetService) Feed(ctx context.Context, userID uint, requestID string) (*PetActionResult, error) {
	return s.applyAction(ctx, userID, requestID, "pet_feed", gamify.FeedPet)
}

func (s *PetService) Play(ctx context.Context, userID uint, requestID string) (*PetActionResult, error) {
	return s.applyAction(ctx, userID, requestID, "pet_play", gamify.PlayWithPet)
}

func (s *PetService) Rest(ctx context.Context, userID uint, requestID string) (*PetActionResult, error) {
	return s.applyAction(ctx, userID, requestID, "pet_rest", gamify.RestPet)
}

// applyAction 读取宠物 → 纯状态机计算 → CAS写回，版本冲突时重读重试
func (s *PetService) applyAction(
	ctx context.Context,
	userID uint,
	requestID, scope string,
	action func(gamify.PetState, gamify.PetTuning, time.Time) (gamify.PetState, error),
) (result *PetActionResult, retErr error) {
	if !s.Deduper.Reserve(ctx, scope, userID, requestID) {
		return nil, util.ErrDuplicateRequest
	}
	// 动作没有落库就失败时释放占用，同一 requestId 的重试不应被拒
	defer func() {
		if retErr != nil {
			s.Deduper.Release(ctx, scope, userID, requestID)
		}
	}()

	tuning := gamify.PetTuning{
		FeedXP:     s.Gamify.PetFeedXP,
		PlayXP:     s.Gamify.PetPlayXP,
		RestXP:     s.Gamify.PetRestXP,
		XPPerLevel: s.Gamify.PetXPPerLevel,
	}

	var pet *model.VirtualPet
	for attempt := 0; attempt < petUpdateRetries; attempt++ {
		var err error
		pet, err = s.GetOrCreatePet(userID)
		if err != nil {
			return nil, err
		}

		state := gamify.PetState{
			Happiness:  pet.Happiness,
			Hunger:     pet.Hunger,
			Energy:     pet.Energy,
			Level:      pet.Level,
			XP:         pet.XP,
			LastFed:    pet.LastFed,
			LastPlayed: pet.LastPlayed,
		}

		next, err := action(state, tuning, time.Now())
		if err != nil {
			// 前置条件不满足：状态不变，原样上抛由controller转成业务响应
			return nil, err
		}

		pet.Happiness = next.Happiness
		pet.Hunger = next.Hunger
		pet.Energy = next.Energy
		pet.Level = next.Level
		pet.XP = next.XP
		pet.EvolutionStage = string(gamify.StageForLevel(next.Level))
		pet.LastFed = next.LastFed
		pet.LastPlayed = next.LastPlayed

		err = s.PetRepo.UpdateCAS(pet)
		if err == nil {
			break
		}
		if !errors.Is(err, repository.ErrPetConflict) {
			return nil, err
		}
		if attempt == petUpdateRetries-1 {
			return nil, err
		}
	}

	badges, err := s.AchievementService.EvaluateForUser(userID)
	if err != nil {
		logger.Log.Error("achievement evaluation failed", zap.Uint("userID", userID), zap.Error(err))
	}

	return &PetActionResult{Pet: pet, NewlyEarnedBadges: badges}, nil
}

func (s *PetService) Rename(userID uint, name string) (*model.VirtualPet, error) {
	pet, err := s.GetOrCreatePet(userID)
	if err != nil {
		return nil, err
	}

	pet.Name = name
	for attempt := 0; attempt < petUpdateRetries; attempt++ {
		err = s.PetRepo.UpdateCAS(pet)
		if err == nil {
			return pet, nil
		}
		if !errors.Is(err, repository.ErrPetConflict) {
			return nil, err
		}
		fresh, ferr := s.PetRepo.FindByUser(userID)
		if ferr != nil {
			return nil, ferr
		}
		fresh.Name = name
		pet = fresh
	}
	return nil, err
}
