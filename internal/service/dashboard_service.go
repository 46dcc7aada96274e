package service

import (
	"codequest_backend/internal/gamify"
	"codequest_backend/internal/model"
	"codequest_backend/internal/repository"
)

// DashboardService 聚合首页所需的各项数据，读多写零
type DashboardService struct {
	UserRepo           *repository.UserRepository
	QuizRepo           *repository.QuizRepository
	ProgressRepo       *repository.ProgressRepository
	FlashcardProgress  *repository.FlashcardProgressRepository
	PetService         *PetService
	AchievementService *AchievementService
}

func NewDashboardService(
	userRepo *repository.UserRepository,
	quizRepo *repository.QuizRepository,
	progressRepo *repository.ProgressRepository,
	flashcardProgress *repository.FlashcardProgressRepository,
	petService *PetService,
	achievementService *AchievementService,
) *DashboardService {
	return &DashboardService{
		UserRepo:           userRepo,
		QuizRepo:           quizRepo,
		ProgressRepo:       progressRepo,
		FlashcardProgress:  flashcardProgress,
		PetService:         petService,
		AchievementService: achievementService,
	}
}

type DashboardView struct {
	User           *model.User          `json:"user"`
	Level          int                  `json:"level"`
	Pet            *model.VirtualPet    `json:"pet"`
	RecentAttempts []model.QuizAttempt  `json:"recentAttempts"`
	CourseProgress []model.UserProgress `json:"courseProgress"`
	CardsMastered  int64                `json:"cardsMastered"`
	QuizzesPassed  int64                `json:"quizzesPassed"`
	Achievements   *UserAchievements    `json:"achievements"`
}

func (s *DashboardService) GetDashboard(userID uint) (*DashboardView, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	pet, err := s.PetService.GetOrCreatePet(userID)
	if err != nil {
		return nil, err
	}

	attempts, err := s.QuizRepo.FindAttemptsByUser(userID, 5)
	if err != nil {
		return nil, err
	}

	progress, err := s.ProgressRepo.FindByUser(userID, 0)
	if err != nil {
		return nil, err
	}

	mastered, err := s.FlashcardProgress.CountMastered(userID, gamify.MaxMasteryLevel)
	if err != nil {
		return nil, err
	}

	passed, err := s.QuizRepo.CountPassed(userID)
	if err != nil {
		return nil, err
	}

	achievements, err := s.AchievementService.GetUserAchievements(userID)
	if err != nil {
		return nil, err
	}

	level, _ := gamify.LevelForXP(user.XPPoints)

	return &DashboardView{
		User:           user,
		Level:          level,
		Pet:            pet,
		RecentAttempts: attempts,
		CourseProgress: progress,
		CardsMastered:  mastered,
		QuizzesPassed:  passed,
		Achievements:   achievements,
	}, nil
}
