package service

import (
	"codequest_backend/internal/config"
	"codequest_backend/internal/model"
	"codequest_backend/internal/repository"
	"codequest_backend/pkg/logger"
	"os"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.ProgrammingLanguage{},
		&model.Course{},
		&model.Flashcard{},
		&model.FlashcardProgress{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.QuizAttempt{},
		&model.QuizSession{},
		&model.VirtualPet{},
		&model.UserProgress{},
		&model.Achievement{},
		&model.UserAchievement{},
		&model.Checkin{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

type testEnv struct {
	db          *gorm.DB
	users       *repository.UserRepository
	quizzes     *repository.QuizRepository
	sessions    *repository.QuizSessionRepository
	cards       *repository.FlashcardRepository
	progress    *repository.FlashcardProgressRepository
	pets        *repository.PetRepository
	badges      *repository.AchievementRepository
	checkins    *repository.CheckinRepository
	achievement *AchievementService
	gamify      config.GamifyConfig
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupTestDB(t)

	env := &testEnv{
		db:       db,
		users:    repository.NewUserRepository(db),
		quizzes:  repository.NewQuizRepository(db),
		sessions: repository.NewQuizSessionRepository(db),
		cards:    repository.NewFlashcardRepository(db),
		progress: repository.NewFlashcardProgressRepository(db),
		pets:     repository.NewPetRepository(db),
		badges:   repository.NewAchievementRepository(db),
		checkins: repository.NewCheckinRepository(db),
	}
	env.gamify = config.GamifyConfig{}
	env.gamify.ApplyDefaults()
	env.achievement = NewAchievementService(env.badges, env.users, env.quizzes, env.progress, nil)

	return env
}

func (e *testEnv) createUser(t *testing.T, name string) *model.User {
	t.Helper()

	user := &model.User{
		Name:     name,
		Email:    name + "@example.com",
		Password: "hashed",
		Role:     model.Student,
	}
	if err := e.users.Create(user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func (e *testEnv) createFlashcard(t *testing.T) *model.Flashcard {
	t.Helper()

	card := &model.Flashcard{
		LanguageID: 1,
		Question:   "What does print() do?",
		Answer:     "Outputs text to the console",
		IsActive:   true,
	}
	if err := e.cards.Create(card); err != nil {
		t.Fatalf("failed to create flashcard: %v", err)
	}
	return card
}
