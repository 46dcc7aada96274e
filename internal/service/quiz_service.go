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

type QuizService struct {
	QuizRepo           *repository.QuizRepository
	SessionRepo        *repository.QuizSessionRepository
	UserRepo           *repository.UserRepository
	AchievementService *AchievementService
	Deduper            *Deduper
	Gamify             *config.GamifyConfig
}

func NewQuizService(
	quizRepo *repository.QuizRepository,
	sessionRepo *repository.QuizSessionRepository,
	userRepo *repository.UserRepository,
	achievementService *AchievementService,
	deduper *Deduper,
	gamifyCfg *config.GamifyConfig,
) *QuizService {
	return &QuizService{
		QuizRepo:           quizRepo,
		SessionRepo:        sessionRepo,
		UserRepo:           userRepo,
		AchievementService: achievementService,
		Deduper:            deduper,
		Gamify:             gamifyCfg,
	}
}

func (s *QuizService) GetQuizzes(languageID uint) ([]model.Quiz, error) {
	return s.QuizRepo.FindPublished(languageID)
}

// GetQuizForStudent 下发题目但不含正确答案（CorrectOption 的 json tag 为 "-"）
func (s *QuizService) GetQuizForStudent(quizID uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByIDWithQuestions(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if !quiz.IsPublished {
		return nil, util.ErrQuizNotPublished
	}
	return quiz, nil
}

// StartSession 开始一次限时测验；不限时的测验不需要会话，直接提交即可
func (s *QuizService) StartSession(userID, quizID uint) (*model.QuizSession, error) {
	quiz, err := s.GetQuizForStudent(quizID)
	if err != nil {
		return nil, err
	}

	// 已有进行中的会话则复用，防止重复开卷重置倒计时
	if existing, err := s.SessionRepo.FindOpen(userID, quizID); err == nil {
		return existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	session := &model.QuizSession{
		UserID:  userID,
		QuizID:  quizID,
		Answers: map[uint]int{},
		Status:  model.SessionOpen,
	}
	if quiz.TimeLimit > 0 {
		deadline := time.Now().Add(time.Duration(quiz.TimeLimit) * time.Second)
		session.Deadline = &deadline
	}

	if err := s.SessionRepo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

// SaveAnswers 暂存作答进度，自动交卷时以此为准
func (s *QuizService) SaveAnswers(userID, quizID uint, answers map[uint]int) error {
	session, err := s.SessionRepo.FindOpen(userID, quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrSessionNotFound
		}
		return err
	}

	session.Answers = answers
	return s.SessionRepo.SaveAnswers(session)
}

type SubmitRequest struct {
	Answers   map[uint]int `json:"answers"`
	TimeTaken int          `json:"timeTaken"`
	RequestID string       `json:"requestId"`
}

type SubmitResult struct {
	Attempt           *model.QuizAttempt  `json:"attempt"`
	Correctness       map[uint]bool       `json:"correctness"`
	NewlyEarnedBadges []model.Achievement `json:"newlyEarnedBadges,omitempty"`
}

// Submit 学生主动交卷：评分 → 写入不可变记录 → 发放XP → 评估成就
// 进行中的会话被同时关闭（取消自动交卷路径）
func (s *QuizService) Submit(ctx context.Context, userID, quizID uint, req SubmitRequest) (result *SubmitResult, retErr error) {
	if !s.Deduper.Reserve(ctx, "quiz_submit", userID, req.RequestID) {
		return nil, util.ErrDuplicateRequest
	}
	// 交卷没有成功记分时释放占用，同一 requestId 的重试不应被拒
	defer func() {
		if retErr != nil {
			s.Deduper.Release(ctx, "quiz_submit", userID, req.RequestID)
		}
	}()

	quiz, err := s.QuizRepo.FindByIDWithQuestions(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if !quiz.IsPublished {
		return nil, util.ErrQuizNotPublished
	}

	// 限时会话：主动交卷关闭会话；会话已被自动交卷关闭则拒绝重复提交
	if session, err := s.SessionRepo.FindOpen(userID, quizID); err == nil {
		closed, err := s.SessionRepo.Close(session.ID, model.SessionSubmitted)
		if err != nil {
			return nil, err
		}
		if !closed {
			return nil, util.ErrSessionClosed
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	} else if quiz.TimeLimit > 0 {
		return nil, util.ErrSessionClosed
	}

	return s.finishAttempt(quiz, userID, req.Answers, req.TimeTaken)
}

func (s *QuizService) finishAttempt(quiz *model.Quiz, userID uint, answers map[uint]int, timeTaken int) (*SubmitResult, error) {
	questions := make([]gamify.ScoredQuestion, len(quiz.Questions))
	for i, q := range quiz.Questions {
		questions[i] = gamify.ScoredQuestion{ID: q.ID, CorrectOption: q.CorrectOption, Points: q.Points}
	}

	passingPercent := quiz.PassingScore
	if passingPercent <= 0 {
		passingPercent = s.Gamify.PassingPercent
	}
	xpPerCorrect := quiz.XPPerCorrect
	if xpPerCorrect <= 0 {
		xpPerCorrect = s.Gamify.XPPerCorrect
	}

	graded := gamify.Grade(questions, answers, passingPercent, xpPerCorrect, timeTaken)

	attempt := &model.QuizAttempt{
		UserID:         userID,
		QuizID:         quiz.ID,
		Answers:        answers,
		Score:          graded.Score,
		TotalQuestions: graded.TotalQuestions,
		TimeTaken:      graded.TimeTaken,
		Passed:         graded.Passed,
		XPEarned:       graded.XPEarned,
		AttemptedAt:    time.Now(),
	}
	if err := s.QuizRepo.SaveAttempt(attempt); err != nil {
		return nil, err
	}

	if graded.XPEarned > 0 {
		if err := s.UserRepo.UpdateXP(userID, graded.XPEarned); err != nil {
			return nil, err
		}
	}

	badges, err := s.AchievementService.EvaluateForUser(userID)
	if err != nil {
		logger.Log.Error("achievement evaluation failed", zap.Uint("userID", userID), zap.Error(err))
	}

	return &SubmitResult{Attempt: attempt, Correctness: graded.Correctness, NewlyEarnedBadges: badges}, nil
}

func (s *QuizService) GetAttempts(userID uint, limit int) ([]model.QuizAttempt, error) {
	return s.QuizRepo.FindAttemptsByUser(userID, limit)
}

// AutoSubmitExpired 后台任务：将超时未交卷的会话按已暂存答案自动交卷
func (s *QuizService) AutoSubmitExpired() error {
	sessions, err := s.SessionRepo.FindExpired(time.Now(), 100)
	if err != nil {
		return err
	}

	for _, session := range sessions {
		closed, err := s.SessionRepo.Close(session.ID, model.SessionAutoSubmitted)
		if err != nil {
			// 单个会话关单失败不该拖垮整批扫描
			logger.Log.Error("auto submit: close session failed", zap.Uint("sessionID", session.ID), zap.Error(err))
			continue
		}
		if !closed {
			// 学生抢先主动交卷了
			continue
		}

		quiz, err := s.QuizRepo.FindByIDWithQuestions(session.QuizID)
		if err != nil {
			logger.Log.Error("auto submit: quiz missing", zap.Uint("quizID", session.QuizID), zap.Error(err))
			continue
		}

		if _, err := s.finishAttempt(quiz, session.UserID, session.Answers, quiz.TimeLimit); err != nil {
			logger.Log.Error("auto submit failed",
				zap.Uint("sessionID", session.ID),
				zap.Uint("userID", session.UserID),
				zap.Error(err))
			continue
		}

		logger.Log.Info("quiz session auto submitted",
			zap.Uint("sessionID", session.ID),
			zap.Uint("userID", session.UserID),
			zap.Uint("quizID", session.QuizID))
	}

	return nil
}

type QuizRequest struct {
	LanguageID   uint                  `json:"languageId" binding:"required"`
	CourseID     *uint                 `json:"courseId"`
	Title        string                `json:"title" binding:"required"`
	Description  string                `json:"description"`
	Difficulty   model.Difficulty      `json:"difficulty"`
	TimeLimit    int                   `json:"timeLimit"`
	PassingScore int                   `json:"passingScore"`
	XPPerCorrect int                   `json:"xpPerCorrect"`
	IsPublished  bool                  `json:"isPublished"`
	Questions    []QuizQuestionRequest `json:"questions"`
}

type QuizQuestionRequest struct {
	Question      string   `json:"question" binding:"required"`
	Options       []string `json:"options" binding:"required"`
	CorrectOption int      `json:"correctOption"`
	Explanation   string   `json:"explanation"`
	Points        int      `json:"points"`
	OrderIndex    int      `json:"orderIndex"`
}

func (s *QuizService) CreateQuiz(creatorID uint, req QuizRequest) (*model.Quiz, error) {
	quiz := &model.Quiz{
		LanguageID:   req.LanguageID,
		CourseID:     req.CourseID,
		Title:        req.Title,
		Description:  req.Description,
		Difficulty:   req.Difficulty,
		TimeLimit:    req.TimeLimit,
		PassingScore: req.PassingScore,
		XPPerCorrect: req.XPPerCorrect,
		IsPublished:  req.IsPublished,
		CreatedBy:    creatorID,
	}
	for _, q := range req.Questions {
		points := q.Points
		if points <= 0 {
			points = 1
		}
		quiz.Questions = append(quiz.Questions, model.QuizQuestion{
			Question:      q.Question,
			Options:       q.Options,
			CorrectOption: q.CorrectOption,
			Explanation:   q.Explanation,
			Points:        points,
			OrderIndex:    q.OrderIndex,
		})
	}

	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) DeleteQuiz(id uint) error {
	return s.QuizRepo.Delete(id)
}
