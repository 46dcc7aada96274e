package repository

import (
	"codequest_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) FindPublished(languageID uint) ([]model.Quiz, error) {
	query := r.DB.Where("is_published = ?", true)
	if languageID != 0 {
		query = query.Where("language_id = ?", languageID)
	}

	var quizzes []model.Quiz
	err := query.Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.First(&quiz, id).Error
	return &quiz, err
}

func (r *QuizRepository) FindByIDWithQuestions(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index asc")
	}).First(&quiz, id).Error
	return &quiz, err
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) Update(quiz *model.Quiz) error {
	return r.DB.Save(quiz).Error
}

func (r *QuizRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Quiz{}, id).Error
}

// SaveAttempt 保存一次不可变的测验提交记录
func (r *QuizRepository) SaveAttempt(attempt *model.QuizAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *QuizRepository) FindAttemptsByUser(userID uint, limit int) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	query := r.DB.Where("user_id = ?", userID).Order("attempted_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&attempts).Error
	return attempts, err
}

// CountPassed 统计用户通过的测验数（按quiz去重），供成就评估使用
func (r *QuizRepository) CountPassed(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizAttempt{}).
		Where("user_id = ? AND passed = ?", userID, true).
		Distinct("quiz_id").
		Count(&count).Error
	return count, err
}

type QuizSessionRepository struct {
	DB *gorm.DB
}

func NewQuizSessionRepository(db *gorm.DB) *QuizSessionRepository {
	return &QuizSessionRepository{DB: db}
}

func (r *QuizSessionRepository) Create(session *model.QuizSession) error {
	return r.DB.Create(session).Error
}

func (r *QuizSessionRepository) FindOpen(userID, quizID uint) (*model.QuizSession, error) {
	var session model.QuizSession
	err := r.DB.Where("user_id = ? AND quiz_id = ? AND status = ?", userID, quizID, model.SessionOpen).
		Order("created_at DESC").First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *QuizSessionRepository) SaveAnswers(session *model.QuizSession) error {
	return r.DB.Model(session).Update("answers", session.Answers).Error
}

// Close 将会话从 open 置为终态；返回的 RowsAffected 用于判断是否已被他人关闭
func (r *QuizSessionRepository) Close(sessionID uint, status model.QuizSessionStatus) (bool, error) {
	result := r.DB.Model(&model.QuizSession{}).
		Where("id = ? AND status = ?", sessionID, model.SessionOpen).
		Update("status", status)
	return result.RowsAffected > 0, result.Error
}

// FindExpired 查找已过期但仍处于 open 状态的会话，供后台自动交卷
func (r *QuizSessionRepository) FindExpired(now time.Time, limit int) ([]model.QuizSession, error) {
	var sessions []model.QuizSession
	err := r.DB.Where("status = ? AND deadline IS NOT NULL AND deadline <= ?", model.SessionOpen, now).
		Limit(limit).Find(&sessions).Error
	return sessions, err
}
