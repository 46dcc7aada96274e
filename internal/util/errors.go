package util

import "errors"

var (
	ErrUserNotFound      = errors.New("用户不存在")
	ErrEmailRegistered   = errors.New("该邮箱已被注册")
	ErrAccountDisabled   = errors.New("账号已被禁用")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrInvalidToken      = errors.New("invalid token")
	ErrCourseNotFound    = errors.New("course not found")
	ErrFlashcardNotFound = errors.New("flashcard not found")
	ErrQuizNotFound      = errors.New("quiz not found")
	ErrQuizNotPublished  = errors.New("quiz not published or not accessible")
	ErrSessionNotFound   = errors.New("quiz session not found")
	ErrSessionClosed     = errors.New("quiz session already submitted")
	ErrPetNotFound       = errors.New("pet not found")
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrDuplicateRequest  = errors.New("duplicate request")
)
