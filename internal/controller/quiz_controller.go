package controller

import (
	"codequest_backend/internal/service"
	"codequest_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// GetQuizzes godoc
// @Summary 测验列表
// @Tags 测验
// @Produce  json
// @Param   languageId query int false "按语言筛选"
// @Success 200 {object} util.Response{data=[]model.Quiz}
// @Router /api/quizzes [get]
func (c *QuizController) GetQuizzes(ctx *gin.Context) {
	languageID := util.MustParseUint(ctx.Query("languageId"))

	quizzes, err := c.QuizService.GetQuizzes(languageID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, quizzes)
}

// GetQuiz godoc
// @Summary 测验详情（含题目，不含答案）
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "测验ID"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	quiz, err := c.QuizService.GetQuizForStudent(id)
	if err != nil {
		c.renderQuizError(ctx, err)
		return
	}

	util.Success(ctx, quiz)
}

// StartSession godoc
// @Summary 开始限时测验
// @Description 返回含截止时间的会话；重复调用复用已有会话，不重置倒计时
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "测验ID"
// @Success 200 {object} util.Response{data=model.QuizSession}
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/quizzes/{id}/session [post]
func (c *QuizController) StartSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	quizID := util.MustParseUint(ctx.Param("id"))

	session, err := c.QuizService.StartSession(claims.UserID, quizID)
	if err != nil {
		c.renderQuizError(ctx, err)
		return
	}

	util.Success(ctx, session)
}

// SaveAnswersRequest 暂存作答
type SaveAnswersRequest struct {
	Answers map[uint]int `json:"answers" binding:"required"`
}

// SaveAnswers godoc
// @Summary 暂存作答进度
// @Description 超时自动交卷时以最后一次暂存的答案为准
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "测验ID"
// @Param   body body SaveAnswersRequest true "已作答内容"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "没有进行中的会话"
// @Router /api/quizzes/{id}/answers [put]
func (c *QuizController) SaveAnswers(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	quizID := util.MustParseUint(ctx.Param("id"))

	var req SaveAnswersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.QuizService.SaveAnswers(claims.UserID, quizID, req.Answers); err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}

// Submit godoc
// @Summary 提交测验
// @Description 评分并写入不可变答题记录，发放XP，可能触发新成就
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "测验ID"
// @Param   body body service.SubmitRequest true "作答与请求ID"
// @Success 200 {object} util.Response{data=service.SubmitResult}
// @Failure 404 {object} util.Response "测验不存在"
// @Failure 409 {object} util.Response "重复提交或会话已结束"
// @Router /api/quizzes/{id}/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	quizID := util.MustParseUint(ctx.Param("id"))

	var req service.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.QuizService.Submit(ctx.Request.Context(), claims.UserID, quizID, req)
	if err != nil {
		c.renderQuizError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// GetAttempts godoc
// @Summary 答题历史
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Param   limit query int false "最多返回条数"
// @Success 200 {object} util.Response{data=[]model.QuizAttempt}
// @Router /api/quizzes/attempts [get]
func (c *QuizController) GetAttempts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	limit := int(util.MustParseUint(ctx.DefaultQuery("limit", "20")))

	attempts, err := c.QuizService.GetAttempts(claims.UserID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, attempts)
}

// CreateQuiz godoc
// @Summary 创建测验（教师）
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.QuizRequest true "测验与题目"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Router /api/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.CreateQuiz(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, quiz)
}

// DeleteQuiz godoc
// @Summary 删除测验（教师）
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "测验ID"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	if err := c.QuizService.DeleteQuiz(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"id": id})
}

func (c *QuizController) renderQuizError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrQuizNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrQuizNotPublished):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrSessionClosed):
		util.Conflict(ctx, "会话已结束，不能重复提交")
	case errors.Is(err, util.ErrDuplicateRequest):
		util.Conflict(ctx, "请求已处理，请勿重复提交")
	default:
		util.LogInternalError(ctx, err)
	}
}
