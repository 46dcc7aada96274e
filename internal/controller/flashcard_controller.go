package controller

import (
	"codequest_backend/internal/service"
	"codequest_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type FlashcardController struct {
	FlashcardService *service.FlashcardService
}

func NewFlashcardController(flashcardService *service.FlashcardService) *FlashcardController {
	return &FlashcardController{FlashcardService: flashcardService}
}

// GetFlashcards godoc
// @Summary 闪卡列表
// @Tags 闪卡
// @Produce  json
// @Param   languageId query int false "按语言筛选"
// @Param   courseId query int false "按课程筛选"
// @Success 200 {object} util.Response{data=[]model.Flashcard}
// @Router /api/flashcards [get]
func (c *FlashcardController) GetFlashcards(ctx *gin.Context) {
	languageID := util.MustParseUint(ctx.Query("languageId"))
	courseID := util.MustParseUint(ctx.Query("courseId"))

	cards, err := c.FlashcardService.GetFlashcards(languageID, courseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, cards)
}

// GetMyProgress godoc
// @Summary 当前用户的闪卡掌握进度
// @Tags 闪卡
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.FlashcardProgress}
// @Router /api/flashcards/progress [get]
func (c *FlashcardController) GetMyProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	records, err := c.FlashcardService.GetUserProgress(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, records)
}

// ReviewRequest 闪卡复习上报
type ReviewRequest struct {
	WasCorrect *bool `json:"wasCorrect" binding:"required"`
}

// Review godoc
// @Summary 上报一次闪卡复习结果
// @Description 答对掌握度+1（上限5），答错-1（下限0），可能触发新成就
// @Tags 闪卡
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "闪卡ID"
// @Param   body body ReviewRequest true "复习结果"
// @Success 200 {object} util.Response{data=service.ReviewResult}
// @Failure 404 {object} util.Response "闪卡不存在"
// @Router /api/flashcards/{id}/review [post]
func (c *FlashcardController) Review(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	flashcardID := util.MustParseUint(ctx.Param("id"))

	var req ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.FlashcardService.ReviewFlashcard(claims.UserID, flashcardID, *req.WasCorrect)
	if err != nil {
		if errors.Is(err, util.ErrFlashcardNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// CreateFlashcard godoc
// @Summary 创建闪卡（教师）
// @Tags 闪卡
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.FlashcardRequest true "闪卡内容"
// @Success 201 {object} util.Response{data=model.Flashcard}
// @Router /api/flashcards [post]
func (c *FlashcardController) CreateFlashcard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.FlashcardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	card, err := c.FlashcardService.CreateFlashcard(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, card)
}

// DeleteFlashcard godoc
// @Summary 删除闪卡（教师）
// @Tags 闪卡
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "闪卡ID"
// @Success 200 {object} util.Response
// @Router /api/flashcards/{id} [delete]
func (c *FlashcardController) DeleteFlashcard(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	if err := c.FlashcardService.DeleteFlashcard(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"id": id})
}
