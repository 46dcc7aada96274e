package controller

import (
	"codequest_backend/internal/gamify"
	"codequest_backend/internal/service"
	"codequest_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type PetController struct {
	PetService *service.PetService
}

func NewPetController(petService *service.PetService) *PetController {
	return &PetController{PetService: petService}
}

// GetPet godoc
// @Summary 获取我的宠物
// @Description 首次访问时自动领养
// @Tags 宠物
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.VirtualPet}
// @Router /api/pet [get]
func (c *PetController) GetPet(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	pet, err := c.PetService.GetOrCreatePet(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, pet)
}

// PetActionRequest requestId用于幂等去重，前端每次点击生成新的
type PetActionRequest struct {
	RequestID string `json:"requestId"`
}

// Feed godoc
// @Summary 喂食
// @Description 饱食度+20 快乐度+10；饱食度超过90时拒绝
// @Tags 宠物
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body PetActionRequest true "请求ID"
// @Success 200 {object} util.Response{data=service.PetActionResult}
// @Failure 409 {object} util.Response "宠物太饱了"
// @Router /api/pet/feed [post]
func (c *PetController) Feed(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req PetActionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.PetService.Feed(ctx.Request.Context(), claims.UserID, req.RequestID)
	if err != nil {
		c.renderPetError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// Play godoc
// @Summary 玩耍
// @Description 快乐度+25 精力-20；精力低于20时拒绝
// @Tags 宠物
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body PetActionRequest true "请求ID"
// @Success 200 {object} util.Response{data=service.PetActionResult}
// @Failure 409 {object} util.Response "宠物太累了"
// @Router /api/pet/play [post]
func (c *PetController) Play(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req PetActionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.PetService.Play(ctx.Request.Context(), claims.UserID, req.RequestID)
	if err != nil {
		c.renderPetError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// Rest godoc
// @Summary 休息
// @Description 精力+40 快乐度+5；精力高于90时拒绝
// @Tags 宠物
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body PetActionRequest true "请求ID"
// @Success 200 {object} util.Response{data=service.PetActionResult}
// @Failure 409 {object} util.Response "宠物精力充沛"
// @Router /api/pet/rest [post]
func (c *PetController) Rest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req PetActionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.PetService.Rest(ctx.Request.Context(), claims.UserID, req.RequestID)
	if err != nil {
		c.renderPetError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// RenameRequest 宠物改名
type RenameRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

// Rename godoc
// @Summary 给宠物改名
// @Tags 宠物
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body RenameRequest true "新名字"
// @Success 200 {object} util.Response{data=model.VirtualPet}
// @Router /api/pet/name [put]
func (c *PetController) Rename(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req RenameRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	pet, err := c.PetService.Rename(claims.UserID, req.Name)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, pet)
}

func (c *PetController) renderPetError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, gamify.ErrPetTooFull):
		util.Conflict(ctx, "宠物太饱了，过会儿再喂吧")
	case errors.Is(err, gamify.ErrPetTooTired):
		util.Conflict(ctx, "宠物太累了，先休息一下吧")
	case errors.Is(err, gamify.ErrPetTooRested):
		util.Conflict(ctx, "宠物精力充沛，不需要休息")
	case errors.Is(err, util.ErrDuplicateRequest):
		util.Conflict(ctx, "请求已处理，请勿重复提交")
	default:
		util.LogInternalError(ctx, err)
	}
}
