package controller

import (
	"codequest_backend/internal/service"
	"codequest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AchievementController struct {
	AchievementService *service.AchievementService
}

func NewAchievementController(achievementService *service.AchievementService) *AchievementController {
	return &AchievementController{AchievementService: achievementService}
}

// GetMyAchievements godoc
// @Summary 我的成就与等级
// @Tags 成就
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.UserAchievements}
// @Router /api/achievements/me [get]
func (c *AchievementController) GetMyAchievements(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	view, err := c.AchievementService.GetUserAchievements(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

// GetCatalog godoc
// @Summary 成就目录
// @Tags 成就
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Achievement}
// @Router /api/achievements [get]
func (c *AchievementController) GetCatalog(ctx *gin.Context) {
	catalog, err := c.AchievementService.GetCatalog()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, catalog)
}

// GetLeaderboard godoc
// @Summary XP排行榜
// @Tags 成就
// @Produce  json
// @Param   limit query int false "返回名次数量"
// @Success 200 {object} util.Response{data=[]service.LeaderboardEntry}
// @Router /api/leaderboard [get]
func (c *AchievementController) GetLeaderboard(ctx *gin.Context) {
	limit := int(util.MustParseUint(ctx.DefaultQuery("limit", "10")))

	entries, err := c.AchievementService.GetLeaderboard(ctx.Request.Context(), limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, entries)
}

// CreateAchievement godoc
// @Summary 新建成就（管理员）
// @Tags 管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.AchievementRequest true "成就定义"
// @Success 201 {object} util.Response{data=model.Achievement}
// @Router /api/admin/achievements [post]
func (c *AchievementController) CreateAchievement(ctx *gin.Context) {
	var req service.AchievementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	achievement, err := c.AchievementService.CreateAchievement(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, achievement)
}

// SetAchievementActive godoc
// @Summary 上线/下线成就（管理员）
// @Tags 管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "成就ID"
// @Success 200 {object} util.Response
// @Router /api/admin/achievements/{id}/active [put]
func (c *AchievementController) SetAchievementActive(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req struct {
		Active bool `json:"active"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.AchievementService.SetAchievementActive(id, req.Active); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"id": id, "active": req.Active})
}
