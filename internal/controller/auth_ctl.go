package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pharmacy_admin_v1_202608/internal/api/dto"
	"pharmacy_admin_v1_202608/internal/middleware"
	"pharmacy_admin_v1_202608/internal/service"
)

// AuthController 认证控制器
type AuthController struct {
	userSvc *service.UserService
}

// NewAuthController 工厂方法
func NewAuthController(userSvc *service.UserService) *AuthController {
	return &AuthController{userSvc: userSvc}
}

// Login 登录
// @Summary 后台登录
// @Description 用户名密码登录，返回 Access/Refresh Token 对
// @Tags Auth (认证)
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录参数"
// @Success 200 {object} dto.Response{data=dto.LoginResponse} "登录成功"
// @Failure 401 {object} dto.Response "用户名或密码错误"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	resp, err := c.userSvc.Login(ctx.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrUserDisabled) {
			fail(ctx, http.StatusUnauthorized, err.Error())
			return
		}
		failBiz(ctx, err)
		return
	}

	ok(ctx, "登录成功", resp)
}

// RefreshToken 刷新 Token
// @Summary 刷新 Token
// @Description 用 Refresh Token 换取新的 Token 对
// @Tags Auth (认证)
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "刷新参数"
// @Success 200 {object} dto.Response{data=dto.RefreshTokenResponse} "刷新成功"
// @Failure 401 {object} dto.Response "Token 无效或已过期"
// @Router /api/auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	resp, err := c.userSvc.RefreshToken(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) || errors.Is(err, service.ErrUserDisabled) {
			fail(ctx, http.StatusUnauthorized, err.Error())
			return
		}
		failBiz(ctx, err)
		return
	}

	ok(ctx, "刷新成功", resp)
}

// Me 当前用户信息
// @Summary 当前用户信息
// @Description 按 Access Token 返回登录用户
// @Tags Auth (认证)
// @Produce json
// @Success 200 {object} dto.Response{data=dto.UserInfo} "用户信息"
// @Router /api/auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	info, err := c.userSvc.GetUserInfo(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		failBiz(ctx, err)
		return
	}
	ok(ctx, "获取成功", info)
}

// Logout 登出
// @Summary 登出
// @Description 拉黑当前 Refresh Token
// @Tags Auth (认证)
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest false "登出参数"
// @Success 200 {object} dto.Response "登出成功"
// @Router /api/auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	// 不带 refresh token 的登出也放行，只是无 token 可拉黑
	_ = ctx.ShouldBindJSON(&req)

	c.userSvc.Logout(req.RefreshToken)
	ok(ctx, "登出成功", nil)
}
