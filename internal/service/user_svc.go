package service

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"pharmacy_admin_v1_202608/internal/api/dto"
	"pharmacy_admin_v1_202608/internal/middleware"
	"pharmacy_admin_v1_202608/internal/model"
	"pharmacy_admin_v1_202608/internal/repository"
	"pharmacy_admin_v1_202608/pkg/utils"
)

// refresh token 黑名单的缓存 key 前缀
const refreshBlacklistPrefix = "refresh_blacklist:"

// UserService 后台用户服务
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService 工厂方法
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Login 登录校验，成功返回 Token 对
func (s *UserService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	// 用户不存在和密码错误统一报错，不给枚举用户名的机会
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.Status != model.UserStatusActive {
		return nil, ErrUserDisabled
	}

	accessToken, refreshToken, err := middleware.GenerateTokenPair(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		// 登录时间更新失败不影响登录
		log.Printf("更新最后登录时间失败: %v", err)
	}

	cfg := middleware.GetJWTConfig()
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(cfg.AccessTokenTTL),
		User: dto.UserInfo{
			ID:          user.ID,
			Username:    user.Username,
			Role:        string(user.Role),
			LastLoginAt: user.LastLoginAt,
		},
	}, nil
}

// RefreshToken 用 refresh token 换新 Token 对
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*dto.RefreshTokenResponse, error) {
	claims, err := middleware.ParseToken(refreshToken)
	if err != nil || claims.Subject != "refresh" {
		return nil, ErrInvalidToken
	}

	// 登出过的 refresh token 在黑名单里，拒绝续期
	if _, blacklisted := utils.GetCache(refreshBlacklistPrefix + refreshToken); blacklisted {
		return nil, ErrInvalidToken
	}

	// 确认用户还在且未被禁用
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if user.Status != model.UserStatusActive {
		return nil, ErrUserDisabled
	}

	accessToken, newRefreshToken, err := middleware.GenerateTokenPair(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, err
	}

	cfg := middleware.GetJWTConfig()
	return &dto.RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		ExpiresAt:    time.Now().Add(cfg.AccessTokenTTL),
	}, nil
}

// GetUserInfo 查当前登录用户信息
func (s *UserService) GetUserInfo(ctx context.Context, userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &dto.UserInfo{
		ID:          user.ID,
		Username:    user.Username,
		Role:        string(user.Role),
		LastLoginAt: user.LastLoginAt,
	}, nil
}

// Logout 登出：把 refresh token 拉黑到它自然过期为止
func (s *UserService) Logout(refreshToken string) {
	if refreshToken == "" {
		return
	}
	cfg := middleware.GetJWTConfig()
	utils.SetCache(refreshBlacklistPrefix+refreshToken, "1", cfg.RefreshTokenTTL)
}

// EnsureAdminUser 首次启动时种子管理员账号
func (s *UserService) EnsureAdminUser(ctx context.Context, username, password string) error {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &model.SysUser{
		Username: username,
		Password: string(hash),
		Role:     model.UserRoleAdmin,
		Status:   model.UserStatusActive,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return err
	}

	log.Printf("已创建初始管理员账号: %s", username)
	return nil
}
