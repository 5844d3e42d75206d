package service

import (
	"context"
	"fmt"
	"sync"

	"gin-gorm-shop/internal/core/auth"
	"gin-gorm-shop/internal/domain"
	"gin-gorm-shop/pkg/utils"
)

// UserFinder 登录只需要按邮箱查用户
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

type AuthService struct {
	users UserFinder
	jwt   *auth.JWTer
}

func NewAuthService(users UserFinder, j *auth.JWTer) *AuthService {
	return &AuthService{users: users, jwt: j}
}

var (
	errBadCredentials = fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	errBadRefresh     = fmt.Errorf("%w: invalid refresh token", domain.ErrUnauthorized)
)

// 用户不存在时也做一次 bcrypt 比较，耗时与密码错误一致
var dummyHash = sync.OnceValue(func() string {
	h, _ := utils.HashPassword("not-a-real-password")
	return h
})

func (s *AuthService) SignIn(ctx context.Context, email, password string) (auth.TokenPair, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		utils.CheckPassword(password, dummyHash())
		return auth.TokenPair{}, errBadCredentials
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return auth.TokenPair{}, errBadCredentials
	}
	pair, err := s.jwt.IssuePair(u.ID, u.Email)
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("issue tokens: %w", err)
	}
	return pair, nil
}

// Refresh 不做吊销检查，只校验签名、issuer、过期与类型
func (s *AuthService) Refresh(refreshToken string) (auth.TokenPair, error) {
	claims, err := s.jwt.Parse(refreshToken, auth.TypeRefresh)
	if err != nil {
		return auth.TokenPair{}, errBadRefresh
	}
	pair, err := s.jwt.IssuePair(claims.UserID, claims.Email)
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("issue tokens: %w", err)
	}
	return pair, nil
}
