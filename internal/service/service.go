package service

import (
	"go.uber.org/zap"

	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/config"
	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/internal/repository"
	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/pkg/jwt"
	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	User       UserService
	Student    StudentService
	Attendance AttendanceService
	Export     ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:       NewUserService(repo, logger),
		Student:    NewStudentService(repo, logger),
		Attendance: NewAttendanceService(repo, logger),
		Export:     NewExportService(repo, logger),
	}
}
