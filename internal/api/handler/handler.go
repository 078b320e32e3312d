package handler

import (
	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/config"
	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth    *AuthHandler
	Student *StudentHandler
	User    *UserHandler
	Export  *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(cfg *config.Config, svc *service.Service) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(cfg, svc.Auth),
		Student: NewStudentHandler(svc.Student, svc.Attendance),
		User:    NewUserHandler(svc.User),
		Export:  NewExportHandler(svc.Export),
	}
}
