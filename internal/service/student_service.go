package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/internal/dto"
	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/internal/model"
	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/internal/repository"
)

// ── 学生模块业务错误 ──

var ErrStudentNotFound = errors.New("学生不存在")

// StudentService 学生档案业务接口
type StudentService interface {
	List(ctx context.Context) ([]dto.StudentResponse, error)
	GetByID(ctx context.Context, id int) (*dto.StudentResponse, error)
	Create(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error)
	Update(ctx context.Context, req *dto.UpdateStudentRequest) error
	Delete(ctx context.Context, id int) error
}

type studentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStudentService 创建 StudentService 实例
func NewStudentService(repo *repository.Repository, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *studentService) List(ctx context.Context) ([]dto.StudentResponse, error) {
	students, err := s.repo.Student.List(ctx)
	if err != nil {
		s.logger.Error("列出学生失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		result = append(result, toStudentResponse(&students[i]))
	}
	return result, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *studentService) GetByID(ctx context.Context, id int) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	resp := toStudentResponse(student)
	return &resp, nil
}

// ────────────────────── Create ──────────────────────

// Create 创建学生档案；user_id 必须指向已存在的用户（一对一、必填）
func (s *studentService) Create(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	if _, err := s.repo.User.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	student := &model.Student{
		Name:   req.Name,
		UserID: req.UserID,
	}
	if err := s.repo.Student.Create(ctx, student); err != nil {
		s.logger.Error("创建学生失败", zap.Error(err))
		return nil, err
	}

	resp := toStudentResponse(student)
	return &resp, nil
}

// ────────────────────── Update ──────────────────────

// Update 仅更新显示名；学生不存在时返回 ErrStudentNotFound
// （原有实现为静默空操作，现改为显式未找到信号）
func (s *studentService) Update(ctx context.Context, req *dto.UpdateStudentRequest) error {
	if err := s.repo.Student.UpdateName(ctx, req.ID, req.Name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		s.logger.Error("更新学生失败", zap.Int("id", req.ID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Delete ──────────────────────

// Delete 删除学生；考勤记录由外键级联删除
func (s *studentService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Student.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		s.logger.Error("删除学生失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

// toStudentResponse 将 model.Student 转换为 dto.StudentResponse
func toStudentResponse(student *model.Student) dto.StudentResponse {
	records := make([]dto.AttendanceRecordResponse, 0, len(student.AttendanceRecords))
	for _, r := range student.AttendanceRecords {
		records = append(records, toAttendanceResponse(&r))
	}
	return dto.StudentResponse{
		ID:                student.ID,
		Name:              student.Name,
		UserID:            student.UserID,
		AttendanceRecords: records,
	}
}
