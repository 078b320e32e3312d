package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/internal/dto"
	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/internal/model"
	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/internal/repository"
)

// ── 考勤模块业务错误 ──

var (
	ErrAttendanceRecordNotFound = errors.New("考勤记录不存在")
	ErrInvalidDate              = errors.New("无效的日期格式")
)

// AttendanceService 考勤记录业务接口
type AttendanceService interface {
	Add(ctx context.Context, req *dto.AddAttendanceRequest) (*dto.AttendanceRecordResponse, error)
	HistoryByStudent(ctx context.Context, studentID int) ([]dto.AttendanceRecordResponse, error)
	GetByID(ctx context.Context, id int) (*dto.AttendanceRecordResponse, error)
}

type attendanceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(repo *repository.Repository, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, logger: logger}
}

// ────────────────────── Add ──────────────────────

// Add 为已存在的学生追加一条考勤记录
// 学生不存在时返回 ErrStudentNotFound（原有实现静默返回未保存记录，现改为显式失败）
func (s *attendanceService) Add(ctx context.Context, req *dto.AddAttendanceRequest) (*dto.AttendanceRecordResponse, error) {
	date, err := model.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	if _, err := s.repo.Student.GetByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.Int("student_id", req.StudentID), zap.Error(err))
		return nil, err
	}

	record := &model.AttendanceRecord{
		Date:      date,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		ClockType: req.ClockType,
	}
	if err := s.repo.Attendance.Create(ctx, req.StudentID, record); err != nil {
		s.logger.Error("创建考勤记录失败",
			zap.Int("student_id", req.StudentID), zap.Error(err))
		return nil, err
	}

	resp := toAttendanceResponse(record)
	return &resp, nil
}

// ────────────────────── HistoryByStudent ──────────────────────

// HistoryByStudent 返回某学生的考勤历史（按日期倒序，最新在前）
func (s *attendanceService) HistoryByStudent(ctx context.Context, studentID int) ([]dto.AttendanceRecordResponse, error) {
	if _, err := s.repo.Student.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	records, err := s.repo.Attendance.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询考勤记录失败", zap.Int("student_id", studentID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.AttendanceRecordResponse, 0, len(records))
	for i := range records {
		result = append(result, toAttendanceResponse(&records[i]))
	}
	return result, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *attendanceService) GetByID(ctx context.Context, id int) (*dto.AttendanceRecordResponse, error) {
	record, err := s.repo.Attendance.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttendanceRecordNotFound
		}
		s.logger.Error("查询考勤记录失败", zap.Int("id", id), zap.Error(err))
		return nil, err
	}

	resp := toAttendanceResponse(record)
	return &resp, nil
}

// ── 内部辅助方法 ──

// toAttendanceResponse 将 model.AttendanceRecord 转换为响应 DTO
func toAttendanceResponse(r *model.AttendanceRecord) dto.AttendanceRecordResponse {
	return dto.AttendanceRecordResponse{
		ID:        r.ID,
		StudentID: r.StudentID,
		Date:      r.Date.String(),
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		ClockType: r.ClockType,
	}
}
