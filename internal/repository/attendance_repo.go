package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/internal/model"
)

// AttendanceRepository 考勤记录数据访问接口
type AttendanceRepository interface {
	Create(ctx context.Context, studentID int, record *model.AttendanceRecord) error
	ListByStudent(ctx context.Context, studentID int) ([]model.AttendanceRecord, error)
	GetByID(ctx context.Context, id int) (*model.AttendanceRecord, error)
}

// attendanceRepo AttendanceRepository 的 GORM 实现
type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo 创建 AttendanceRepository 实例
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

// Create 设置外键后落库；记录 ID 由数据库自增分配
func (r *attendanceRepo) Create(ctx context.Context, studentID int, record *model.AttendanceRecord) error {
	record.StudentID = studentID
	return r.db.WithContext(ctx).Create(record).Error
}

// ListByStudent 返回某学生的全部考勤记录，按日期倒序（最新在前）
// 日期无时间部分，同日记录顺序不保证
func (r *attendanceRepo) ListByStudent(ctx context.Context, studentID int) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("date DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *attendanceRepo) GetByID(ctx context.Context, id int) (*model.AttendanceRecord, error) {
	var record model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}
