package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/internal/model"
)

// StudentRepository 学生档案数据访问接口
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id int) (*model.Student, error)
	GetByUserID(ctx context.Context, userID string) (*model.Student, error)
	List(ctx context.Context) ([]model.Student, error)
	UpdateName(ctx context.Context, id int, name string) error
	Delete(ctx context.Context, id int) error
}

// studentRepo StudentRepository 的 GORM 实现
type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

// GetByID 按主键查询学生，并预加载考勤记录（新到旧）
func (r *studentRepo) GetByID(ctx context.Context, id int) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Preload("AttendanceRecords", func(db *gorm.DB) *gorm.DB {
			return db.Order("date DESC")
		}).
		Where("id = ?", id).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) GetByUserID(ctx context.Context, userID string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Preload("AttendanceRecords", func(db *gorm.DB) *gorm.DB {
			return db.Order("date DESC")
		}).
		Where("user_id = ?", userID).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) List(ctx context.Context) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Preload("AttendanceRecords", func(db *gorm.DB) *gorm.DB {
			return db.Order("date DESC")
		}).
		Order("id").
		Find(&students).Error
	if err != nil {
		return nil, err
	}
	return students, nil
}

// UpdateName 仅更新显示名（业务范围只允许改名）
// 学生不存在时返回 gorm.ErrRecordNotFound 而非静默成功
func (r *studentRepo) UpdateName(ctx context.Context, id int, name string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Student{}).
		Where("id = ?", id).
		Update("name", name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete 删除学生；考勤记录由外键级联删除（模式层保障）
func (r *studentRepo) Delete(ctx context.Context, id int) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Student{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
