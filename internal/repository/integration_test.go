//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/internal/model"
	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=tracker password=tracker_password dbname=student_tracker_test sslmode=disable"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 自动迁移测试表结构
	err = testDB.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.Student{},
		&model.AttendanceRecord{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

// setupTestData 创建基础测试数据并返回清理函数
func setupTestData(t *testing.T) (repo *repository.Repository, user *model.User, student *model.Student, cleanup func()) {
	t.Helper()
	ctx := context.Background()
	repo = repository.NewRepository(testDB)

	if err := repo.Role.Seed(ctx, model.SeedRoleNames); err != nil {
		t.Fatalf("角色播种失败: %v", err)
	}

	user = &model.User{
		Name:         "测试用户",
		Email:        fmt.Sprintf("test%d@edu.cn", time.Now().UnixNano()),
		PasswordHash: "$2a$10$placeholder",
	}
	if err := repo.User.Create(ctx, user); err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}

	student = &model.Student{Name: "测试学生", UserID: user.UserID}
	if err := repo.Student.Create(ctx, student); err != nil {
		t.Fatalf("创建学生失败: %v", err)
	}

	cleanup = func() {
		testDB.WithContext(ctx).Where("student_id = ?", student.ID).Delete(&model.AttendanceRecord{})
		testDB.WithContext(ctx).Where("id = ?", student.ID).Delete(&model.Student{})
		testDB.WithContext(ctx).Where("user_id = ?", user.UserID).Delete(&model.User{})
	}
	return repo, user, student, cleanup
}

func addRecord(t *testing.T, repo *repository.Repository, studentID int, dateStr string, clockType bool) {
	t.Helper()
	date, err := model.ParseDate(dateStr)
	if err != nil {
		t.Fatalf("解析日期失败: %v", err)
	}
	record := &model.AttendanceRecord{Date: date, Latitude: 36.3, Longitude: -82.36, ClockType: clockType}
	if err := repo.Attendance.Create(context.Background(), studentID, record); err != nil {
		t.Fatalf("创建考勤记录失败: %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// Tests
// ═══════════════════════════════════════════════════════════

func TestRoleSeed_Idempotent(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewRepository(testDB)

	if err := repo.Role.Seed(ctx, model.SeedRoleNames); err != nil {
		t.Fatalf("首次播种失败: %v", err)
	}
	if err := repo.Role.Seed(ctx, model.SeedRoleNames); err != nil {
		t.Fatalf("重复播种应成功: %v", err)
	}

	names, err := repo.Role.ListNames(ctx)
	if err != nil {
		t.Fatalf("ListNames 失败: %v", err)
	}
	if len(names) != 3 {
		t.Errorf("期望 3 个角色，实际=%d (%v)", len(names), names)
	}
}

func TestRoleGetByName_CaseInsensitive(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewRepository(testDB)
	_ = repo.Role.Seed(ctx, model.SeedRoleNames)

	for _, name := range []string{"student", "STUDENT", "Student"} {
		role, err := repo.Role.GetByName(ctx, name)
		if err != nil {
			t.Fatalf("GetByName(%s) 失败: %v", name, err)
		}
		if role.Name != model.RoleStudent {
			t.Errorf("期望规范名 Student，实际=%s", role.Name)
		}
	}
}

func TestSetPrimaryRole_Replaces(t *testing.T) {
	ctx := context.Background()
	repo, user, _, cleanup := setupTestData(t)
	defer cleanup()

	studentRole, _ := repo.Role.GetByName(ctx, model.RoleStudent)
	teacherRole, _ := repo.Role.GetByName(ctx, model.RoleTeacher)

	if err := repo.User.SetPrimaryRole(ctx, user.UserID, studentRole); err != nil {
		t.Fatalf("首次分配角色失败: %v", err)
	}
	if err := repo.User.SetPrimaryRole(ctx, user.UserID, teacherRole); err != nil {
		t.Fatalf("重设角色失败: %v", err)
	}

	roles, err := repo.User.GetRoles(ctx, user.UserID)
	if err != nil {
		t.Fatalf("GetRoles 失败: %v", err)
	}
	if len(roles) != 1 || roles[0] != model.RoleTeacher {
		t.Errorf("重设后应恰好持有 Teacher，实际=%v", roles)
	}
}

func TestAttendance_OrderedByDateDesc(t *testing.T) {
	ctx := context.Background()
	repo, _, student, cleanup := setupTestData(t)
	defer cleanup()

	for _, d := range []string{"2026-03-01", "2026-03-05", "2026-03-03"} {
		addRecord(t, repo, student.ID, d, true)
	}

	records, err := repo.Attendance.ListByStudent(ctx, student.ID)
	if err != nil {
		t.Fatalf("ListByStudent 失败: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("期望 3 条记录，实际=%d", len(records))
	}
	for i := 1; i < len(records); i++ {
		if records[i].Date.After(records[i-1].Date) {
			t.Errorf("位置 %d 日期顺序错误", i)
		}
	}

	// 学生查询预加载的集合同样倒序
	got, err := repo.Student.GetByID(ctx, student.ID)
	if err != nil {
		t.Fatalf("GetByID 失败: %v", err)
	}
	if len(got.AttendanceRecords) != 3 {
		t.Fatalf("预加载期望 3 条记录，实际=%d", len(got.AttendanceRecords))
	}
	if got.AttendanceRecords[0].Date.String() != "2026-03-05" {
		t.Errorf("最新记录应在最前，实际=%s", got.AttendanceRecords[0].Date)
	}
}

func TestStudentDelete_CascadesAttendance(t *testing.T) {
	ctx := context.Background()
	repo, _, student, cleanup := setupTestData(t)
	defer cleanup()

	addRecord(t, repo, student.ID, "2026-03-01", true)

	if err := repo.Student.Delete(ctx, student.ID); err != nil {
		t.Fatalf("删除学生失败: %v", err)
	}

	if _, err := repo.Student.GetByID(ctx, student.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("删除后期望 ErrRecordNotFound，实际: %v", err)
	}

	var count int64
	testDB.WithContext(ctx).Model(&model.AttendanceRecord{}).
		Where("student_id = ?", student.ID).Count(&count)
	if count != 0 {
		t.Errorf("考勤记录应级联删除，实际剩余=%d", count)
	}
}

func TestStudentUpdateName_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewRepository(testDB)

	err := repo.Student.UpdateName(ctx, 999999, "不存在")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("期望 ErrRecordNotFound，实际: %v", err)
	}
}
