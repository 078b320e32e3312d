package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/internal/dto"
	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/internal/model"
)

func setupTestAttendanceService() (AttendanceService, *mockRepos, int) {
	repo, mocks := newMockRepository()
	svc := NewAttendanceService(repo, zap.NewNop())

	user := createTestUser(mocks, "ana@test.com", "password123", model.RoleStudent)
	student := &model.Student{Name: "Ana", UserID: user.UserID}
	_ = mocks.student.Create(context.Background(), student)

	return svc, mocks, student.ID
}

// ── 添加测试 ──

func TestAttendanceAdd_EchoesSavedRecord(t *testing.T) {
	svc, _, studentID := setupTestAttendanceService()

	record, err := svc.Add(context.Background(), &dto.AddAttendanceRequest{
		StudentID: studentID,
		Date:      "2026-03-01",
		Latitude:  36.3,
		Longitude: -82.36,
		ClockType: true,
	})

	if err != nil {
		t.Fatalf("Add 应成功: %v", err)
	}
	if record.ID == 0 {
		t.Error("回显记录应包含生成的 id")
	}
	if record.StudentID != studentID {
		t.Errorf("期望 student_id=%d，实际=%d", studentID, record.StudentID)
	}
	if record.Date != "2026-03-01" {
		t.Errorf("期望日期 2026-03-01，实际=%s", record.Date)
	}
	if !record.ClockType {
		t.Error("期望 clock_type=true（签到）")
	}
}

func TestAttendanceAdd_StudentNotFound(t *testing.T) {
	svc, mocks, _ := setupTestAttendanceService()

	_, err := svc.Add(context.Background(), &dto.AddAttendanceRequest{
		StudentID: 999,
		Date:      "2026-03-01",
	})

	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("期望 ErrStudentNotFound，实际: %v", err)
	}
	// 不落任何记录
	if len(mocks.att.records) != 0 {
		t.Errorf("学生不存在时不应保存记录，实际=%d", len(mocks.att.records))
	}
}

func TestAttendanceAdd_InvalidDate(t *testing.T) {
	svc, _, studentID := setupTestAttendanceService()

	_, err := svc.Add(context.Background(), &dto.AddAttendanceRequest{
		StudentID: studentID,
		Date:      "03/01/2026",
	})

	if !errors.Is(err, ErrInvalidDate) {
		t.Errorf("期望 ErrInvalidDate，实际: %v", err)
	}
}

// ── 历史查询测试 ──

func TestAttendanceHistory_DescendingByDate(t *testing.T) {
	svc, _, studentID := setupTestAttendanceService()

	// 乱序插入，两条同日（签到+签退）
	inserts := []struct {
		date  string
		clock bool
	}{
		{"2026-03-01", true},
		{"2026-03-05", true},
		{"2026-03-03", true},
		{"2026-03-03", false},
	}
	for _, in := range inserts {
		if _, err := svc.Add(context.Background(), &dto.AddAttendanceRequest{
			StudentID: studentID,
			Date:      in.date,
			ClockType: in.clock,
		}); err != nil {
			t.Fatalf("Add(%s) 应成功: %v", in.date, err)
		}
	}

	records, err := svc.HistoryByStudent(context.Background(), studentID)
	if err != nil {
		t.Fatalf("HistoryByStudent 应成功: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("期望 4 条记录，实际=%d", len(records))
	}
	// 日期单调不增
	for i := 1; i < len(records); i++ {
		if records[i].Date > records[i-1].Date {
			t.Errorf("位置 %d 日期顺序错误: %s 在 %s 之后", i, records[i].Date, records[i-1].Date)
		}
	}
	if records[0].Date != "2026-03-05" {
		t.Errorf("最新记录应在最前，实际=%s", records[0].Date)
	}
}

func TestAttendanceHistory_StudentNotFound(t *testing.T) {
	svc, _, _ := setupTestAttendanceService()

	_, err := svc.HistoryByStudent(context.Background(), 999)
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("期望 ErrStudentNotFound，实际: %v", err)
	}
}

func TestAttendanceHistory_EmptyForNewStudent(t *testing.T) {
	svc, _, studentID := setupTestAttendanceService()

	records, err := svc.HistoryByStudent(context.Background(), studentID)
	if err != nil {
		t.Fatalf("HistoryByStudent 应成功: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("新学生历史应为空，实际=%d", len(records))
	}
}

// ── 单条查询测试 ──

func TestAttendanceGetByID(t *testing.T) {
	svc, _, studentID := setupTestAttendanceService()

	created, err := svc.Add(context.Background(), &dto.AddAttendanceRequest{
		StudentID: studentID,
		Date:      "2026-03-01",
		ClockType: false,
	})
	if err != nil {
		t.Fatalf("Add 应成功: %v", err)
	}

	got, err := svc.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if got.ClockType {
		t.Error("期望 clock_type=false（签退）")
	}

	if _, err := svc.GetByID(context.Background(), 999); !errors.Is(err, ErrAttendanceRecordNotFound) {
		t.Errorf("期望 ErrAttendanceRecordNotFound，实际: %v", err)
	}
}
