package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/internal/dto"
	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/internal/model"
)

func setupTestUserService() (UserService, *mockRepos) {
	repo, mocks := newMockRepository()
	svc := NewUserService(repo, zap.NewNop())
	return svc, mocks
}

// ── 创建测试 ──

func TestUserCreate_Success(t *testing.T) {
	svc, _ := setupTestUserService()

	user, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Email:    "t@test.com",
		Name:     "王老师",
		Password: "password123",
		RoleName: "teacher",
	})

	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if user.Role != model.RoleTeacher {
		t.Errorf("期望主角色 Teacher，实际=%s", user.Role)
	}
}

func TestUserCreate_UnknownRole(t *testing.T) {
	svc, mocks := setupTestUserService()

	_, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Email:    "x@test.com",
		Name:     "某人",
		Password: "password123",
		RoleName: "janitor",
	})

	if !errors.Is(err, ErrRoleNotFound) {
		t.Errorf("期望 ErrRoleNotFound，实际: %v", err)
	}
	if len(mocks.user.users) != 0 {
		t.Errorf("角色不存在时不应创建用户，实际=%d", len(mocks.user.users))
	}
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	svc, mocks := setupTestUserService()
	createTestUser(mocks, "t@test.com", "password123", model.RoleTeacher)

	_, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Email:    "t@test.com",
		Name:     "王老师",
		Password: "password123",
		RoleName: "teacher",
	})

	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("期望 ErrEmailExists，实际: %v", err)
	}
}

// ── 更新与删除测试 ──

func TestUserUpdate_NameOnly(t *testing.T) {
	svc, mocks := setupTestUserService()
	user := createTestUser(mocks, "t@test.com", "password123", model.RoleTeacher)
	originalEmail := user.Email

	updated, err := svc.Update(context.Background(), user.UserID, &dto.UpdateUserRequest{
		Name: "新名字",
	})

	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if updated.Name != "新名字" {
		t.Errorf("期望 Name=新名字，实际=%s", updated.Name)
	}
	if updated.Email != originalEmail {
		t.Errorf("更新不应改动邮箱: %s → %s", originalEmail, updated.Email)
	}
}

func TestUserUpdate_NotFound(t *testing.T) {
	svc, _ := setupTestUserService()

	_, err := svc.Update(context.Background(), "missing", &dto.UpdateUserRequest{Name: "x"})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

func TestUserDelete_NotFound(t *testing.T) {
	svc, _ := setupTestUserService()

	err := svc.Delete(context.Background(), "missing")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

// ── 角色重分配测试 ──

func TestAssignRole_ExactlyOneRole(t *testing.T) {
	svc, mocks := setupTestUserService()
	user := createTestUser(mocks, "s@test.com", "password123", model.RoleStudent)

	updated, err := svc.AssignRole(context.Background(), user.UserID, &dto.AssignRoleRequest{
		RoleName: "teacher",
	})

	if err != nil {
		t.Fatalf("AssignRole 应成功: %v", err)
	}
	// 操作后恰好一个角色，不是旧角色的超集
	if len(updated.Roles) != 1 {
		t.Fatalf("期望恰好 1 个角色，实际=%d (%v)", len(updated.Roles), updated.Roles)
	}
	if updated.Roles[0] != model.RoleTeacher {
		t.Errorf("期望角色 Teacher，实际=%s", updated.Roles[0])
	}
	if updated.Role != model.RoleTeacher {
		t.Errorf("期望主角色 Teacher，实际=%s", updated.Role)
	}
}

func TestAssignRole_UserNotFound(t *testing.T) {
	svc, _ := setupTestUserService()

	_, err := svc.AssignRole(context.Background(), "missing", &dto.AssignRoleRequest{RoleName: "teacher"})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

func TestAssignRole_UnknownRole(t *testing.T) {
	svc, mocks := setupTestUserService()
	user := createTestUser(mocks, "s@test.com", "password123", model.RoleStudent)

	_, err := svc.AssignRole(context.Background(), user.UserID, &dto.AssignRoleRequest{RoleName: "janitor"})
	if !errors.Is(err, ErrRoleNotFound) {
		t.Errorf("期望 ErrRoleNotFound，实际: %v", err)
	}

	// 原角色保持不变
	roles, _ := mocks.user.GetRoles(context.Background(), user.UserID)
	if len(roles) != 1 || roles[0] != model.RoleStudent {
		t.Errorf("角色不存在时原角色应保留，实际=%v", roles)
	}
}

// ── 角色列表测试 ──

func TestListRoleNames_SeededSet(t *testing.T) {
	svc, _ := setupTestUserService()

	names, err := svc.ListRoleNames(context.Background())
	if err != nil {
		t.Fatalf("ListRoleNames 应成功: %v", err)
	}
	if len(names) != 3 {
		t.Fatalf("期望 3 个角色，实际=%d (%v)", len(names), names)
	}
	expected := []string{model.RoleAdmin, model.RoleTeacher, model.RoleStudent}
	for i, want := range expected {
		if names[i] != want {
			t.Errorf("位置 %d 期望 %s，实际=%s", i, want, names[i])
		}
	}
}

func TestRoleSeed_Idempotent(t *testing.T) {
	_, mocks := setupTestUserService()

	// 重复播种不产生重复角色，已有 ID 不变
	before, _ := mocks.role.ListNames(context.Background())
	if err := mocks.role.Seed(context.Background(), model.SeedRoleNames); err != nil {
		t.Fatalf("重复 Seed 应成功: %v", err)
	}
	after, _ := mocks.role.ListNames(context.Background())

	if len(before) != len(after) {
		t.Errorf("重复播种不应增加角色: %d → %d", len(before), len(after))
	}
}
