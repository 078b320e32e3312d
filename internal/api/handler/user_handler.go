package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/internal/dto"
	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/internal/service"
	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/pkg/response"
)

// UserHandler 用户管理模块 HTTP 处理器（管理员专用）
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// ListUsers 用户列表
// GET /api/user/all
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, users)
}

// GetUser 查询单个用户
// GET /api/user/one/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 20001, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, user)
}

// CreateUser 创建用户并分配主角色
// POST /api/user/create
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	user, err := h.userSvc.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRoleNotFound):
			response.BadRequest(c, 11003, "角色不存在")
		case errors.Is(err, service.ErrEmailExists):
			response.Conflict(c, 11002, "邮箱已被注册")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, user)
}

// UpdateUser 更新用户显示名
// PUT /api/user/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	user, err := h.userSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 20001, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, user)
}

// DeleteUser 删除用户（学生档案与考勤记录级联删除）
// DELETE /api/user/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 20001, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.NoContent(c)
}

// AssignRole 重设用户主角色
// PUT /api/user/:id/role
// 操作完成后用户恰好持有一个角色
func (h *UserHandler) AssignRole(c *gin.Context) {
	var req dto.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	user, err := h.userSvc.AssignRole(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 20001, "用户不存在")
		case errors.Is(err, service.ErrRoleNotFound):
			response.BadRequest(c, 11003, "角色不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, user)
}

// ListRoles 全部角色名
// GET /api/user/roles
func (h *UserHandler) ListRoles(c *gin.Context) {
	names, err := h.userSvc.ListRoleNames(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, dto.RoleListResponse{Roles: names})
}
