package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/internal/dto"
	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/internal/service"
	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/pkg/response"
)

// StudentHandler 学生模块 HTTP 处理器
type StudentHandler struct {
	studentSvc    service.StudentService
	attendanceSvc service.AttendanceService
}

// NewStudentHandler 创建 StudentHandler
func NewStudentHandler(studentSvc service.StudentService, attendanceSvc service.AttendanceService) *StudentHandler {
	return &StudentHandler{studentSvc: studentSvc, attendanceSvc: attendanceSvc}
}

// ListStudents 学生列表（含各自考勤集合，日期倒序）
// GET /api/student/all
func (h *StudentHandler) ListStudents(c *gin.Context) {
	students, err := h.studentSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, students)
}

// GetStudent 查询单个学生
// GET /api/student/one/:id
func (h *StudentHandler) GetStudent(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		return
	}

	student, err := h.studentSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.NotFound(c, 21001, "学生不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, student)
}

// CreateStudent 创建学生档案
// POST /api/student/create
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	student, err := h.studentSvc.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.BadRequest(c, 20001, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, student)
}

// UpdateStudent 更新学生显示名
// PUT /api/student/update
// 请求体为含 id 的完整学生体；id 为零值在绑定阶段即拒绝，不触达存储层
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.studentSvc.Update(c.Request.Context(), &req); err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.NotFound(c, 21001, "学生不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.NoContent(c)
}

// DeleteStudent 删除学生（考勤记录级联删除）
// DELETE /api/student/delete/:id
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		return
	}

	if err := h.studentSvc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.NotFound(c, 21001, "学生不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.NoContent(c)
}

// AddAttendanceRecord 添加考勤记录（表单提交）
// POST /api/student/attendanceRecord/add
// 成功时回显已保存的记录（含生成的 id）
func (h *StudentHandler) AddAttendanceRecord(c *gin.Context) {
	var req dto.AddAttendanceRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	record, err := h.attendanceSvc.Add(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			response.NotFound(c, 21001, "学生不存在")
		case errors.Is(err, service.ErrInvalidDate):
			response.BadRequest(c, 21002, "无效的日期格式")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, record)
}

// GetAttendanceHistory 查询学生考勤历史（日期倒序）
// GET /api/student/:id/attendance
func (h *StudentHandler) GetAttendanceHistory(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		return
	}

	records, err := h.attendanceSvc.HistoryByStudent(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.NotFound(c, 21001, "学生不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, records)
}

// ── 内部辅助方法 ──

// parseIntParam 解析路径整型参数；非法时写入 400 并返回 false
func parseIntParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v <= 0 {
		response.BadRequest(c, 10001, "参数校验失败")
		return 0, false
	}
	return v, true
}
