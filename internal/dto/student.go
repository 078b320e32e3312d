package dto

// ── 学生模块 DTO ──

// CreateStudentRequest 创建学生档案请求
type CreateStudentRequest struct {
	Name   string `json:"name"    binding:"required,min=1,max=100"`
	UserID string `json:"user_id" binding:"required,uuid"`
}

// UpdateStudentRequest 更新学生请求（含 id 的完整学生体）
// 业务范围仅允许更新显示名；id 为零值视为非法请求
type UpdateStudentRequest struct {
	ID   int    `json:"id"   binding:"required"`
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// AddAttendanceRequest 添加考勤记录请求（表单字段）
// 日期为 "YYYY-MM-DD"；clockType=true 表示签到，false 表示签退
type AddAttendanceRequest struct {
	ID        int     `form:"id"`
	StudentID int     `form:"studentId" binding:"required"`
	Date      string  `form:"date"      binding:"required"`
	Latitude  float64 `form:"latitude"`
	Longitude float64 `form:"longitude"`
	ClockType bool    `form:"clockType"`
}

// StudentResponse 学生响应（含考勤集合）
type StudentResponse struct {
	ID                int                        `json:"id"`
	Name              string                     `json:"name"`
	UserID            string                     `json:"user_id"`
	AttendanceRecords []AttendanceRecordResponse `json:"attendance_records"`
}

// AttendanceRecordResponse 考勤记录响应
type AttendanceRecordResponse struct {
	ID        int     `json:"id"`
	StudentID int     `json:"student_id"`
	Date      string  `json:"date"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	ClockType bool    `json:"clock_type"`
}
