package dto

// ── 用户模块 DTO ──

// CreateUserRequest 管理员创建用户请求
type CreateUserRequest struct {
	Email    string `json:"email"     binding:"required,email"`
	Name     string `json:"name"      binding:"required,min=2,max=100"`
	Password string `json:"password"  binding:"required,min=8,max=64"`
	RoleName string `json:"role_name" binding:"required"`
}

// UpdateUserRequest 更新用户请求
// 管理路径下仅允许修改显示名
type UpdateUserRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

// AssignRoleRequest 分配主角色请求
type AssignRoleRequest struct {
	RoleName string `json:"role_name" binding:"required"`
}

// UserResponse 用户信息响应（不含密码哈希）
type UserResponse struct {
	ID      string           `json:"id"`
	Email   string           `json:"email"`
	Name    string           `json:"name"`
	Role    string           `json:"role"` // 主角色
	Roles   []string         `json:"roles,omitempty"`
	Student *StudentResponse `json:"student,omitempty"`
}

// RoleListResponse 全部角色名
type RoleListResponse struct {
	Roles []string `json:"roles"`
}
