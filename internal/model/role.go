package model

// ── 固定角色名 ──

const (
	RoleAdmin   = "Admin"
	RoleTeacher = "Teacher"
	RoleStudent = "Student"
)

// SeedRoleNames 启动时播种的固定角色集合
var SeedRoleNames = []string{RoleAdmin, RoleTeacher, RoleStudent}

// Role 角色表 — 对应 roles
// 创建后不可变（删除不在范围内）
type Role struct {
	RoleID int    `gorm:"primaryKey;autoIncrement"                             json:"role_id"`
	Name   string `gorm:"type:varchar(20);not null;uniqueIndex:uq_roles_name" json:"name"`
	BaseModel
}

// TableName 指定表名
func (Role) TableName() string { return "roles" }

// UserRole 用户-角色关联表 — 对应 user_roles
// 删除用户或角色时由外键级联清除关联行
type UserRole struct {
	UserID string `gorm:"type:uuid;primaryKey" json:"user_id"`
	RoleID int    `gorm:"primaryKey"           json:"role_id"`
}

// TableName 指定表名
func (UserRole) TableName() string { return "user_roles" }
