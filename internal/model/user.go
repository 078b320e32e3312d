package model

// User 用户表 — 对应 users
// 密码哈希由服务层用 bcrypt 生成，JSON 序列化时不输出
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email" json:"email"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	BaseModel

	// 关联
	Roles   []Role   `gorm:"many2many:user_roles;foreignKey:UserID;joinForeignKey:UserID;references:RoleID;joinReferences:RoleID" json:"roles,omitempty"`
	Student *Student `gorm:"foreignKey:UserID;references:UserID" json:"student,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// PrimaryRole 返回用户的主角色名
// 底层关联表允许多角色，但业务上恒保持单角色；取第一个即可
func (u *User) PrimaryRole() string {
	if len(u.Roles) == 0 {
		return ""
	}
	return u.Roles[0].Name
}
