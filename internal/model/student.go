package model

// Student 学生档案表 — 对应 students
// 与 User 一对一：user_id 唯一且必填；删除用户时档案级联删除
type Student struct {
	ID     int    `gorm:"primaryKey;autoIncrement"                                  json:"id"`
	Name   string `gorm:"type:varchar(100);not null"                                json:"name"`
	UserID string `gorm:"type:uuid;not null;uniqueIndex:uq_students_user_id"        json:"user_id"`
	BaseModel

	// 关联：删除学生时考勤记录由外键级联删除
	AttendanceRecords []AttendanceRecord `gorm:"foreignKey:StudentID;references:ID;constraint:OnDelete:CASCADE" json:"attendance_records"`
}

// TableName 指定表名
func (Student) TableName() string { return "students" }
