package model

// AttendanceRecord 考勤记录表 — 对应 attendance_records
// ClockType 为 true 表示签到（clock-in），false 表示签退（clock-out）
// 经纬度在打卡瞬间采集；Date 仅存日期，不含时间部分
type AttendanceRecord struct {
	ID        int      `gorm:"primaryKey;autoIncrement"        json:"id"`
	StudentID int      `gorm:"not null;index"                  json:"student_id"`
	Date      DateOnly `gorm:"type:date;not null"              json:"date"`
	Latitude  float64  `gorm:"not null;default:0"              json:"latitude"`
	Longitude float64  `gorm:"not null;default:0"              json:"longitude"`
	ClockType bool     `gorm:"not null;default:true"           json:"clock_type"`
	BaseModel

	// 关联
	Student *Student `gorm:"foreignKey:StudentID;references:ID" json:"-"`
}

// TableName 指定表名
func (AttendanceRecord) TableName() string { return "attendance_records" }
