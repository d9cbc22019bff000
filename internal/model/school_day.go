package model

import "time"

// SchoolDay 上课日表 — 对应 school_days
// 固定七行（星期日至星期六），Name 为主键；Active 表示该天是否上课
// 不变量：任意时刻至少保留一个 Active 的上课日
type SchoolDay struct {
	Name      string    `gorm:"type:varchar(10);primaryKey"        json:"name"`
	Active    bool      `gorm:"not null;default:true"              json:"active"`
	SortOrder int       `gorm:"type:smallint;not null"             json:"sort_order"` // 周日=1 … 周六=7
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	UpdatedBy *string   `gorm:"type:uuid"                          json:"updated_by,omitempty"`
}

// TableName 指定表名
func (SchoolDay) TableName() string { return "school_days" }
