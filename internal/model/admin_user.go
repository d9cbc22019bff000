package model

import "time"

// AdminUser 管理员表 — 对应 admin_users
type AdminUser struct {
	AdminUserID  string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"admin_user_id"`
	Username     string     `gorm:"type:varchar(50);not null;uniqueIndex"          json:"username"`
	PasswordHash string     `gorm:"type:varchar(100);not null"                     json:"-"`
	Role         string     `gorm:"type:varchar(20);not null;default:'Admin'"      json:"role"` // Admin | SuperAdmin
	Name         string     `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string     `gorm:"type:varchar(255);not null"                     json:"email"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	BaseModel
}

// TableName 指定表名
func (AdminUser) TableName() string { return "admin_users" }
