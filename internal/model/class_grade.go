package model

// ClassGrade 班级表 — 对应 class_grades
// 班级指学生群体（如"三年级一班"），不是教室
type ClassGrade struct {
	ClassGradeID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"class_grade_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	BaseModel
}

// TableName 指定表名
func (ClassGrade) TableName() string { return "class_grades" }
