package domain

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleStudent = "student"
	RoleParent  = "parent"
	RoleTeacher = "teacher"
)

type User struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	FullName          string         `gorm:"column:full_name" json:"full_name,omitempty"`
	Email             string         `gorm:"column:email;unique;not null" json:"email"`
	Password          string         `gorm:"column:password;not null" json:"-"`
	Role              string         `gorm:"column:role;not null;default:student" json:"role"`
	ParentTeacherLink string         `gorm:"column:parent_teacher_link;index" json:"parent_teacher_link,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}
