package model

import (
	"time"
)

// Role 用户角色
type Role string

const (
	RoleAdmin    Role = "ADMIN"    // 管理员：掌控评选流程
	RoleJury     Role = "JURY"     // 评委：对被指派的影片投票
	RoleProducer Role = "PRODUCER" // 制片人：提交影片
)

// ParseRole 解析角色字符串
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleJury, RoleProducer:
		return Role(s), true
	}
	return "", false
}

// User 用户模型
type User struct {
	ID           int       `json:"id" gorm:"column:id_user;primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:64"`
	PasswordHash string    `json:"-" gorm:"column:password_hash"`
	Role         Role      `json:"role" gorm:"type:varchar(16);index"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
