package model

import "gorm.io/gorm"

// User 用户结构体 (用于登录认证)
type User struct {
	gorm.Model
	Username string `json:"username" gorm:"uniqueIndex;not null"` // 用户名唯一且不为空
	Password string `json:"-" gorm:"not null"`                    // 加密后的密码, 不参与序列化
	Email    string `json:"email"`
}
