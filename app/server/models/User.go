package models

import "time"

type User struct {
	ID string `gorm:"column:id;primaryKey;type:varchar(36)"` // 用户 ID ，创建后不再变化

	// 基础信息
	Username string `gorm:"column:username;uniqueIndex;not null"` // 用户名，全局唯一，区分大小写

	// 登录认证相关
	PasswordHash string `gorm:"column:password_hash;not null"` // 密码，使用 argon2id 储存

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}
