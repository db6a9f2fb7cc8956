// Package user 存放用户 Model 相关逻辑
package user

import (
	"time"

	"mahjong/app/models"
)

// User 以设备指纹识别的匿名用户
type User struct {
	models.BaseModel

	DeviceFingerprint string    `gorm:"type:varchar(128);uniqueIndex;not null" json:"deviceFingerprint"`
	LastLoginAt       time.Time `gorm:"index" json:"lastLoginAt"`

	models.CommonTimestampsField
}

// TableName 表名
func (User) TableName() string {
	return "users"
}
