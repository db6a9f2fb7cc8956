package repositories

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mahjong/app/models/user"
)

// UserRepository 用户仓库
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建仓库实例
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetOrCreate 根据设备指纹获取用户，不存在则创建；每次调用都会刷新最后登录时间
func (r *UserRepository) GetOrCreate(ctx context.Context, fingerprint string) (*user.User, error) {
	now := time.Now().UTC()
	db := r.db.WithContext(ctx)

	// 并发首次访问时依赖唯一索引，冲突的一方什么也不做再读回
	candidate := &user.User{DeviceFingerprint: fingerprint, LastLoginAt: now}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "device_fingerprint"}},
		DoNothing: true,
	}).Create(candidate).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	var u user.User
	if err := db.Where("device_fingerprint = ?", fingerprint).First(&u).Error; err != nil {
		return nil, fmt.Errorf("load user: %w", translate(err))
	}

	if u.LastLoginAt.Before(now) {
		if err := db.Model(&u).Update("last_login_at", now).Error; err != nil {
			return nil, fmt.Errorf("touch user: %w", err)
		}
	}
	return &u, nil
}

