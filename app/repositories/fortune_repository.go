package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mahjong/app/models/fortune"
)

// FortuneRepository 每日运势仓库
type FortuneRepository struct {
	db *gorm.DB
}

// NewFortuneRepository 创建仓库实例
func NewFortuneRepository(db *gorm.DB) *FortuneRepository {
	return &FortuneRepository{db: db}
}

// GetByDate 获取某天的运势
func (r *FortuneRepository) GetByDate(ctx context.Context, date string) (*fortune.DailyFortune, error) {
	var f fortune.DailyFortune
	if err := r.db.WithContext(ctx).Where("date = ?", date).First(&f).Error; err != nil {
		return nil, translate(err)
	}
	return &f, nil
}

// CreateOrGet 插入运势，若当天已存在则保留已有记录；返回数据库中最终的那一条
func (r *FortuneRepository) CreateOrGet(ctx context.Context, f *fortune.DailyFortune) (*fortune.DailyFortune, error) {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoNothing: true,
	}).Create(f).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save daily fortune: %w", err)
	}
	return r.GetByDate(ctx, f.Date)
}
