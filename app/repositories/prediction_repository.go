package repositories

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"mahjong/app/models/history"
	"mahjong/app/models/prediction"
)

// PredictionRepository 测算记录仓库
type PredictionRepository struct {
	db *gorm.DB
}

// NewPredictionRepository 创建仓库实例
func NewPredictionRepository(db *gorm.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// CountByUserAndDate 统计用户某天的测算次数
func (r *PredictionRepository) CountByUserAndDate(ctx context.Context, userID uint64, date string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&prediction.Prediction{}).
		Where("user_id = ? AND prediction_date = ?", userID, date).
		Count(&count).Error
	return count, err
}

// FindExisting 查找同一身份信息当天已有的测算结果，不区分用户
func (r *PredictionRepository) FindExisting(ctx context.Context, id prediction.Identity) (*prediction.Prediction, error) {
	var p prediction.Prediction
	err := r.db.WithContext(ctx).
		Where("user_name = ? AND gender = ? AND birthdate = ? AND province = ? AND city = ? AND district = ? AND prediction_date = ?",
			id.Name, id.Gender, id.Birthdate, id.Province, id.City, id.District, id.Date).
		Order("created_at DESC").
		First(&p).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// CreateWithHistory 在同一事务中写入测算记录和历史索引
func (r *PredictionRepository) CreateWithHistory(ctx context.Context, p *prediction.Prediction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return fmt.Errorf("failed to create prediction: %w", err)
		}

		h := &history.History{
			UserID:         p.UserID,
			UserName:       p.Name,
			PredictionID:   p.ID,
			PredictionDate: p.PredictionDate,
			CreatedAt:      time.Now().UTC(),
		}
		if err := tx.Create(h).Error; err != nil {
			return fmt.Errorf("failed to create history: %w", err)
		}
		return nil
	})
}

// GetByID 根据 ID 获取测算记录
func (r *PredictionRepository) GetByID(ctx context.Context, id uint64) (*prediction.Prediction, error) {
	var p prediction.Prediction
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}
