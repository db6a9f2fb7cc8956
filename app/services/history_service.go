package services

import (
	"context"

	"mahjong/app/models/history"
	"mahjong/app/repositories"
)

// HistoryService 测算历史
type HistoryService struct {
	users   *repositories.UserRepository
	history *repositories.HistoryRepository
}

// NewHistoryService 创建服务
func NewHistoryService(users *repositories.UserRepository, history *repositories.HistoryRepository) *HistoryService {
	return &HistoryService{users: users, history: history}
}

// Recent 全站最近的测算
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]history.Record, error) {
	return s.history.Recent(ctx, limit)
}

// ForDevice 某台设备的测算，设备首次出现时会建立用户
func (s *HistoryService) ForDevice(ctx context.Context, fingerprint string, limit int) ([]history.Record, error) {
	u, err := s.users.GetOrCreate(ctx, fingerprint)
	if err != nil {
		return nil, err
	}
	return s.history.ByUser(ctx, u.ID, limit)
}
