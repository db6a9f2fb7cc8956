package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"mahjong/app/models/history"
)

// HistoryRepository 历史记录仓库
type HistoryRepository struct {
	db  *gorm.DB
	loc *time.Location
}

// NewHistoryRepository 创建仓库实例，loc 用于格式化 createdAt
func NewHistoryRepository(db *gorm.DB, loc *time.Location) *HistoryRepository {
	return &HistoryRepository{db: db, loc: loc}
}

type historyRow struct {
	ID           uint64
	PredictionID uint64
	Name         string
	Direction    string
	LuckyNumber  int
	LuckyColor   string
	LuckyItem    string
	Advice       string
	Date         string
	CreatedAt    time.Time
}

// Recent 全站最近的测算
func (r *HistoryRepository) Recent(ctx context.Context, limit int) ([]history.Record, error) {
	return r.list(ctx, r.query(ctx), limit)
}

// ByUser 某个用户最近的测算
func (r *HistoryRepository) ByUser(ctx context.Context, userID uint64, limit int) ([]history.Record, error) {
	return r.list(ctx, r.query(ctx).Where("h.user_id = ?", userID), limit)
}

func (r *HistoryRepository) query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("history AS h").
		Select(`h.id AS id,
			h.prediction_id AS prediction_id,
			h.user_name AS name,
			p.direction AS direction,
			p.lucky_number AS lucky_number,
			p.lucky_color AS lucky_color,
			p.lucky_item AS lucky_item,
			p.advice AS advice,
			p.prediction_date AS date,
			h.created_at AS created_at`).
		Joins("JOIN predictions AS p ON h.prediction_id = p.id")
}

func (r *HistoryRepository) list(_ context.Context, query *gorm.DB, limit int) ([]history.Record, error) {
	var rows []historyRow
	if err := query.Order("h.created_at DESC").Order("h.id DESC").Limit(limit).Scan(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]history.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, history.Record{
			ID:           row.ID,
			PredictionID: row.PredictionID,
			Name:         row.Name,
			Direction:    row.Direction,
			LuckyNumber:  row.LuckyNumber,
			LuckyColor:   row.LuckyColor,
			LuckyItem:    row.LuckyItem,
			Advice:       row.Advice,
			Date:         row.Date,
			CreatedAt:    row.CreatedAt.In(r.loc).Format(time.RFC3339),
		})
	}
	return records, nil
}
