// Package history 测算历史，按时间倒序展示最近的测算
package history

import (
	"time"
)

// History 只追加的测算索引，冗余了用户填写的姓名
type History struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uint64    `gorm:"index:idx_history_user_created,priority:1;not null" json:"userId"`
	UserName       string    `gorm:"type:varchar(64);not null" json:"name"`
	PredictionID   uint64    `gorm:"index;not null" json:"predictionId"`
	PredictionDate string    `gorm:"type:varchar(10);not null" json:"date"`
	CreatedAt      time.Time `gorm:"index:idx_history_user_created,priority:2;index" json:"createdAt"`
}

// TableName 指定表名
func (History) TableName() string {
	return "history"
}

// Record 历史列表中的一条，关联了测算结果
type Record struct {
	ID           uint64 `json:"id"`
	PredictionID uint64 `json:"predictionId"`
	Name         string `json:"name"`
	Direction    string `json:"direction"`
	LuckyNumber  int    `json:"luckyNumber"`
	LuckyColor   string `json:"luckyColor"`
	LuckyItem    string `json:"luckyItem"`
	Advice       string `json:"advice"`
	Date         string `json:"date"`
	CreatedAt    string `json:"createdAt"`
}
