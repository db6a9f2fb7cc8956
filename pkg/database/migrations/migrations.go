package migrations

import (
	"mahjong/app/models/fortune"
	"mahjong/app/models/history"
	"mahjong/app/models/prediction"
	"mahjong/app/models/user"
)

// RegisterTables 返回需要迁移的表的模型列表
func RegisterTables() []interface{} {
	return []interface{}{
		&user.User{},
		&prediction.Prediction{},
		&history.History{},
		&fortune.DailyFortune{},
	}
}
