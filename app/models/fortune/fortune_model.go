// Package fortune 每日运势，所有用户共享
package fortune

import (
	"time"

	"gorm.io/datatypes"
)

// Source 运势来源
type Source string

const (
	SourceAI    Source = "ai"    // 大模型生成
	SourceLocal Source = "local" // 本地黄历推算
)

// DailyFortune 每个自然日（业务时区）至多一条
type DailyFortune struct {
	Date           string                       `gorm:"primaryKey;type:varchar(10)" json:"date"`
	LunarDate      string                       `gorm:"type:varchar(32);not null" json:"lunarDate"`
	ChineseZodiac  string                       `gorm:"type:varchar(16);not null" json:"chineseZodiac"`
	StarSign       string                       `gorm:"type:varchar(32);not null" json:"starSign"`
	LuckyDirection string                       `gorm:"type:varchar(10);not null" json:"luckyDirection"`
	LuckyNumber    int                          `gorm:"not null" json:"luckyNumber"`
	LuckyColor     string                       `gorm:"type:varchar(32)" json:"luckyColor,omitempty"`
	LuckyItem      string                       `gorm:"type:varchar(64)" json:"luckyItem,omitempty"`
	Advice         string                       `gorm:"type:text" json:"advice,omitempty"`
	GoodFor        datatypes.JSONType[[]string] `json:"goodFor"`
	BadFor         datatypes.JSONType[[]string] `json:"badFor"`
	Source         Source                       `gorm:"type:varchar(10)" json:"-"`
	CreatedAt      time.Time                    `json:"-"`
}

// TableName 指定表名
func (DailyFortune) TableName() string {
	return "daily_fortunes"
}

// Data 接口返回的运势数据
type Data struct {
	Date           string   `json:"date"`
	LunarDate      string   `json:"lunarDate"`
	ChineseZodiac  string   `json:"chineseZodiac"`
	GoodFor        []string `json:"goodFor"`
	BadFor         []string `json:"badFor"`
	StarSign       string   `json:"starSign"`
	LuckyDirection string   `json:"luckyDirection"`
	LuckyNumber    int      `json:"luckyNumber"`
	LuckyColor     string   `json:"luckyColor,omitempty"`
	LuckyItem      string   `json:"luckyItem,omitempty"`
	Advice         string   `json:"advice,omitempty"`
}

// New 由运势数据构造一条记录
func New(d Data, source Source) *DailyFortune {
	return &DailyFortune{
		Date:           d.Date,
		LunarDate:      d.LunarDate,
		ChineseZodiac:  d.ChineseZodiac,
		StarSign:       d.StarSign,
		LuckyDirection: d.LuckyDirection,
		LuckyNumber:    d.LuckyNumber,
		LuckyColor:     d.LuckyColor,
		LuckyItem:      d.LuckyItem,
		Advice:         d.Advice,
		GoodFor:        datatypes.NewJSONType(d.GoodFor),
		BadFor:         datatypes.NewJSONType(d.BadFor),
		Source:         source,
		CreatedAt:      time.Now().UTC(),
	}
}

// Data 转换为接口返回结构
func (f *DailyFortune) Data() Data {
	return Data{
		Date:           f.Date,
		LunarDate:      f.LunarDate,
		ChineseZodiac:  f.ChineseZodiac,
		GoodFor:        nonNil(f.GoodFor.Data()),
		BadFor:         nonNil(f.BadFor.Data()),
		StarSign:       f.StarSign,
		LuckyDirection: f.LuckyDirection,
		LuckyNumber:    f.LuckyNumber,
		LuckyColor:     f.LuckyColor,
		LuckyItem:      f.LuckyItem,
		Advice:         f.Advice,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
