// Package prediction 麻将方位测算记录
package prediction

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"mahjong/app/models"
)

// Prediction 个人测算记录，同一身份信息同一天只生成一次
type Prediction struct {
	models.BaseModel

	UserID    uint64 `gorm:"index:idx_prediction_user_date,priority:1;not null" json:"userId"`
	Name      string `gorm:"column:user_name;type:varchar(64);index:idx_prediction_identity,priority:1;not null" json:"name"`
	Gender    string `gorm:"type:varchar(10);index:idx_prediction_identity,priority:2" json:"gender,omitempty"`
	Birthdate string `gorm:"type:varchar(20);index:idx_prediction_identity,priority:3;not null" json:"birthdate"`
	Province  string `gorm:"type:varchar(64);index:idx_prediction_identity,priority:4;not null" json:"province"`
	City      string `gorm:"type:varchar(64);index:idx_prediction_identity,priority:5;not null" json:"city"`
	District  string `gorm:"type:varchar(64);index:idx_prediction_identity,priority:6;not null" json:"district"`

	Direction   string `gorm:"type:varchar(10);not null" json:"direction"`
	LuckyNumber int    `gorm:"not null" json:"luckyNumber"`
	LuckyColor  string `gorm:"type:varchar(32)" json:"luckyColor"`
	LuckyItem   string `gorm:"type:varchar(64)" json:"luckyItem"`
	Advice      string `gorm:"type:text" json:"advice"`

	LunarDate     string                            `gorm:"type:varchar(32)" json:"lunarDate,omitempty"`
	ChineseZodiac string                            `gorm:"type:varchar(16)" json:"chineseZodiac,omitempty"`
	StarSign      string                            `gorm:"type:varchar(32)" json:"starSign,omitempty"`
	GoodFor       datatypes.JSONType[[]string]      `json:"goodFor"`
	BadFor        datatypes.JSONType[[]string]      `json:"badFor"`
	Bazi          datatypes.JSONType[Bazi]          `json:"bazi"`
	BaziAnalysis  string                            `gorm:"type:text" json:"baziAnalysis,omitempty"`
	Wuxing        datatypes.JSONType[Wuxing]        `json:"wuxing"`
	TwelvePalaces datatypes.JSONType[TwelvePalaces] `json:"twelvePalaces"`
	Dayun         string                            `gorm:"type:text" json:"dayun,omitempty"`
	Liunian       string                            `gorm:"type:text" json:"liunian,omitempty"`
	Shenshas      datatypes.JSONType[[]Shensha]     `json:"shenshas"`

	// 业务时区下的日期，YYYY-MM-DD
	PredictionDate string    `gorm:"type:varchar(10);index:idx_prediction_identity,priority:7;index:idx_prediction_user_date,priority:2;not null" json:"date"`
	CreatedAt      time.Time `gorm:"index" json:"createdAt"`
}

// TableName 指定表名
func (Prediction) TableName() string {
	return "predictions"
}

// BeforeSave GORM 钩子
func (p *Prediction) BeforeSave(tx *gorm.DB) error {
	return p.Validate()
}
