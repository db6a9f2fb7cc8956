// Package app 提供应用程序相关的辅助函数
package app

import (
	"time"
	// 容器镜像中可能没有时区数据库
	_ "time/tzdata"

	"mahjong/pkg/config"
)

// BusinessTimezone 业务时区，所有"今天"的判断都以该时区为准
const BusinessTimezone = "Asia/Shanghai"

// DateLayout 业务日期格式
const DateLayout = "2006-01-02"

// IsLocal 判断当前是否运行在本地环境
func IsLocal() bool {
	return config.Get("app.env") == "local"
}

// IsTesting 判断当前是否运行在测试环境
func IsTesting() bool {
	return config.Get("app.env") == "testing"
}

// Location 返回业务时区，配置项 app.timezone 可覆盖默认值
func Location() *time.Location {
	name := config.GetString("app.timezone", BusinessTimezone)
	loc, err := time.LoadLocation(name)
	if err != nil {
		// 时区数据已内嵌，只有配置写错时才会走到这里
		return time.FixedZone("CST", 8*60*60)
	}
	return loc
}

// TimenowInTimezone 获取业务时区的当前时间
func TimenowInTimezone() time.Time {
	return time.Now().In(Location())
}

// BusinessDate 返回 t 在业务时区下的日期，格式 YYYY-MM-DD
func BusinessDate(t time.Time) string {
	return t.In(Location()).Format(DateLayout)
}

// EndOfBusinessDay 返回 t 所在业务日的结束时刻
func EndOfBusinessDay(t time.Time) time.Time {
	local := t.In(Location())
	y, m, d := local.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, local.Location())
}
