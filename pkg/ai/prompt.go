package ai

import (
	"fmt"
	"strings"
	"time"

	"mahjong/pkg/almanac"
)

const (
	fortuneSystemPrompt = "你是一位精通传统黄历与命理的大师，负责撰写每日运势。日历事实已经给出，请直接使用，不要自行推算日期。只返回一个 JSON 对象，不要输出任何其他内容。"
	readingSystemPrompt = "你是一位精通八字命理的大师，擅长根据个人信息推算麻将座位方位。四柱和日历事实已经给出，请直接使用，不要自行推算。只返回一个 JSON 对象，不要输出任何其他内容。"
)

// fortunePrompt 每日运势提示词
func fortunePrompt(day almanac.Day) string {
	var b strings.Builder
	b.WriteString("请生成今日运势。\n\n")
	writeDayFacts(&b, day)
	b.WriteString(`
请以 JSON 返回以下字段：
- lunarDate: 农历日期，直接使用上面给出的农历日期
- chineseZodiac: 今日生肖
- goodFor: 宜做事项，字符串数组
- badFor: 忌做事项，字符串数组
- starSign: 今日星宿
- luckyDirection: 吉利方位（东、南、西、北、东南、西南、东北、西北之一）
- luckyNumber: 幸运数字，1 到 9 的整数
- luckyColor: 幸运颜色
- luckyItem: 幸运物品
- advice: 今日运势建议
`)
	return b.String()
}

// readingPrompt 个人麻将方位测算提示词
func readingPrompt(p Params, day almanac.Day, chart almanac.Chart) string {
	var b strings.Builder
	b.WriteString("请为以下用户测算今日打麻将的最佳座位方位。\n\n用户信息：\n")
	fmt.Fprintf(&b, "- 姓名：%s\n", p.Name)
	if g := genderText(p.Gender); g != "" {
		fmt.Fprintf(&b, "- 性别：%s\n", g)
	}
	if p.HasHour {
		fmt.Fprintf(&b, "- 出生时间：%s\n", p.Birth.Format("2006年1月2日 15时04分"))
	} else {
		fmt.Fprintf(&b, "- 出生日期：%s（时辰不详）\n", p.Birth.Format("2006年1月2日"))
	}
	fmt.Fprintf(&b, "- 出生地点：%s %s %s\n", p.Province, p.City, p.District)
	fmt.Fprintf(&b, "- 生肖：%s\n", chart.Zodiac)
	fmt.Fprintf(&b, "- 四柱：年柱 %s，月柱 %s，日柱 %s", chart.Year, chart.Month, chart.Day)
	if chart.Hour != "" {
		fmt.Fprintf(&b, "，时柱 %s", chart.Hour)
	}
	b.WriteString("\n\n")
	writeDayFacts(&b, day)
	b.WriteString(`
请以 JSON 返回以下字段：
- direction: 今日麻将最佳方位（东、南、西、北、东南、西南、东北、西北之一）
- luckyNumber: 幸运数字，1 到 9 的整数
- luckyColor: 幸运颜色
- luckyItem: 幸运物品
- advice: 个性化麻将建议，结合方位、数字、颜色和物品
- lunarDate: 今日农历日期
- chineseZodiac: 用户生肖
- starSign: 用户星座
- goodFor: 今日宜，字符串数组
- badFor: 今日忌，字符串数组
- bazi: 四柱，对象 {"year","month","day","hour"}
- baziAnalysis: 八字分析
- wuxing: 五行分析，对象 {"summary","gold","wood","water","fire","earth"}
- twelvePalaces: 十二宫，对象 {"minggong","wealth","health","travel"}
- dayun: 大运
- liunian: 流年
- shenshas: 神煞数组，每项 {"name","type","description","effect"}
`)
	return b.String()
}

func writeDayFacts(b *strings.Builder, day almanac.Day) {
	b.WriteString("日历事实：\n")
	fmt.Fprintf(b, "- 公历：%s %s\n", formatSolar(day.Solar), day.Weekday)
	fmt.Fprintf(b, "- 农历：%s年%s\n", day.YearGanZhi, day.LunarDate)
	fmt.Fprintf(b, "- 干支：%s年 %s月 %s日\n", day.YearGanZhi, day.MonthGanZhi, day.DayGanZhi)
	fmt.Fprintf(b, "- 星宿：%s\n", day.Mansion)
	if day.XiDirection != "" {
		fmt.Fprintf(b, "- 喜神方位：%s，财神方位：%s\n", day.XiDirection, day.CaiDirection)
	}
	if len(day.Yi) > 0 {
		fmt.Fprintf(b, "- 黄历宜：%s\n", strings.Join(day.Yi, "、"))
	}
	if len(day.Ji) > 0 {
		fmt.Fprintf(b, "- 黄历忌：%s\n", strings.Join(day.Ji, "、"))
	}
}

func formatSolar(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("2006年1月2日")
}

func genderText(gender string) string {
	switch gender {
	case "male":
		return "男"
	case "female":
		return "女"
	default:
		return ""
	}
}
