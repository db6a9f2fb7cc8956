// Package almanac 黄历与八字推算，为提示词提供准确的日历事实
package almanac

import (
	"container/list"
	"fmt"
	"time"

	"github.com/6tail/lunar-go/calendar"
)

// Day 某一天的黄历信息
type Day struct {
	Solar        string // 2006-01-02
	Weekday      string // 星期一
	LunarDate    string // 三月廿三
	YearGanZhi   string
	MonthGanZhi  string
	DayGanZhi    string
	YearZodiac   string
	DayZodiac    string
	Mansion      string // 二十八宿，如 角宿
	Yi           []string
	Ji           []string
	XiDirection  string // 喜神方位
	CaiDirection string // 财神方位
}

// Chart 出生时刻的四柱
type Chart struct {
	Year      string
	Month     string
	Day       string
	Hour      string // 未提供出生时辰时为空
	Zodiac    string
	LunarDate string
}

// DayFacts 返回 t 所在日期（按 t 自身时区）的黄历
func DayFacts(t time.Time) Day {
	solar := calendar.NewSolarFromYmd(t.Year(), int(t.Month()), t.Day())
	lunar := solar.GetLunar()

	return Day{
		Solar:        t.Format("2006-01-02"),
		Weekday:      "星期" + solar.GetWeekInChinese(),
		LunarDate:    lunar.GetMonthInChinese() + "月" + lunar.GetDayInChinese(),
		YearGanZhi:   lunar.GetYearInGanZhi(),
		MonthGanZhi:  lunar.GetMonthInGanZhi(),
		DayGanZhi:    lunar.GetDayInGanZhi(),
		YearZodiac:   lunar.GetYearShengXiao(),
		DayZodiac:    lunar.GetDayShengXiao(),
		Mansion:      lunar.GetXiu() + "宿",
		Yi:           toStrings(lunar.GetDayYi()),
		Ji:           toStrings(lunar.GetDayJi()),
		XiDirection:  lunar.GetDayPositionXiDesc(),
		CaiDirection: lunar.GetDayPositionCaiDesc(),
	}
}

// BirthChart 根据出生时间排四柱；hasHour 为 false 时不排时柱
func BirthChart(birth time.Time, hasHour bool) Chart {
	var solar *calendar.Solar
	if hasHour {
		solar = calendar.NewSolar(birth.Year(), int(birth.Month()), birth.Day(), birth.Hour(), birth.Minute(), 0)
	} else {
		solar = calendar.NewSolarFromYmd(birth.Year(), int(birth.Month()), birth.Day())
	}
	lunar := solar.GetLunar()
	eightChar := lunar.GetEightChar()

	chart := Chart{
		Year:      eightChar.GetYear(),
		Month:     eightChar.GetMonth(),
		Day:       eightChar.GetDay(),
		Zodiac:    lunar.GetYearShengXiao(),
		LunarDate: fmt.Sprintf("%s年%s月%s", lunar.GetYearInGanZhi(), lunar.GetMonthInChinese(), lunar.GetDayInChinese()),
	}
	if hasHour {
		chart.Hour = eightChar.GetTime()
	}
	return chart
}

func toStrings(l *list.List) []string {
	if l == nil {
		return []string{}
	}
	out := make([]string, 0, l.Len())
	for e := l.Front(); e != nil; e = e.Next() {
		if s, ok := e.Value.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
