package ai

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"

	"mahjong/app/models/fortune"
	"mahjong/app/models/prediction"
	"mahjong/pkg/almanac"
)

// Directions 合法的八个方位
var Directions = []string{"东", "南", "西", "北", "东南", "西南", "东北", "西北"}

// decodeReading 校验并转换个人测算结果，缺失的叙述字段用日历信息补齐
func decodeReading(obj map[string]interface{}, day almanac.Day, chart almanac.Chart) (prediction.Reading, error) {
	var r prediction.Reading
	var err error

	if r.Direction, err = direction(obj, "direction", "luckyDirection"); err != nil {
		return r, err
	}
	if r.LuckyNumber, err = luckyNumber(obj, "luckyNumber"); err != nil {
		return r, err
	}
	if r.LuckyColor, err = requiredString(obj, "luckyColor"); err != nil {
		return r, err
	}
	if r.LuckyItem, err = requiredString(obj, "luckyItem"); err != nil {
		return r, err
	}

	r.Advice = optionalString(obj, "advice")
	r.LunarDate = optionalString(obj, "lunarDate")
	r.ChineseZodiac = optionalString(obj, "chineseZodiac")
	r.StarSign = optionalString(obj, "starSign")
	r.GoodFor, _ = stringList(obj, "goodFor")
	r.BadFor, _ = stringList(obj, "badFor")
	r.BaziAnalysis = optionalString(obj, "baziAnalysis")
	r.Dayun = optionalString(obj, "dayun")
	r.Liunian = optionalString(obj, "liunian")
	r.Bazi = bazi(obj["bazi"])
	r.Wuxing = wuxing(obj["wuxing"])
	_ = remarshal(obj["twelvePalaces"], &r.TwelvePalaces)
	r.Shenshas = shenshas(obj["shenshas"])

	repairReading(&r, day, chart)
	return r, nil
}

func repairReading(r *prediction.Reading, day almanac.Day, chart almanac.Chart) {
	if r.Advice == "" {
		r.Advice = fmt.Sprintf("今日宜坐%s方，幸运数字为%d，可穿戴%s，随身携带%s，有助牌运。",
			r.Direction, r.LuckyNumber, r.LuckyColor, r.LuckyItem)
	}
	if r.LunarDate == "" {
		r.LunarDate = day.LunarDate
	}
	if r.ChineseZodiac == "" {
		r.ChineseZodiac = chart.Zodiac
	}
	if r.Bazi.IsZero() {
		r.Bazi = prediction.Bazi{Year: chart.Year, Month: chart.Month, Day: chart.Day, Hour: chart.Hour}
	}
	if r.BaziAnalysis == "" {
		r.BaziAnalysis = fmt.Sprintf("四柱为%s，日主%s，今日%s日，宜守%s方。",
			strings.Join(nonEmpty(r.Bazi.Year, r.Bazi.Month, r.Bazi.Day, r.Bazi.Hour), " "),
			firstRune(r.Bazi.Day), day.DayGanZhi, r.Direction)
	}
	if r.Wuxing.Summary == "" && !r.Wuxing.IsZero() {
		r.Wuxing.Summary = "五行各有所长，取其旺者而用之。"
	}
	if r.GoodFor == nil {
		r.GoodFor = []string{}
	}
	if r.BadFor == nil {
		r.BadFor = []string{}
	}
}

// decodeFortune 校验并转换每日运势
func decodeFortune(obj map[string]interface{}, day almanac.Day) (fortune.Data, error) {
	d := fortune.Data{Date: day.Solar}
	var err error

	if d.LunarDate, err = requiredString(obj, "lunarDate"); err != nil {
		return d, err
	}
	if d.ChineseZodiac, err = requiredString(obj, "chineseZodiac"); err != nil {
		return d, err
	}
	var ok bool
	if d.GoodFor, ok = stringList(obj, "goodFor"); !ok {
		return d, &ParseError{Field: "goodFor", Reason: "must be an array of strings"}
	}
	if d.BadFor, ok = stringList(obj, "badFor"); !ok {
		return d, &ParseError{Field: "badFor", Reason: "must be an array of strings"}
	}
	if d.StarSign, err = requiredString(obj, "starSign"); err != nil {
		return d, err
	}
	if d.LuckyDirection, err = direction(obj, "luckyDirection"); err != nil {
		return d, err
	}
	if d.LuckyNumber, err = luckyNumber(obj, "luckyNumber"); err != nil {
		return d, err
	}
	d.LuckyColor = optionalString(obj, "luckyColor")
	d.LuckyItem = optionalString(obj, "luckyItem")
	d.Advice = optionalString(obj, "advice")
	if d.Advice == "" {
		d.Advice = fmt.Sprintf("今日吉方在%s，幸运数字%d，宜%s。",
			d.LuckyDirection, d.LuckyNumber, strings.Join(head(d.GoodFor, 3), "、"))
	}
	return d, nil
}

func requiredString(obj map[string]interface{}, keys ...string) (string, error) {
	if s := optionalString(obj, keys...); s != "" {
		return s, nil
	}
	return "", &ParseError{Field: keys[0], Reason: "is missing or empty"}
}

func optionalString(obj map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		switch v := obj[key].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case json.Number:
			return v.String()
		}
	}
	return ""
}

func direction(obj map[string]interface{}, keys ...string) (string, error) {
	raw, err := requiredString(obj, keys...)
	if err != nil {
		return "", err
	}
	d := strings.TrimSuffix(raw, "方向")
	d = strings.TrimSuffix(strings.TrimSuffix(d, "方位"), "方")
	d = strings.TrimPrefix(d, "正")
	for _, valid := range Directions {
		if d == valid {
			return d, nil
		}
	}
	return "", &ParseError{Field: keys[0], Reason: fmt.Sprintf("has unknown direction %q", raw)}
}

func luckyNumber(obj map[string]interface{}, key string) (int, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return 0, &ParseError{Field: key, Reason: "is missing"}
	}

	var n int
	switch val := v.(type) {
	case json.Number:
		f, err := val.Float64()
		if err != nil || f != math.Trunc(f) {
			return 0, &ParseError{Field: key, Reason: "must be an integer"}
		}
		n = int(f)
	case string:
		parsed, err := cast.ToIntE(strings.TrimSpace(val))
		if err != nil {
			return 0, &ParseError{Field: key, Reason: "must be an integer"}
		}
		n = parsed
	default:
		return 0, &ParseError{Field: key, Reason: "must be an integer"}
	}

	if n < 1 || n > 9 {
		return 0, &ParseError{Field: key, Reason: "must be between 1 and 9"}
	}
	return n, nil
}

// stringList 读取字符串数组，也接受用顿号或逗号分隔的字符串
func stringList(obj map[string]interface{}, key string) ([]string, bool) {
	switch v := obj[key].(type) {
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out, true
	case string:
		fields := strings.FieldsFunc(v, func(r rune) bool {
			return r == '、' || r == '，' || r == ',' || r == ' '
		})
		if len(fields) == 0 {
			return nil, false
		}
		return fields, true
	default:
		return nil, false
	}
}

func bazi(v interface{}) prediction.Bazi {
	var b prediction.Bazi
	if s, ok := v.(string); ok {
		pillars := strings.Fields(s)
		for i, p := range pillars {
			switch i {
			case 0:
				b.Year = p
			case 1:
				b.Month = p
			case 2:
				b.Day = p
			case 3:
				b.Hour = p
			}
		}
		return b
	}
	_ = remarshal(v, &b)
	return b
}

func wuxing(v interface{}) prediction.Wuxing {
	var w prediction.Wuxing
	if s, ok := v.(string); ok {
		w.Summary = strings.TrimSpace(s)
		return w
	}
	_ = remarshal(v, &w)
	return w
}

func shenshas(v interface{}) []prediction.Shensha {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]prediction.Shensha, 0, len(items))
	for _, item := range items {
		if name, ok := item.(string); ok {
			out = append(out, prediction.Shensha{Name: name})
			continue
		}
		var s prediction.Shensha
		if remarshal(item, &s) == nil && s.Name != "" {
			out = append(out, s)
		}
	}
	return out
}

// remarshal 把解析出的任意结构转换为目标类型，类型不符时保持零值
func remarshal(v interface{}, dst interface{}) error {
	if v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

func head(s []string, n int) []string {
	if len(s) < n {
		return s
	}
	return s[:n]
}
