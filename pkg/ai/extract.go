package ai

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

// Strategy 从模型回复中提取 JSON 的方式
type Strategy string

const (
	StrategyFenced Strategy = "fenced" // ```json ... ``` 代码块
	StrategyDirect Strategy = "direct" // 整个回复就是 JSON
	StrategyBraces Strategy = "braces" // 夹在文字中间的第一个完整 {...}
)

// strategies 按顺序尝试
var strategies = []struct {
	name       Strategy
	candidates func(string) []string
}{
	{StrategyFenced, fencedCandidates},
	{StrategyDirect, func(s string) []string { return []string{strings.TrimSpace(s)} }},
	{StrategyBraces, braceCandidates},
}

var fencedPattern = regexp.MustCompile("(?s)```[a-zA-Z]*[ \t]*\r?\n?(.*?)```")

// Extract 按顺序尝试各个策略，返回第一个能解析为 JSON 对象的结果
func Extract(content string) (map[string]interface{}, Strategy, error) {
	for _, s := range strategies {
		for _, candidate := range s.candidates(content) {
			if obj, ok := decodeObject(candidate); ok {
				return obj, s.name, nil
			}
		}
	}
	return nil, "", &ParseError{Reason: "no JSON object found in reply"}
}

func fencedCandidates(content string) []string {
	matches := fencedPattern.FindAllStringSubmatch(content, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, strings.TrimSpace(m[1]))
	}
	return out
}

// braceCandidates 从每个 { 开始找与之配对的 }，跳过字符串内的括号
func braceCandidates(content string) []string {
	var out []string
	for start := strings.IndexByte(content, '{'); start >= 0; {
		if end := matchBrace(content, start); end > start {
			out = append(out, content[start:end+1])
		}
		next := strings.IndexByte(content[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return out
}

func matchBrace(s string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func decodeObject(candidate string) (map[string]interface{}, bool) {
	if candidate == "" || candidate[0] != '{' {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(candidate)))
	dec.UseNumber()

	var obj map[string]interface{}
	if err := dec.Decode(&obj); err != nil || obj == nil {
		return nil, false
	}
	// 对象之后不允许再有别的 JSON 值
	if dec.More() {
		return nil, false
	}
	return obj, true
}
