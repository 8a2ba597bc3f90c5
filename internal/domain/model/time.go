package model

import (
	"strconv"
	"strings"
	"time"
)

// Timezone 所有输出时间统一使用东八区，固定偏移避免依赖系统tzdata
var Timezone = time.FixedZone("CST", 8*60*60)

// TimeFormat 输出时间的统一格式
const TimeFormat = "2006-01-02 15:04:05"

// timeLayouts 尝试解析来源时间文本的候选格式
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02",
}

// Now 返回东八区的当前时间
func Now() time.Time {
	return time.Now().In(Timezone)
}

// FormatTimestamp 将时间格式化为统一的输出格式
func FormatTimestamp(t time.Time) string {
	return t.In(Timezone).Format(TimeFormat)
}

// ParseTime 解析来源提供的时间表示，支持数字时间戳和多种日期文本。
// 解析失败返回 false，调用方据此降级处理而不是报错
func ParseTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	// 数字时间戳：10位按秒、13位按毫秒处理
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		switch {
		case len(raw) >= 13:
			return time.UnixMilli(n).In(Timezone), true
		case n > 0:
			return time.Unix(n, 0).In(Timezone), true
		}
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.In(Timezone), true
		}
	}

	return time.Time{}, false
}

// NormalizeTimestamp 将来源时间文本规整为统一格式，无法解析时返回空串
func NormalizeTimestamp(raw string) string {
	t, ok := ParseTime(raw)
	if !ok {
		return ""
	}
	return FormatTimestamp(t)
}
