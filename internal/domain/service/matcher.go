package service

import (
	"regexp"
	"strings"

	"github.com/wolfitem/newsradar/internal/infrastructure/logger"
)

// ruleDelimRegex 识别 /pattern/ 形式的正则规则，允许跟随修饰符字母
var ruleDelimRegex = regexp.MustCompile(`^/(.+)/[a-z]*$`)

// Rule 一条匹配规则：字面子串或正则二选一，构造时解析一次，之后只读
type Rule struct {
	Word        string
	DisplayName string
	Pattern     *regexp.Regexp // 非空表示正则规则
	invalid     bool           // 正则编译失败，规则永不命中
}

// ParseRule 解析一条规则文本。
// 支持 /pattern/ 正则语法与 "原词 => 别名" 显示名称后缀；
// 正则编译失败时降级为永不命中的规则，不影响同组其他规则
func ParseRule(word string) Rule {
	var displayName string

	wordConfig := strings.TrimSpace(word)
	if idx := strings.Index(wordConfig, "=>"); idx != -1 {
		alias := strings.TrimSpace(wordConfig[idx+2:])
		wordConfig = strings.TrimSpace(wordConfig[:idx])
		if alias != "" {
			displayName = alias
		}
	}

	if m := ruleDelimRegex.FindStringSubmatch(wordConfig); m != nil {
		patternStr := m[1]
		pattern, err := regexp.Compile("(?i)" + patternStr)
		if err != nil {
			logger.Warn("正则规则编译失败，该规则将被跳过", "pattern", patternStr, "error", err)
			return Rule{Word: patternStr, DisplayName: displayName, invalid: true}
		}
		return Rule{Word: patternStr, DisplayName: displayName, Pattern: pattern}
	}

	return Rule{Word: wordConfig, DisplayName: displayName}
}

// Matches 判断规则是否命中标题（titleLower 为小写后的标题）
func (r Rule) Matches(titleLower string) bool {
	if r.invalid {
		return false
	}
	if r.Pattern != nil {
		return r.Pattern.MatchString(titleLower)
	}
	return r.Word != "" && strings.Contains(titleLower, strings.ToLower(r.Word))
}

// Display 返回规则的显示名称，未配置别名时回退到规则文本
func (r Rule) Display() string {
	if r.DisplayName != "" {
		return r.DisplayName
	}
	return r.Word
}

// RuleSet 一组有序匹配规则
type RuleSet struct {
	rules []Rule
}

// NewRuleSet 解析并构造规则组，空白词被忽略
func NewRuleSet(words []string) RuleSet {
	rules := make([]Rule, 0, len(words))
	for _, w := range words {
		if strings.TrimSpace(w) == "" {
			continue
		}
		rules = append(rules, ParseRule(w))
	}
	return RuleSet{rules: rules}
}

// Empty 规则组为空时所有条目直接通过
func (s RuleSet) Empty() bool {
	return len(s.rules) == 0
}

// Len 返回规则条数
func (s RuleSet) Len() int {
	return len(s.rules)
}

// MatchScore 计算匹配得分：命中的不同规则数量，单条规则最多计一次
func (s RuleSet) MatchScore(title string) int {
	if title == "" || len(s.rules) == 0 {
		return 0
	}
	titleLower := strings.ToLower(title)

	score := 0
	for _, rule := range s.rules {
		if rule.Matches(titleLower) {
			score++
		}
	}
	return score
}

// MatchesAny 判断标题是否命中任意一条规则
func (s RuleSet) MatchesAny(title string) bool {
	if title == "" {
		return false
	}
	titleLower := strings.ToLower(title)
	for _, rule := range s.rules {
		if rule.Matches(titleLower) {
			return true
		}
	}
	return false
}

// MatchesFilters 判断标题是否命中任意全局排除词（大小写不敏感的子串匹配）
func MatchesFilters(title string, filters []string) bool {
	if title == "" || len(filters) == 0 {
		return false
	}
	titleLower := strings.ToLower(title)
	for _, f := range filters {
		f = strings.TrimSpace(f)
		if f != "" && strings.Contains(titleLower, strings.ToLower(f)) {
			return true
		}
	}
	return false
}
