package model

import "time"

// Platform 表示一个热榜平台
type Platform struct {
	ID   string // 平台ID，如 weibo、zhihu
	Name string // 显示名称
}

// FeedConfig 表示一个RSS源配置
type FeedConfig struct {
	ID       string // 唯一标识
	Name     string // 显示名称
	URL      string // RSS源地址
	MaxItems int    // 单源条数上限覆盖（0表示使用全局值）
}

// NewsItem 表示一条平台热榜条目，由采集器产出后不再修改
type NewsItem struct {
	Title      string `json:"title"`
	URL        string `json:"url"`
	MobileURL  string `json:"mobile_url,omitempty"`
	Rank       int    `json:"rank"`
	Source     string `json:"source"`
	SourceName string `json:"source_name"`
}

// RSSItem 表示一篇RSS文章
type RSSItem struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at,omitempty"`
	Author      string `json:"author,omitempty"`
	Summary     string `json:"summary,omitempty"`
	FeedID      string `json:"feed_id"`
	FeedName    string `json:"feed_name"`
}

// PlatformResult 单个平台的采集结果
type PlatformResult struct {
	Name  string     `json:"name"`
	Items []NewsItem `json:"items"`
	Count int        `json:"count"`
}

// FeedResult 单个RSS源的采集结果
type FeedResult struct {
	Name  string    `json:"name"`
	Items []RSSItem `json:"items"`
	Count int       `json:"count"`
}

// CollectionResult 一次采集调用的聚合结果
// 不变量：TotalCount 等于各源 Count 之和；每个请求的源要么出现在
// 结果映射中，要么出现在 Failed 列表中，二者取一
type CollectionResult struct {
	Success    bool                      `json:"success"`
	Timestamp  string                    `json:"timestamp"`
	Platforms  map[string]PlatformResult `json:"platforms,omitempty"`
	Feeds      map[string]FeedResult     `json:"feeds,omitempty"`
	TotalCount int                       `json:"total_count"`
	Failed     []string                  `json:"failed"`
	Error      string                    `json:"error,omitempty"`
}

// SearchItem 搜索命中的单条结果，附带来源与匹配得分
type SearchItem struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	SourceName  string `json:"source_name"`
	Rank        int    `json:"rank,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
	MatchScore  int    `json:"match_score"`
	Type        string `json:"type"` // platform 或 rss
}

// SearchResult 跨源搜索的聚合结果
type SearchResult struct {
	Success    bool         `json:"success"`
	Query      string       `json:"query"`
	Keywords   []string     `json:"keywords"`
	Results    []SearchItem `json:"results"`
	TotalCount int          `json:"total_count"`
	Failed     []string     `json:"failed"`
	Timestamp  string       `json:"timestamp"`
}

// CollectParams 平台采集参数
type CollectParams struct {
	Platforms     []Platform    // 为空时使用默认平台列表
	Keywords      []string      // 可选的过滤关键词（支持 /正则/ 语法）
	GlobalFilters []string      // 全局排除词，命中即剔除
	MaxItems      int           // 单平台条数上限
	Timeout       time.Duration // 单请求超时
}

// RssParams RSS采集参数
type RssParams struct {
	Feeds      []FeedConfig
	MaxItems   int           // 单源条数默认上限
	MaxAgeDays int           // 文章最大天数（0表示不过滤）
	Timeout    time.Duration // 单请求超时
}

// SearchParams 搜索参数
type SearchParams struct {
	Query     string
	Platforms []Platform
	Feeds     []FeedConfig
	MaxItems  int
}
