package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gilliek/go-opml/opml"
	"github.com/mmcdole/gofeed"
	"github.com/wolfitem/newsradar/internal/domain/model"
	"github.com/wolfitem/newsradar/internal/infrastructure/logger"
)

// maxSummaryRunes 摘要最大长度（按字符计）
const maxSummaryRunes = 500

// FeedFetchOptions 控制单个RSS源的抓取行为
type FeedFetchOptions struct {
	MaxItems   int // 条数上限（0表示不截断）
	MaxAgeDays int // 文章最大天数（0表示不过滤）
}

// RssService 定义RSS处理的领域服务接口
type RssService interface {
	// ParseOpml 解析OPML文件并返回RSS源配置列表
	ParseOpml(opmlFilePath string) ([]model.FeedConfig, error)

	// FetchFeed 抓取并解析单个RSS源。
	// 传输失败或整体解析失败返回错误；单条无效条目只跳过该条，
	// 无效的发布时间降级为空而不丢弃条目
	FetchFeed(ctx context.Context, feed model.FeedConfig, opts FeedFetchOptions) ([]model.RSSItem, error)
}

// rssService 实现RssService接口
type rssService struct {
	parser *gofeed.Parser
}

// NewRssService 创建一个新的RSS服务实例
func NewRssService() RssService {
	parser := gofeed.NewParser()
	parser.UserAgent = "NewsRadar/1.0 RSS Reader"
	// 单次请求的具体超时由调用方通过上下文控制，这里只做兜底
	parser.Client = &http.Client{Timeout: 60 * time.Second}
	return &rssService{parser: parser}
}

// ParseOpml 解析OPML文件并返回RSS源配置列表
func (s *rssService) ParseOpml(opmlFilePath string) ([]model.FeedConfig, error) {
	logger.Info("开始解析OPML文件", "file", opmlFilePath)

	doc, err := opml.NewOPMLFromFile(opmlFilePath)
	if err != nil {
		logger.Error("解析OPML文件失败", "file", opmlFilePath, "error", err)
		return nil, fmt.Errorf("解析OPML文件失败: %w", err)
	}

	var feeds []model.FeedConfig
	for _, outline := range doc.Outlines() {
		feeds = append(feeds, extractFeeds(outline)...)
	}

	// 补齐缺失的ID，保证每个源都有稳定标识
	for i := range feeds {
		if feeds[i].ID == "" {
			feeds[i].ID = fmt.Sprintf("rss_%d", i)
		}
		if feeds[i].Name == "" {
			feeds[i].Name = feeds[i].ID
		}
	}

	logger.Info("OPML文件解析完成", "file", opmlFilePath, "feeds_count", len(feeds))
	return feeds, nil
}

// extractFeeds 递归提取outline中的RSS源
func extractFeeds(outline opml.Outline) []model.FeedConfig {
	var feeds []model.FeedConfig

	if outline.XMLURL != "" {
		feeds = append(feeds, model.FeedConfig{
			ID:   feedIDFromTitle(outline.Title),
			Name: outline.Title,
			URL:  outline.XMLURL,
		})
	}

	for _, child := range outline.Outlines {
		feeds = append(feeds, extractFeeds(child)...)
	}

	return feeds
}

// feedIDFromTitle 由标题生成稳定的源ID
func feedIDFromTitle(title string) string {
	id := strings.ToLower(strings.TrimSpace(title))
	id = strings.Join(strings.Fields(id), "-")
	return id
}

// FetchFeed 抓取并解析单个RSS源
func (s *rssService) FetchFeed(ctx context.Context, feed model.FeedConfig, opts FeedFetchOptions) ([]model.RSSItem, error) {
	logger.Info("开始获取RSS源", "feed", feed.ID, "url", feed.URL)

	parsed, err := s.parser.ParseURLWithContext(feed.URL, ctx)
	if err != nil {
		logger.Error("解析RSS源失败", "feed", feed.ID, "url", feed.URL, "error", err)
		return nil, fmt.Errorf("解析RSS源失败: %w", err)
	}

	var cutoff time.Time
	if opts.MaxAgeDays > 0 {
		cutoff = model.Now().AddDate(0, 0, -opts.MaxAgeDays)
	}

	items := make([]model.RSSItem, 0, len(parsed.Items))
	skipped := 0
	for _, entry := range parsed.Items {
		if entry == nil {
			skipped++
			continue
		}
		title := strings.TrimSpace(entry.Title)
		if title == "" {
			// 条目之间相互独立，单条无效只跳过该条
			skipped++
			continue
		}

		publishedAt, publishedTime := entryPublished(entry)

		// 时效过滤：超过 MaxAgeDays 的文章丢弃，无法解析时间的保留
		if !cutoff.IsZero() && !publishedTime.IsZero() && publishedTime.Before(cutoff) {
			continue
		}

		items = append(items, model.RSSItem{
			Title:       title,
			URL:         entry.Link,
			PublishedAt: publishedAt,
			Author:      entryAuthor(entry),
			Summary:     entrySummary(entry),
			FeedID:      feed.ID,
			FeedName:    feed.Name,
		})
	}

	if opts.MaxItems > 0 && len(items) > opts.MaxItems {
		items = items[:opts.MaxItems]
	}

	logger.Info("RSS源获取完成", "feed", feed.ID, "items_count", len(items), "skipped_count", skipped)
	return items, nil
}

// entryPublished 提取条目的发布时间：优先使用解析好的时间，
// 回退到原始文本，二者都失败时降级为空
func entryPublished(entry *gofeed.Item) (string, time.Time) {
	if entry.PublishedParsed != nil {
		return model.FormatTimestamp(*entry.PublishedParsed), entry.PublishedParsed.In(model.Timezone)
	}
	if entry.UpdatedParsed != nil {
		return model.FormatTimestamp(*entry.UpdatedParsed), entry.UpdatedParsed.In(model.Timezone)
	}

	raw := entry.Published
	if raw == "" {
		raw = entry.Updated
	}
	if t, ok := model.ParseTime(raw); ok {
		return model.FormatTimestamp(t), t
	}
	return "", time.Time{}
}

// entryAuthor 提取条目作者
func entryAuthor(entry *gofeed.Item) string {
	if entry.Author != nil && entry.Author.Name != "" {
		return entry.Author.Name
	}
	if len(entry.Authors) > 0 && entry.Authors[0] != nil {
		return entry.Authors[0].Name
	}
	return ""
}

// entrySummary 提取并清洗条目摘要：去除HTML标签后截断
func entrySummary(entry *gofeed.Item) string {
	raw := entry.Description
	if raw == "" {
		raw = entry.Content
	}
	if raw == "" {
		return ""
	}

	text := stripHTMLTags(raw)
	runes := []rune(text)
	if len(runes) > maxSummaryRunes {
		text = string(runes[:maxSummaryRunes])
	}
	return strings.TrimSpace(text)
}

// stripHTMLTags 去除HTML标签，只保留纯文本
func stripHTMLTags(html string) string {
	if html == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		logger.Warn("解析HTML失败，返回原始内容", "error", err)
		return html
	}

	text := strings.TrimSpace(doc.Text())
	// 将连续的空白字符替换为单个空格
	return strings.Join(strings.Fields(text), " ")
}
