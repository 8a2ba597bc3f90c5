package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/wolfitem/newsradar/internal/domain/model"
	"github.com/wolfitem/newsradar/internal/domain/service"
	"github.com/wolfitem/newsradar/internal/infrastructure/logger"
	"github.com/wolfitem/newsradar/internal/middleware"
)

// 各操作的默认参数，与上游接口的推荐值保持一致
const (
	defaultPlatformMaxItems = 50
	defaultFeedMaxItems     = 20
	defaultPlatformTimeout  = 10 * time.Second
	defaultFeedTimeout      = 15 * time.Second
	defaultConcurrency      = 3
	defaultRequestInterval  = 100 * time.Millisecond
	searchRankSentinel      = 999 // RSS条目无排名，检索排序时垫底
)

// CollectorService 定义新闻采集的应用服务接口。
// 四个操作都是一次性的同步调用，单个源失败只会记入 Failed 列表，
// 不会中断其他源，也不会影响整体 Success 标志
type CollectorService interface {
	// CollectNews 采集平台热榜，可选按关键词过滤
	CollectNews(ctx context.Context, params model.CollectParams) model.CollectionResult

	// CollectRss 采集RSS源文章，按时效过滤
	CollectRss(ctx context.Context, params model.RssParams) model.CollectionResult

	// CollectByTopic 按预定义主题词组采集平台热榜
	CollectByTopic(ctx context.Context, topic string, params model.CollectParams) model.CollectionResult

	// Search 跨平台与RSS源检索，结果按匹配得分排序
	Search(ctx context.Context, params model.SearchParams) model.SearchResult
}

// Options 采集服务的构造配置
type Options struct {
	APIURL          string        // 热榜接口地址（空使用默认）
	Concurrency     int           // 源抓取并发数
	RequestInterval time.Duration // 同一接口的请求间隔
}

// collectorService 实现CollectorService接口
type collectorService struct {
	platformService service.PlatformService
	rssService      service.RssService
	pacer           *middleware.RequestPacer
	concurrency     int
}

// NewCollectorService 创建一个新的采集服务实例
func NewCollectorService(opts Options) CollectorService {
	return NewCollectorServiceWith(
		service.NewPlatformService(opts.APIURL),
		service.NewRssService(),
		opts,
	)
}

// NewCollectorServiceWith 以指定的领域服务创建采集服务，便于测试替换
func NewCollectorServiceWith(platformSvc service.PlatformService, rssSvc service.RssService, opts Options) CollectorService {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	interval := opts.RequestInterval
	if interval < 0 {
		interval = defaultRequestInterval
	}
	return &collectorService{
		platformService: platformSvc,
		rssService:      rssSvc,
		pacer:           middleware.NewRequestPacer(interval),
		concurrency:     concurrency,
	}
}

// sourceOutcome 单个源的抓取结果，成功与失败二选一
type sourceOutcome struct {
	id        string
	name      string
	newsItems []model.NewsItem
	rssItems  []model.RSSItem
	err       error
}

// CollectNews 采集平台热榜
func (s *collectorService) CollectNews(ctx context.Context, params model.CollectParams) model.CollectionResult {
	defer logger.TimeTrack("CollectNews")()
	logger.LogMemStatsOnce()

	if params.MaxItems <= 0 {
		params.MaxItems = defaultPlatformMaxItems
	}
	if params.Timeout <= 0 {
		params.Timeout = defaultPlatformTimeout
	}

	platforms := normalizePlatforms(params.Platforms)
	rules := service.NewRuleSet(params.Keywords)
	logger.Info("开始采集平台热榜",
		"platforms_count", len(platforms),
		"rules_count", rules.Len(),
		"max_items", params.MaxItems)

	result := model.CollectionResult{
		Success:   true,
		Timestamp: model.FormatTimestamp(model.Now()),
		Platforms: make(map[string]model.PlatformResult, len(platforms)),
		Failed:    []string{},
	}

	metrics := middleware.NewMetricsCollector()
	outcomes := make([]sourceOutcome, len(platforms))

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.concurrency)
	for i, p := range platforms {
		wg.Add(1)
		go func(i int, p model.Platform) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			outcomes[i] = s.fetchPlatform(ctx, p, params.MaxItems, params.Timeout, metrics)
		}(i, p)
	}
	wg.Wait()

	// 按请求顺序合并，保证 Failed 列表反映尝试顺序
	for _, oc := range outcomes {
		if oc.err != nil {
			logger.Warn("平台采集失败", "platform", oc.id, "error", oc.err)
			result.Failed = append(result.Failed, oc.id)
			continue
		}
		items := filterNewsItems(oc.newsItems, rules, params.GlobalFilters)
		result.Platforms[oc.id] = model.PlatformResult{
			Name:  oc.name,
			Items: items,
			Count: len(items),
		}
		result.TotalCount += len(items)
	}

	metrics.LogSummary()
	logger.Info("平台热榜采集完成",
		"total_count", result.TotalCount,
		"failed_count", len(result.Failed))
	return result
}

// fetchPlatform 抓取单个平台，未知平台ID直接记为失败不发起请求
func (s *collectorService) fetchPlatform(ctx context.Context, p model.Platform, maxItems int, timeout time.Duration, metrics *middleware.MetricsCollector) sourceOutcome {
	resolved, ok := service.LookupPlatform(p.ID)
	if !ok {
		return sourceOutcome{id: p.ID, err: fmt.Errorf("未知平台: %s", p.ID)}
	}
	if p.Name != "" {
		resolved.Name = p.Name
	}

	if err := s.pacer.Wait(ctx); err != nil {
		return sourceOutcome{id: resolved.ID, err: fmt.Errorf("等待请求间隔被中断: %w", err)}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	items, err := s.platformService.FetchPlatform(fetchCtx, resolved, maxItems)
	metrics.RecordFetch(resolved.ID, time.Since(start), len(items), err == nil)
	if err != nil {
		return sourceOutcome{id: resolved.ID, err: err}
	}
	return sourceOutcome{id: resolved.ID, name: resolved.Name, newsItems: items}
}

// CollectRss 采集RSS源文章
func (s *collectorService) CollectRss(ctx context.Context, params model.RssParams) model.CollectionResult {
	defer logger.TimeTrack("CollectRss")()

	if params.MaxItems <= 0 {
		params.MaxItems = defaultFeedMaxItems
	}
	// MaxAgeDays 原样透传：0表示不做时效过滤，默认窗口由调用方决定
	if params.Timeout <= 0 {
		params.Timeout = defaultFeedTimeout
	}

	feeds := normalizeFeeds(params.Feeds)
	logger.Info("开始采集RSS源",
		"feeds_count", len(feeds),
		"max_age_days", params.MaxAgeDays,
		"max_items", params.MaxItems)

	result := model.CollectionResult{
		Success:   true,
		Timestamp: model.FormatTimestamp(model.Now()),
		Feeds:     make(map[string]model.FeedResult, len(feeds)),
		Failed:    []string{},
	}

	metrics := middleware.NewMetricsCollector()
	outcomes := make([]sourceOutcome, len(feeds))

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.concurrency)
	for i, feed := range feeds {
		wg.Add(1)
		go func(i int, feed model.FeedConfig) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			outcomes[i] = s.fetchFeed(ctx, feed, params, metrics)
		}(i, feed)
	}
	wg.Wait()

	for _, oc := range outcomes {
		if oc.err != nil {
			logger.Warn("RSS源采集失败", "feed", oc.id, "error", oc.err)
			result.Failed = append(result.Failed, oc.id)
			continue
		}
		result.Feeds[oc.id] = model.FeedResult{
			Name:  oc.name,
			Items: oc.rssItems,
			Count: len(oc.rssItems),
		}
		result.TotalCount += len(oc.rssItems)
	}

	metrics.LogSummary()
	logger.Info("RSS源采集完成",
		"total_count", result.TotalCount,
		"failed_count", len(result.Failed))
	return result
}

// fetchFeed 抓取单个RSS源
func (s *collectorService) fetchFeed(ctx context.Context, feed model.FeedConfig, params model.RssParams, metrics *middleware.MetricsCollector) sourceOutcome {
	if feed.URL == "" {
		return sourceOutcome{id: feed.ID, err: fmt.Errorf("RSS源缺少URL: %s", feed.ID)}
	}

	if err := s.pacer.Wait(ctx); err != nil {
		return sourceOutcome{id: feed.ID, err: fmt.Errorf("等待请求间隔被中断: %w", err)}
	}

	maxItems := feed.MaxItems
	if maxItems <= 0 {
		maxItems = params.MaxItems
	}

	fetchCtx, cancel := context.WithTimeout(ctx, params.Timeout)
	defer cancel()

	start := time.Now()
	items, err := s.rssService.FetchFeed(fetchCtx, feed, service.FeedFetchOptions{
		MaxItems:   maxItems,
		MaxAgeDays: params.MaxAgeDays,
	})
	metrics.RecordFetch(feed.ID, time.Since(start), len(items), err == nil)
	if err != nil {
		return sourceOutcome{id: feed.ID, err: err}
	}
	return sourceOutcome{id: feed.ID, name: feed.Name, rssItems: items}
}

// CollectByTopic 按预定义主题词组采集平台热榜
func (s *collectorService) CollectByTopic(ctx context.Context, topic string, params model.CollectParams) model.CollectionResult {
	name, words, ok := service.ResolveTopic(topic)
	if !ok {
		logger.Warn("未知主题", "topic", topic)
		return model.CollectionResult{
			Success:   false,
			Timestamp: model.FormatTimestamp(model.Now()),
			Error:     fmt.Sprintf("未知主题: %s，可用主题: %s", topic, strings.Join(service.TopicNames(), "、")),
			Platforms: map[string]model.PlatformResult{},
			Failed:    []string{},
		}
	}

	logger.Info("按主题采集", "topic", name, "rules_count", len(words))

	params.Keywords = words
	// 主题采集默认覆盖全部已知平台
	if len(params.Platforms) == 0 {
		params.Platforms = service.AllPlatforms()
	}
	return s.CollectNews(ctx, params)
}

// Search 跨平台与RSS源检索
func (s *collectorService) Search(ctx context.Context, params model.SearchParams) model.SearchResult {
	defer logger.TimeTrack("Search")()

	keywords := strings.Fields(params.Query)
	rules := service.NewRuleSet(keywords)

	maxItems := params.MaxItems
	if maxItems <= 0 {
		maxItems = defaultPlatformMaxItems
	}

	result := model.SearchResult{
		Success:   true,
		Query:     params.Query,
		Keywords:  keywords,
		Results:   []model.SearchItem{},
		Failed:    []string{},
		Timestamp: model.FormatTimestamp(model.Now()),
	}

	// 未指定RSS源时默认检索平台热榜
	if params.Platforms != nil || params.Feeds == nil {
		platforms := normalizePlatforms(params.Platforms)
		collected := s.CollectNews(ctx, model.CollectParams{
			Platforms: platforms,
			MaxItems:  maxItems,
		})
		result.Failed = append(result.Failed, collected.Failed...)

		// 按请求顺序回放各平台条目，保证并列得分时的稳定顺序
		for _, p := range platforms {
			platformResult, ok := collected.Platforms[p.ID]
			if !ok {
				continue
			}
			for _, item := range platformResult.Items {
				score := rules.MatchScore(item.Title)
				if score == 0 {
					continue
				}
				result.Results = append(result.Results, model.SearchItem{
					Title:      item.Title,
					URL:        item.URL,
					Source:     p.ID,
					SourceName: platformResult.Name,
					Rank:       item.Rank,
					MatchScore: score,
					Type:       "platform",
				})
			}
		}
	}

	if len(params.Feeds) > 0 {
		feeds := normalizeFeeds(params.Feeds)
		collected := s.CollectRss(ctx, model.RssParams{
			Feeds:    feeds,
			MaxItems: maxItems,
		})
		result.Failed = append(result.Failed, collected.Failed...)

		for _, feed := range feeds {
			feedResult, ok := collected.Feeds[feed.ID]
			if !ok {
				continue
			}
			for _, item := range feedResult.Items {
				// RSS条目同时在标题与摘要上做匹配
				score := rules.MatchScore(item.Title + " " + item.Summary)
				if score == 0 {
					continue
				}
				result.Results = append(result.Results, model.SearchItem{
					Title:       item.Title,
					URL:         item.URL,
					Source:      feed.ID,
					SourceName:  feedResult.Name,
					PublishedAt: item.PublishedAt,
					MatchScore:  score,
					Type:        "rss",
				})
			}
		}
	}

	sortSearchResults(result.Results)
	result.TotalCount = len(result.Results)

	logger.Info("检索完成",
		"query", params.Query,
		"total_count", result.TotalCount,
		"failed_count", len(result.Failed))
	return result
}

// sortSearchResults 按匹配得分降序排序，并列时按排名升序，
// 稳定排序保留其余并列项的插入顺序
func sortSearchResults(results []model.SearchItem) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].MatchScore != results[j].MatchScore {
			return results[i].MatchScore > results[j].MatchScore
		}
		return effectiveRank(results[i]) < effectiveRank(results[j])
	})
}

// effectiveRank RSS条目没有排名，排序时垫底
func effectiveRank(item model.SearchItem) int {
	if item.Rank <= 0 {
		return searchRankSentinel
	}
	return item.Rank
}

// filterNewsItems 应用全局排除词与关键词规则，不修改原条目
func filterNewsItems(items []model.NewsItem, rules service.RuleSet, filters []string) []model.NewsItem {
	filtered := make([]model.NewsItem, 0, len(items))
	for _, item := range items {
		if service.MatchesFilters(item.Title, filters) {
			continue
		}
		if !rules.Empty() && rules.MatchScore(item.Title) == 0 {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

// normalizePlatforms 填充默认平台列表并按解析后的ID去重
func normalizePlatforms(platforms []model.Platform) []model.Platform {
	if len(platforms) == 0 {
		platforms = service.DefaultPlatforms()
	}

	seen := make(map[string]struct{}, len(platforms))
	normalized := make([]model.Platform, 0, len(platforms))
	for _, p := range platforms {
		key := service.ResolvePlatformID(p.ID)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		normalized = append(normalized, model.Platform{ID: key, Name: p.Name})
	}
	return normalized
}

// normalizeFeeds 补齐缺失的源ID并去重
func normalizeFeeds(feeds []model.FeedConfig) []model.FeedConfig {
	seen := make(map[string]struct{}, len(feeds))
	normalized := make([]model.FeedConfig, 0, len(feeds))
	for i, feed := range feeds {
		if feed.ID == "" {
			feed.ID = fmt.Sprintf("rss_%d", i)
		}
		if feed.Name == "" {
			feed.Name = feed.ID
		}
		if _, ok := seen[feed.ID]; ok {
			continue
		}
		seen[feed.ID] = struct{}{}
		normalized = append(normalized, feed)
	}
	return normalized
}
