package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wolfitem/newsradar/internal/domain/model"
	domain "github.com/wolfitem/newsradar/internal/domain/service"
)

// stubPlatformService 可编程的平台服务替身
type stubPlatformService struct {
	mu    sync.Mutex
	calls []string
	items map[string][]model.NewsItem
	errs  map[string]error
}

func (s *stubPlatformService) FetchPlatform(ctx context.Context, platform model.Platform, maxItems int) ([]model.NewsItem, error) {
	s.mu.Lock()
	s.calls = append(s.calls, platform.ID)
	s.mu.Unlock()

	if err, ok := s.errs[platform.ID]; ok {
		return nil, err
	}
	return s.items[platform.ID], nil
}

// stubRssService 可编程的RSS服务替身
type stubRssService struct {
	mu      sync.Mutex
	calls   []string
	gotOpts []domain.FeedFetchOptions
	items   map[string][]model.RSSItem
	errs    map[string]error
}

func (s *stubRssService) ParseOpml(opmlFilePath string) ([]model.FeedConfig, error) {
	return nil, nil
}

func (s *stubRssService) FetchFeed(ctx context.Context, feed model.FeedConfig, opts domain.FeedFetchOptions) ([]model.RSSItem, error) {
	s.mu.Lock()
	s.calls = append(s.calls, feed.ID)
	s.gotOpts = append(s.gotOpts, opts)
	s.mu.Unlock()

	if err, ok := s.errs[feed.ID]; ok {
		return nil, err
	}
	return s.items[feed.ID], nil
}

// newTestCollector 构造并发度为1的采集服务，保证调用顺序可断言
func newTestCollector(platformSvc *stubPlatformService, rssSvc *stubRssService) CollectorService {
	return NewCollectorServiceWith(platformSvc, rssSvc, Options{Concurrency: 1})
}

func newsItem(title string, rank int) model.NewsItem {
	return model.NewsItem{Title: title, URL: "https://example.com", Rank: rank}
}

func TestCollectNewsAggregation(t *testing.T) {
	platformSvc := &stubPlatformService{
		items: map[string][]model.NewsItem{
			"weibo": {newsItem("微博一", 1), newsItem("微博二", 2)},
			"zhihu": {newsItem("知乎一", 1)},
		},
	}
	collector := newTestCollector(platformSvc, &stubRssService{})

	result := collector.CollectNews(context.Background(), model.CollectParams{
		Platforms: []model.Platform{{ID: "weibo"}, {ID: "zhihu"}},
	})

	assert.True(t, result.Success)
	assert.Empty(t, result.Failed)
	assert.NotEmpty(t, result.Timestamp)
	require.Len(t, result.Platforms, 2)
	assert.Equal(t, 2, result.Platforms["weibo"].Count)
	assert.Equal(t, "微博热搜", result.Platforms["weibo"].Name)
	assert.Equal(t, 1, result.Platforms["zhihu"].Count)
	// 总数等于各平台条数之和
	assert.Equal(t, 3, result.TotalCount)
}

func TestCollectNewsPartialFailure(t *testing.T) {
	platformSvc := &stubPlatformService{
		items: map[string][]model.NewsItem{
			"zhihu": {newsItem("知乎一", 1)},
		},
		errs: map[string]error{
			"weibo":  errors.New("接口超时"),
			"douyin": errors.New("状态异常"),
		},
	}
	collector := newTestCollector(platformSvc, &stubRssService{})

	result := collector.CollectNews(context.Background(), model.CollectParams{
		Platforms: []model.Platform{{ID: "weibo"}, {ID: "zhihu"}, {ID: "douyin"}},
	})

	// 单源失败不影响整体成功标志，失败列表按请求顺序排列
	assert.True(t, result.Success)
	assert.Equal(t, []string{"weibo", "douyin"}, result.Failed)
	assert.Equal(t, 1, result.TotalCount)
	assert.Contains(t, result.Platforms, "zhihu")
	assert.NotContains(t, result.Platforms, "weibo")
}

func TestCollectNewsUnknownPlatform(t *testing.T) {
	platformSvc := &stubPlatformService{
		items: map[string][]model.NewsItem{
			"weibo": {newsItem("微博一", 1)},
		},
	}
	collector := newTestCollector(platformSvc, &stubRssService{})

	result := collector.CollectNews(context.Background(), model.CollectParams{
		Platforms: []model.Platform{{ID: "no-such-platform"}, {ID: "weibo"}},
	})

	assert.True(t, result.Success)
	assert.Equal(t, []string{"no-such-platform"}, result.Failed)
	assert.Equal(t, 1, result.TotalCount)
	// 未知平台不应发起请求
	assert.Equal(t, []string{"weibo"}, platformSvc.calls)
}

func TestCollectNewsDefaultPlatforms(t *testing.T) {
	platformSvc := &stubPlatformService{}
	collector := newTestCollector(platformSvc, &stubRssService{})

	collector.CollectNews(context.Background(), model.CollectParams{})

	// 未指定平台时采集默认五平台
	assert.ElementsMatch(t, []string{"weibo", "zhihu", "douyin", "toutiao", "baidu"}, platformSvc.calls)
}

func TestCollectNewsAliasDedup(t *testing.T) {
	platformSvc := &stubPlatformService{}
	collector := newTestCollector(platformSvc, &stubRssService{})

	collector.CollectNews(context.Background(), model.CollectParams{
		Platforms: []model.Platform{{ID: "bilibili"}, {ID: "bilibili-hot-search"}},
	})

	// 别名解析后指向同一平台，只请求一次
	assert.Equal(t, []string{"bilibili-hot-search"}, platformSvc.calls)
}

func TestCollectNewsKeywordFilter(t *testing.T) {
	platformSvc := &stubPlatformService{
		items: map[string][]model.NewsItem{
			"weibo": {
				newsItem("华为发布新手机", 1),
				newsItem("今日天气晴朗", 2),
				newsItem("广告：华为特卖", 3),
			},
		},
	}
	collector := newTestCollector(platformSvc, &stubRssService{})

	result := collector.CollectNews(context.Background(), model.CollectParams{
		Platforms:     []model.Platform{{ID: "weibo"}},
		Keywords:      []string{"华为"},
		GlobalFilters: []string{"广告"},
	})

	// 关键词保留命中条目，全局排除词优先丢弃
	require.Equal(t, 1, result.Platforms["weibo"].Count)
	assert.Equal(t, "华为发布新手机", result.Platforms["weibo"].Items[0].Title)
	assert.Equal(t, 1, result.TotalCount)
}

func TestCollectRss(t *testing.T) {
	rssSvc := &stubRssService{
		items: map[string][]model.RSSItem{
			"blog-a": {{Title: "文章一", FeedID: "blog-a"}, {Title: "文章二", FeedID: "blog-a"}},
		},
		errs: map[string]error{
			"blog-b": errors.New("解析失败"),
		},
	}
	collector := newTestCollector(&stubPlatformService{}, rssSvc)

	result := collector.CollectRss(context.Background(), model.RssParams{
		Feeds: []model.FeedConfig{
			{ID: "blog-a", Name: "博客A", URL: "https://a.example.com/feed"},
			{ID: "blog-b", Name: "博客B", URL: "https://b.example.com/feed"},
			{Name: "无地址源"},
		},
	})

	assert.True(t, result.Success)
	assert.Equal(t, []string{"blog-b", "rss_2"}, result.Failed)
	assert.Equal(t, 2, result.TotalCount)
	assert.Equal(t, "博客A", result.Feeds["blog-a"].Name)
	// 缺少URL的源不应发起请求
	assert.ElementsMatch(t, []string{"blog-a", "blog-b"}, rssSvc.calls)
}

func TestCollectRssAgeFilterPassThrough(t *testing.T) {
	tests := []struct {
		name       string
		maxAgeDays int
	}{
		{"零值表示不过滤，原样透传", 0},
		{"显式窗口原样透传", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rssSvc := &stubRssService{
				items: map[string][]model.RSSItem{
					"blog": {{Title: "五天前的文章", FeedID: "blog"}},
				},
			}
			collector := newTestCollector(&stubPlatformService{}, rssSvc)

			result := collector.CollectRss(context.Background(), model.RssParams{
				Feeds:      []model.FeedConfig{{ID: "blog", URL: "https://blog.example.com/feed"}},
				MaxAgeDays: tt.maxAgeDays,
			})

			require.Len(t, rssSvc.gotOpts, 1)
			assert.Equal(t, tt.maxAgeDays, rssSvc.gotOpts[0].MaxAgeDays)
			assert.Equal(t, 1, result.TotalCount)
		})
	}
}

func TestCollectByTopic(t *testing.T) {
	platformSvc := &stubPlatformService{
		items: map[string][]model.NewsItem{
			"weibo": {
				newsItem("ChatGPT发布新模型", 1),
				newsItem("今日菜价上涨", 2),
			},
		},
	}
	collector := newTestCollector(platformSvc, &stubRssService{})

	result := collector.CollectByTopic(context.Background(), "AI", model.CollectParams{
		Platforms: []model.Platform{{ID: "weibo"}},
	})

	assert.True(t, result.Success)
	require.Equal(t, 1, result.Platforms["weibo"].Count)
	assert.Equal(t, "ChatGPT发布新模型", result.Platforms["weibo"].Items[0].Title)
}

func TestCollectByTopicUnknown(t *testing.T) {
	platformSvc := &stubPlatformService{}
	collector := newTestCollector(platformSvc, &stubRssService{})

	result := collector.CollectByTopic(context.Background(), "不存在的主题", model.CollectParams{})

	// 未知主题是参数错误，整体失败且不发起任何请求
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "未知主题")
	assert.Empty(t, result.Platforms)
	assert.Empty(t, platformSvc.calls)
}

func TestSearch(t *testing.T) {
	platformSvc := &stubPlatformService{
		items: map[string][]model.NewsItem{
			"weibo": {
				newsItem("华为发布新芯片", 1),
				newsItem("华为新品发布会", 2),
				newsItem("无关条目", 3),
			},
		},
	}
	rssSvc := &stubRssService{
		items: map[string][]model.RSSItem{
			"blog": {{Title: "华为芯片深度解析", URL: "https://blog.example.com/1", PublishedAt: "2026-08-25 10:00:00"}},
		},
	}
	collector := newTestCollector(platformSvc, rssSvc)

	result := collector.Search(context.Background(), model.SearchParams{
		Query:     "华为 芯片",
		Platforms: []model.Platform{{ID: "weibo"}},
		Feeds:     []model.FeedConfig{{ID: "blog", Name: "博客", URL: "https://blog.example.com/feed"}},
	})

	assert.True(t, result.Success)
	assert.Equal(t, []string{"华为", "芯片"}, result.Keywords)
	require.Len(t, result.Results, 3)
	assert.Equal(t, 3, result.TotalCount)

	// 得分降序，同分按热榜排名升序，RSS条目无排名垫底
	assert.Equal(t, "华为发布新芯片", result.Results[0].Title)
	assert.Equal(t, 2, result.Results[0].MatchScore)
	assert.Equal(t, "platform", result.Results[0].Type)
	assert.Equal(t, "华为芯片深度解析", result.Results[1].Title)
	assert.Equal(t, "rss", result.Results[1].Type)
	assert.Equal(t, "华为新品发布会", result.Results[2].Title)
	assert.Equal(t, 1, result.Results[2].MatchScore)
}

func TestSearchFeedsOnly(t *testing.T) {
	platformSvc := &stubPlatformService{}
	rssSvc := &stubRssService{
		items: map[string][]model.RSSItem{
			"blog": {{Title: "芯片行业周报"}},
		},
	}
	collector := newTestCollector(platformSvc, rssSvc)

	result := collector.Search(context.Background(), model.SearchParams{
		Query: "芯片",
		Feeds: []model.FeedConfig{{ID: "blog", URL: "https://blog.example.com/feed"}},
	})

	// 只指定RSS源时不采集平台热榜
	assert.Empty(t, platformSvc.calls)
	require.Len(t, result.Results, 1)
	assert.Equal(t, "rss", result.Results[0].Type)
}

func TestSearchFailuresPropagate(t *testing.T) {
	platformSvc := &stubPlatformService{
		errs: map[string]error{"weibo": errors.New("接口超时")},
	}
	collector := newTestCollector(platformSvc, &stubRssService{})

	result := collector.Search(context.Background(), model.SearchParams{
		Query:     "任意",
		Platforms: []model.Platform{{ID: "weibo"}},
	})

	assert.True(t, result.Success)
	assert.Equal(t, []string{"weibo"}, result.Failed)
	assert.Empty(t, result.Results)
}
