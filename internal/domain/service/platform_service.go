package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wolfitem/newsradar/internal/domain/model"
	"github.com/wolfitem/newsradar/internal/infrastructure/logger"
)

// maxHotListResponseBytes 热榜响应体大小上限
const maxHotListResponseBytes = 1 << 20 // 1MB

// platformHeaders 热榜接口请求头
var platformHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Accept":          "application/json, text/plain, */*",
	"Accept-Language": "zh-CN,zh;q=0.9,en;q=0.8",
	"Cache-Control":   "no-cache",
}

// PlatformService 定义平台热榜获取的领域服务接口
type PlatformService interface {
	// FetchPlatform 获取单个平台的热榜条目，按响应顺序赋予排名并截断到 maxItems。
	// 网络失败、非2xx状态、响应体不可解析都是该平台的整体失败，不产生部分条目
	FetchPlatform(ctx context.Context, platform model.Platform, maxItems int) ([]model.NewsItem, error)
}

// platformService 实现PlatformService接口
type platformService struct {
	apiURL string
	client *http.Client
}

// NewPlatformService 创建平台热榜服务实例，apiURL 为空时使用默认接口地址
func NewPlatformService(apiURL string) PlatformService {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	return &platformService{
		apiURL: apiURL,
		// 单次请求的具体超时由调用方通过上下文控制，这里只做兜底
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// hotListResponse 热榜接口的JSON响应外壳
type hotListResponse struct {
	Status string `json:"status"`
	Items  []struct {
		Title     string `json:"title"`
		URL       string `json:"url"`
		MobileURL string `json:"mobileUrl"`
	} `json:"items"`
}

// FetchPlatform 获取单个平台的热榜条目
func (s *platformService) FetchPlatform(ctx context.Context, platform model.Platform, maxItems int) ([]model.NewsItem, error) {
	reqURL := fmt.Sprintf("%s?id=%s&latest", s.apiURL, url.QueryEscape(platform.ID))
	logger.Debug("开始获取平台热榜", "platform", platform.ID, "url", reqURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}
	for k, v := range platformHeaders {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求热榜接口失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("热榜接口返回异常状态码: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxHotListResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("读取热榜响应失败: %w", err)
	}

	var envelope hotListResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("解析热榜响应失败: %w", err)
	}

	if envelope.Status != "success" && envelope.Status != "cache" {
		return nil, fmt.Errorf("热榜响应状态异常: %s", envelope.Status)
	}

	items := make([]model.NewsItem, 0, len(envelope.Items))
	for i, entry := range envelope.Items {
		title := strings.TrimSpace(entry.Title)
		if title == "" {
			// 无效标题跳过，但保留其占用的排名位置
			continue
		}
		items = append(items, model.NewsItem{
			Title:      title,
			URL:        entry.URL,
			MobileURL:  entry.MobileURL,
			Rank:       i + 1,
			Source:     platform.ID,
			SourceName: platform.Name,
		})
	}

	if maxItems > 0 && len(items) > maxItems {
		items = items[:maxItems]
	}

	logger.Debug("平台热榜获取完成", "platform", platform.ID, "items_count", len(items))
	return items, nil
}
