package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	appservice "github.com/wolfitem/newsradar/internal/application/service"
	"github.com/wolfitem/newsradar/internal/domain/model"
	"github.com/wolfitem/newsradar/internal/domain/service"
)

// newCollector 根据配置创建采集服务
func newCollector() appservice.CollectorService {
	return appservice.NewCollectorService(appservice.Options{
		APIURL:          viper.GetString("collector.api_url"),
		Concurrency:     viper.GetInt("collector.concurrency"),
		RequestInterval: time.Duration(viper.GetInt("collector.request_interval_ms")) * time.Millisecond,
	})
}

// writeResult 将结果以JSON格式输出到stdout或指定文件
func writeResult(result interface{}, outputFile string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化结果失败: %w", err)
	}

	if outputFile == "" {
		fmt.Println(string(data))
		return nil
	}

	// 确保输出目录存在
	outputDir := filepath.Dir(outputFile)
	if outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("创建输出目录失败: %w", err)
		}
	}
	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return fmt.Errorf("写入输出文件失败: %w", err)
	}
	fmt.Fprintf(os.Stderr, "结果已保存到: %s\n", outputFile)
	return nil
}

// resolveFeeds 汇总OPML文件与命令行URL两种来源的RSS源配置
func resolveFeeds(rssSvc service.RssService, opmlPath string, urls []string) ([]model.FeedConfig, error) {
	var feeds []model.FeedConfig
	validator := service.NewValidator()

	if opmlPath != "" {
		if err := validator.ValidateOpmlPath(opmlPath); err != nil {
			return nil, err
		}
		parsed, err := rssSvc.ParseOpml(opmlPath)
		if err != nil {
			return nil, fmt.Errorf("解析OPML文件失败: %w", err)
		}
		feeds = append(feeds, parsed...)
	}

	// 命令行直接给出的URL生成顺序ID
	for i, u := range urls {
		if err := validator.ValidateFeedURL(u); err != nil {
			return nil, err
		}
		feeds = append(feeds, model.FeedConfig{
			ID:  fmt.Sprintf("rss_%d", i),
			URL: u,
		})
	}
	return feeds, nil
}

// platformsFromArgs 将平台ID列表转换为平台配置，空列表返回nil
func platformsFromArgs(ids []string) []model.Platform {
	if len(ids) == 0 {
		return nil
	}
	platforms := make([]model.Platform, 0, len(ids))
	for _, id := range ids {
		platforms = append(platforms, model.Platform{ID: id})
	}
	return platforms
}
