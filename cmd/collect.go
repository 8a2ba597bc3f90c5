package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wolfitem/newsradar/internal/domain/model"
	"github.com/wolfitem/newsradar/internal/infrastructure/logger"
)

var (
	collectPlatforms []string
	collectKeywords  []string
	collectFilters   []string
	collectMaxItems  int
	collectTimeout   int
	collectOutput    string
)

// collectCmd represents the collect command
var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "采集平台热榜数据",
	Long: `采集指定平台的热榜数据，可选按关键词过滤标题。
未指定平台时采集默认的五个主流平台（微博、知乎、抖音、今日头条、百度）。
关键词支持 /正则/ 语法与 "词 => 别名" 显示名语法。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		collector := newCollector()

		platforms := collectPlatforms
		if len(platforms) == 0 {
			platforms = viper.GetStringSlice("collector.platforms")
		}
		filters := collectFilters
		if len(filters) == 0 {
			filters = viper.GetStringSlice("collector.filter_words")
		}
		maxItems := collectMaxItems
		if maxItems == 0 {
			maxItems = viper.GetInt("collector.max_items")
		}
		timeout := collectTimeout
		if timeout == 0 {
			timeout = viper.GetInt("collector.timeout")
		}

		params := model.CollectParams{
			Platforms:     platformsFromArgs(platforms),
			Keywords:      collectKeywords,
			GlobalFilters: filters,
			MaxItems:      maxItems,
			Timeout:       time.Duration(timeout) * time.Second,
		}

		result := collector.CollectNews(context.Background(), params)
		logger.Info("采集命令完成",
			"total_count", result.TotalCount,
			"failed_count", len(result.Failed))

		return writeResult(result, collectOutput)
	},
}

func init() {
	rootCmd.AddCommand(collectCmd)

	// 本地标志
	collectCmd.Flags().StringSliceVarP(&collectPlatforms, "platforms", "p", nil, "平台ID列表，逗号分隔（默认为主流五平台）")
	collectCmd.Flags().StringSliceVarP(&collectKeywords, "keywords", "k", nil, "关键词过滤规则列表")
	collectCmd.Flags().StringSliceVar(&collectFilters, "filters", nil, "全局排除词列表")
	collectCmd.Flags().IntVarP(&collectMaxItems, "max-items", "n", 0, "每个平台的最大条目数（默认50）")
	collectCmd.Flags().IntVarP(&collectTimeout, "timeout", "t", 0, "单个平台的请求超时秒数（默认10）")
	collectCmd.Flags().StringVarP(&collectOutput, "output", "f", "", "输出文件路径（可选，默认为stdout）")
}
