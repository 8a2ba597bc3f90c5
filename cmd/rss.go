package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wolfitem/newsradar/internal/domain/model"
	"github.com/wolfitem/newsradar/internal/domain/service"
	"github.com/wolfitem/newsradar/internal/infrastructure/logger"
)

var (
	rssOpmlFile   string
	rssFeedURLs   []string
	rssMaxItems   int
	rssMaxAgeDays int
	rssTimeout    int
	rssOutput     string
)

// rssCmd represents the rss command
var rssCmd = &cobra.Command{
	Use:   "rss",
	Short: "采集RSS源文章",
	Long: `采集OPML文件中订阅的RSS源或命令行指定的RSS地址，
过滤掉超过时效窗口的旧文章，输出JSON格式的采集结果。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opmlFile := rssOpmlFile
		if opmlFile == "" {
			opmlFile = viper.GetString("rss.opml_file")
		}
		if opmlFile == "" && len(rssFeedURLs) == 0 {
			return fmt.Errorf("必须通过 --opml 或 --feeds 指定至少一个RSS源")
		}

		rssSvc := service.NewRssService()
		feeds, err := resolveFeeds(rssSvc, opmlFile, rssFeedURLs)
		if err != nil {
			logger.Error("解析RSS源配置失败", "error", err)
			return err
		}

		// 显式传入的标志优先；0是合法取值，表示不做时效过滤
		maxAgeDays := rssMaxAgeDays
		if !cmd.Flags().Changed("max-age-days") && viper.IsSet("rss.max_age_days") {
			maxAgeDays = viper.GetInt("rss.max_age_days")
		}
		maxItems := rssMaxItems
		if maxItems == 0 {
			maxItems = viper.GetInt("rss.max_items")
		}
		timeout := rssTimeout
		if timeout == 0 {
			timeout = viper.GetInt("rss.timeout")
		}

		params := model.RssParams{
			Feeds:      feeds,
			MaxItems:   maxItems,
			MaxAgeDays: maxAgeDays,
			Timeout:    time.Duration(timeout) * time.Second,
		}

		collector := newCollector()
		result := collector.CollectRss(context.Background(), params)
		logger.Info("RSS采集命令完成",
			"total_count", result.TotalCount,
			"failed_count", len(result.Failed))

		return writeResult(result, rssOutput)
	},
}

func init() {
	rootCmd.AddCommand(rssCmd)

	// 本地标志
	rssCmd.Flags().StringVarP(&rssOpmlFile, "opml", "o", "", "OPML订阅文件路径")
	rssCmd.Flags().StringSliceVar(&rssFeedURLs, "feeds", nil, "RSS源URL列表，逗号分隔")
	rssCmd.Flags().IntVarP(&rssMaxItems, "max-items", "n", 0, "每个源的最大条目数（默认20）")
	rssCmd.Flags().IntVarP(&rssMaxAgeDays, "max-age-days", "d", 3, "文章时效窗口天数，0表示不过滤")
	rssCmd.Flags().IntVarP(&rssTimeout, "timeout", "t", 0, "单个源的请求超时秒数（默认15）")
	rssCmd.Flags().StringVarP(&rssOutput, "output", "f", "", "输出文件路径（可选，默认为stdout）")
}
