package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wolfitem/newsradar/internal/domain/model"
	"github.com/wolfitem/newsradar/internal/domain/service"
	"github.com/wolfitem/newsradar/internal/infrastructure/logger"
)

var (
	searchPlatforms []string
	searchOpmlFile  string
	searchFeedURLs  []string
	searchMaxItems  int
	searchOutput    string
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <查询词...>",
	Short: "跨平台与RSS源检索新闻",
	Long: `在平台热榜与RSS源中检索包含查询词的条目，多个查询词以空格分隔，
每个词都可以使用 /正则/ 语法。结果按匹配到的词数降序排列，
并列时按热榜排名升序。`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := model.SearchParams{
			Query:     strings.Join(args, " "),
			Platforms: platformsFromArgs(searchPlatforms),
			MaxItems:  searchMaxItems,
		}

		if searchOpmlFile != "" || len(searchFeedURLs) > 0 {
			rssSvc := service.NewRssService()
			feeds, err := resolveFeeds(rssSvc, searchOpmlFile, searchFeedURLs)
			if err != nil {
				logger.Error("解析RSS源配置失败", "error", err)
				return err
			}
			params.Feeds = feeds
		}

		collector := newCollector()
		result := collector.Search(context.Background(), params)
		logger.Info("检索命令完成",
			"query", params.Query,
			"total_count", result.TotalCount)

		return writeResult(result, searchOutput)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	// 本地标志
	searchCmd.Flags().StringSliceVarP(&searchPlatforms, "platforms", "p", nil, "平台ID列表（默认为主流五平台）")
	searchCmd.Flags().StringVarP(&searchOpmlFile, "opml", "o", "", "OPML订阅文件路径")
	searchCmd.Flags().StringSliceVar(&searchFeedURLs, "feeds", nil, "RSS源URL列表，逗号分隔")
	searchCmd.Flags().IntVarP(&searchMaxItems, "max-items", "n", 0, "每个源的最大条目数（默认50）")
	searchCmd.Flags().StringVarP(&searchOutput, "output", "f", "", "输出文件路径（可选，默认为stdout）")
}
