package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/wolfitem/newsradar/internal/domain/model"
	"github.com/wolfitem/newsradar/internal/domain/service"
	"github.com/wolfitem/newsradar/internal/infrastructure/logger"
)

var (
	topicPlatforms []string
	topicMaxItems  int
	topicTimeout   int
	topicOutput    string
	topicList      bool
)

// topicCmd represents the topic command
var topicCmd = &cobra.Command{
	Use:   "topic [主题名称]",
	Short: "按预定义主题采集热榜",
	Long: `使用预定义的主题词组采集平台热榜，未指定平台时覆盖全部已知平台。
使用 --list 查看可用的主题列表。`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if topicList {
			for _, name := range service.TopicNames() {
				fmt.Printf("%s（%d条规则）\n", name, service.TopicRuleCount(name))
			}
			return nil
		}
		if len(args) == 0 {
			return fmt.Errorf("必须指定主题名称，使用 --list 查看可用主题")
		}

		collector := newCollector()
		params := model.CollectParams{
			Platforms: platformsFromArgs(topicPlatforms),
			MaxItems:  topicMaxItems,
			Timeout:   time.Duration(topicTimeout) * time.Second,
		}

		result := collector.CollectByTopic(context.Background(), args[0], params)
		logger.Info("主题采集命令完成",
			"topic", args[0],
			"success", result.Success,
			"total_count", result.TotalCount)

		return writeResult(result, topicOutput)
	},
}

func init() {
	rootCmd.AddCommand(topicCmd)

	// 本地标志
	topicCmd.Flags().StringSliceVarP(&topicPlatforms, "platforms", "p", nil, "平台ID列表（默认为全部已知平台）")
	topicCmd.Flags().IntVarP(&topicMaxItems, "max-items", "n", 0, "每个平台的最大条目数（默认50）")
	topicCmd.Flags().IntVarP(&topicTimeout, "timeout", "t", 0, "单个平台的请求超时秒数（默认10）")
	topicCmd.Flags().StringVarP(&topicOutput, "output", "f", "", "输出文件路径（可选，默认为stdout）")
	topicCmd.Flags().BoolVarP(&topicList, "list", "l", false, "列出可用的主题")
}
