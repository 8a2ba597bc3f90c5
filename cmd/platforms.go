package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wolfitem/newsradar/internal/domain/service"
)

// platformsCmd 表示 platforms 命令
var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "列出支持的平台",
	Long:  `列出全部支持的平台ID及其中文名称。`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, p := range service.AllPlatforms() {
			fmt.Printf("%-20s %s\n", p.ID, p.Name)
		}
	},
}

func init() {
	rootCmd.AddCommand(platformsCmd)
}
