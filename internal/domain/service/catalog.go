package service

import (
	"sort"

	"github.com/wolfitem/newsradar/internal/domain/model"
)

// DefaultAPIURL NewsNow 热榜聚合接口的默认地址
const DefaultAPIURL = "https://newsnow.busiyi.world/api/s"

// platformNames 已验证可用的平台ID与显示名称
var platformNames = map[string]string{
	// 社交平台
	"weibo":  "微博热搜",
	"zhihu":  "知乎热榜",
	"douyin": "抖音热点",
	"tieba":  "贴吧",

	// 新闻平台
	"toutiao":  "今日头条",
	"baidu":    "百度热搜",
	"thepaper": "澎湃新闻",
	"ifeng":    "凤凰网",
	"zaobao":   "联合早报",

	// 财经
	"wallstreetcn-hot": "华尔街见闻",
	"cls-hot":          "财联社热门",

	// 视频平台（注意部分平台需要带后缀的ID）
	"bilibili":            "B站热门",
	"bilibili-hot-search": "B站热搜",

	// 科技平台
	"36kr":   "36氪",
	"ithome": "IT之家",
	"v2ex":   "V2EX",
	"juejin": "掘金",
	"github": "GitHub Trending",
}

// platformAliases 平台ID别名，映射到接口真实可用的ID
var platformAliases = map[string]string{
	"bilibili": "bilibili-hot-search",
}

// defaultPlatformIDs 未指定平台时的默认采集列表
var defaultPlatformIDs = []string{"weibo", "zhihu", "douyin", "toutiao", "baidu"}

// ResolvePlatformID 解析平台ID别名，返回接口真实使用的ID
func ResolvePlatformID(id string) string {
	if actual, ok := platformAliases[id]; ok {
		return actual
	}
	return id
}

// LookupPlatform 按ID查找平台，未知ID返回 false
func LookupPlatform(id string) (model.Platform, bool) {
	actual := ResolvePlatformID(id)
	name, ok := platformNames[actual]
	if !ok {
		// 别名解析前的原始ID也可能直接有效
		if name, ok = platformNames[id]; !ok {
			return model.Platform{}, false
		}
		actual = id
	}
	return model.Platform{ID: actual, Name: name}, true
}

// DefaultPlatforms 返回默认采集的平台列表
func DefaultPlatforms() []model.Platform {
	platforms := make([]model.Platform, 0, len(defaultPlatformIDs))
	for _, id := range defaultPlatformIDs {
		if p, ok := LookupPlatform(id); ok {
			platforms = append(platforms, p)
		}
	}
	return platforms
}

// AllPlatforms 返回全部已知平台，按ID排序保证输出稳定
func AllPlatforms() []model.Platform {
	ids := make([]string, 0, len(platformNames))
	for id := range platformNames {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	platforms := make([]model.Platform, 0, len(ids))
	for _, id := range ids {
		platforms = append(platforms, model.Platform{ID: id, Name: platformNames[id]})
	}
	return platforms
}
