package service

import (
	"sort"
	"strings"
)

// topicGroups 预定义的主题词组，进程级只读数据
// 每个词支持 /pattern/ 正则语法，与关键词过滤共用同一套匹配逻辑
var topicGroups = map[string][]string{
	"科技公司": {
		"/华为|任正非|余承东|鸿蒙|海思/",
		"/比亚迪|王传福|方程豹|腾势/",
		"/大疆|汪滔/",
		"/特斯拉|马斯克|Tesla|Elon.?Musk/",
		"/英伟达|黄仁勋|NVIDIA/",
		"/微软|Microsoft|Windows|Azure/",
		"/谷歌|Google|Android|YouTube/",
		"/苹果|iPhone|iPad|MacBook|iOS/",
		"/腾讯|马化腾|微信/",
		"/阿里|马云|淘宝|天猫|支付宝/",
		"/字节|张一鸣|抖音|TikTok/",
		"/京东|刘强东/",
		"/百度|李彦宏/",
		"/小米|雷军/",
	},
	"AI": {
		`/\bAI\b/`,
		"人工智能",
		"/OpenAI|ChatGPT|GPT-4|GPT-5|GPT4|GPT5/",
		"/Claude|Anthropic/",
		"/深度求索|DeepSeek/",
		"/大模型|LLM/",
		"/机器学习|深度学习/",
		"智能体",
		"/Gemini|Bard/",
		"/Sora|文生视频/",
		"/Copilot|GitHub.?Copilot/",
	},
	"芯片半导体": {
		"芯片",
		"半导体",
		"光刻机",
		"/台积电|TSMC/",
		"/中芯|SMIC/",
		"/Intel|英特尔/",
		"/AMD|锐龙|Ryzen/",
		"/ASML|阿斯麦/",
		"/高通|Qualcomm/",
		"/联发科|MediaTek/",
	},
	"新能源": {
		"新能源",
		"/电动车|电动汽车|纯电/",
		"锂电池",
		"/光伏|太阳能/",
		"储能",
		"氢能",
		"充电桩",
		"/宁德时代|CATL/",
	},
	"机器人": {
		"机器人",
		"/机器狗|四足/",
		"具身智能",
		"/人形机器人|仿人/",
		"/宇树|Unitree/",
		"/智元|AgiBot/",
		"/波士顿动力|Boston.?Dynamics/",
		"/Figure|1X|Agility/",
	},
	"航天": {
		"/航天|太空/",
		"/火箭|发射/",
		"/卫星|空间站/",
		"/月球|登月/",
		"/火星|深空/",
		"/SpaceX|星舰|Starship/",
		"/蓝色起源|Blue.?Origin/",
	},
	"金融": {
		"/股市|A股|港股|美股/",
		"/基金|ETF/",
		"黄金",
		"/比特币|加密货币|数字货币|BTC|ETH/",
		"/央行|美联储|降息|加息/",
		"汇率",
		"/人民币|美元/",
	},
	"国际": {
		"/美国|拜登|特朗普|Trump|Biden/",
		"/俄罗斯|普京|Putin/",
		"/日本|岸田/",
		"/韩国|尹锡悦/",
		"/欧盟|欧洲/",
		"/中东|以色列|巴勒斯坦/",
		"制裁",
		"关税",
		"/乌克兰|俄乌/",
	},
}

// ResolveTopic 按名称（大小写不敏感）解析主题词组。
// 返回规范主题名与对应的原始词表，未知主题返回 false
func ResolveTopic(name string) (string, []string, bool) {
	for key, words := range topicGroups {
		if key == name || strings.EqualFold(key, name) {
			return key, words, true
		}
	}
	return "", nil, false
}

// TopicNames 返回全部主题名，排序保证输出稳定
func TopicNames() []string {
	names := make([]string, 0, len(topicGroups))
	for name := range topicGroups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TopicRuleCount 返回指定主题的规则条数，用于主题列表展示
func TopicRuleCount(name string) int {
	if _, words, ok := ResolveTopic(name); ok {
		return len(words)
	}
	return 0
}
