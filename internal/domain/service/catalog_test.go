package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePlatformID(t *testing.T) {
	// bilibili是热搜榜的别名
	assert.Equal(t, "bilibili-hot-search", ResolvePlatformID("bilibili"))
	assert.Equal(t, "weibo", ResolvePlatformID("weibo"))
	// 未知ID原样返回，由调用方决定如何处理
	assert.Equal(t, "unknown-platform", ResolvePlatformID("unknown-platform"))
}

func TestLookupPlatform(t *testing.T) {
	p, ok := LookupPlatform("weibo")
	assert.True(t, ok)
	assert.Equal(t, "weibo", p.ID)
	assert.Equal(t, "微博热搜", p.Name)

	// 别名解析后返回实际平台
	p, ok = LookupPlatform("bilibili")
	assert.True(t, ok)
	assert.Equal(t, "bilibili-hot-search", p.ID)

	_, ok = LookupPlatform("no-such-platform")
	assert.False(t, ok)
}

func TestDefaultPlatforms(t *testing.T) {
	platforms := DefaultPlatforms()
	assert.Len(t, platforms, 5)
	assert.Equal(t, "weibo", platforms[0].ID)
	for _, p := range platforms {
		assert.NotEmpty(t, p.Name)
	}
}

func TestAllPlatformsSorted(t *testing.T) {
	platforms := AllPlatforms()
	assert.GreaterOrEqual(t, len(platforms), 15)
	for i := 1; i < len(platforms); i++ {
		assert.Less(t, platforms[i-1].ID, platforms[i].ID)
	}
}
