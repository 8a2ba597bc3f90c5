package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wolfitem/newsradar/internal/domain/model"
)

// newHotListServer 返回固定响应体的热榜接口测试服务
func newHotListServer(t *testing.T, statusCode int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/", r.URL.Path)
		assert.NotEmpty(t, r.URL.Query().Get("id"))
		w.WriteHeader(statusCode)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetchPlatform(t *testing.T) {
	body := `{"status":"success","items":[
		{"title":"头条新闻","url":"https://example.com/1","mobileUrl":"https://m.example.com/1"},
		{"title":"  ","url":"https://example.com/2"},
		{"title":"第三条新闻","url":"https://example.com/3"}
	]}`
	server := newHotListServer(t, http.StatusOK, body)

	svc := NewPlatformService(server.URL)
	items, err := svc.FetchPlatform(context.Background(), model.Platform{ID: "weibo", Name: "微博热搜"}, 50)
	require.NoError(t, err)

	// 空标题条目被跳过，但排名位置保留
	require.Len(t, items, 2)
	assert.Equal(t, "头条新闻", items[0].Title)
	assert.Equal(t, 1, items[0].Rank)
	assert.Equal(t, "https://m.example.com/1", items[0].MobileURL)
	assert.Equal(t, "weibo", items[0].Source)
	assert.Equal(t, "微博热搜", items[0].SourceName)
	assert.Equal(t, "第三条新闻", items[1].Title)
	assert.Equal(t, 3, items[1].Rank)
}

func TestFetchPlatformCacheStatus(t *testing.T) {
	// cache状态与success同等对待
	server := newHotListServer(t, http.StatusOK,
		`{"status":"cache","items":[{"title":"缓存条目","url":"https://example.com/1"}]}`)

	svc := NewPlatformService(server.URL)
	items, err := svc.FetchPlatform(context.Background(), model.Platform{ID: "zhihu"}, 50)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestFetchPlatformMaxItems(t *testing.T) {
	server := newHotListServer(t, http.StatusOK,
		`{"status":"success","items":[
			{"title":"一","url":"u1"},{"title":"二","url":"u2"},{"title":"三","url":"u3"}
		]}`)

	svc := NewPlatformService(server.URL)
	items, err := svc.FetchPlatform(context.Background(), model.Platform{ID: "weibo"}, 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "二", items[1].Title)
}

func TestFetchPlatformErrors(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
	}{
		{"非200状态码", http.StatusInternalServerError, ""},
		{"响应体不是JSON", http.StatusOK, "<html>not json</html>"},
		{"业务状态异常", http.StatusOK, `{"status":"error","items":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newHotListServer(t, tt.statusCode, tt.body)
			svc := NewPlatformService(server.URL)
			_, err := svc.FetchPlatform(context.Background(), model.Platform{ID: "weibo"}, 50)
			assert.Error(t, err)
		})
	}
}

func TestFetchPlatformContextCancelled(t *testing.T) {
	server := newHotListServer(t, http.StatusOK, `{"status":"success","items":[]}`)

	svc := NewPlatformService(server.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.FetchPlatform(ctx, model.Platform{ID: "weibo"}, 50)
	assert.Error(t, err)
}
