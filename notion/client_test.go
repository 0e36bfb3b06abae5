package notion_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"blog-scout/models"
	"blog-scout/notion"
)

func TestPageExists(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	var gotHeader http.Header
	results := `[]`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotHeader = r.Header.Clone()
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"results":`+results+`}`)
	}))
	defer server.Close()

	client := notion.NewClient(server.URL, "secret-token", "db123")

	exists, err := client.PageExists(context.Background(), "https://blog.naver.com/alice/123")
	assert.NoError(t, err)
	assert.False(t, exists)

	assert.Equal(t, "/v1/databases/db123/query", gotPath)
	assert.Equal(t, "Bearer secret-token", gotHeader.Get("Authorization"))
	assert.Equal(t, "2022-06-28", gotHeader.Get("Notion-Version"))
	assert.Equal(t, "application/json", gotHeader.Get("Content-Type"))

	// URL 완전 일치 필터 + 결과 1건 제한
	filter := gotBody["filter"].(map[string]any)
	assert.Equal(t, "URL", filter["property"])
	assert.Equal(t, "https://blog.naver.com/alice/123", filter["url"].(map[string]any)["equals"])
	assert.Equal(t, float64(1), gotBody["page_size"])

	results = `[{"id":"page-1"}]`
	exists, err = client.PageExists(context.Background(), "https://blog.naver.com/alice/123")
	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestPageExistsQueryError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, `{"message":"upstream error"}`)
	}))
	defer server.Close()

	client := notion.NewClient(server.URL, "secret-token", "db123")

	exists, err := client.PageExists(context.Background(), "https://blog.naver.com/alice/123")
	// 실패 정책(fail-open/closed)은 호출자가 결정한다. 클라이언트는 에러만 보고한다.
	assert.Error(t, err)
	assert.False(t, exists)
	assert.Contains(t, err.Error(), "status 502")
}

func TestCreatePage(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"new-page"}`)
	}))
	defer server.Close()

	client := notion.NewClient(server.URL, "secret-token", "db123")

	post := models.Post{
		Title:  "Hello Again",
		Author: "alice",
		Link:   "https://blog.naver.com/alice/123",
	}
	err := client.CreatePage(context.Background(), post)
	assert.NoError(t, err)
	assert.Equal(t, "/v1/pages", gotPath)

	parent := gotBody["parent"].(map[string]any)
	assert.Equal(t, "db123", parent["database_id"])

	props := gotBody["properties"].(map[string]any)

	title := props["Name"].(map[string]any)["title"].([]any)
	assert.Equal(t, "Hello Again",
		title[0].(map[string]any)["text"].(map[string]any)["content"])

	blogger := props["Blogger"].(map[string]any)["rich_text"].([]any)
	assert.Equal(t, "alice",
		blogger[0].(map[string]any)["text"].(map[string]any)["content"])

	assert.Equal(t, "https://blog.naver.com/alice/123",
		props["URL"].(map[string]any)["url"])

	// Scraped At 은 UTC ISO-8601 이어야 한다
	start := props["Scraped At"].(map[string]any)["date"].(map[string]any)["start"].(string)
	ts, err := time.Parse(time.RFC3339, start)
	assert.NoError(t, err)
	assert.Equal(t, time.UTC, ts.Location())
}

func TestCreatePageError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"message":"validation_error"}`)
	}))
	defer server.Close()

	client := notion.NewClient(server.URL, "secret-token", "db123")

	err := client.CreatePage(context.Background(), models.Post{Title: "t", Link: "u"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}
