package services_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"

	"blog-scout/config"
	"blog-scout/models"
	"blog-scout/services"
)

type fakeSource struct {
	pages map[int]string
	errs  map[int]error
	calls []int
}

func (f *fakeSource) FetchPage(_ context.Context, page int) (string, error) {
	f.calls = append(f.calls, page)
	if err, ok := f.errs[page]; ok {
		return "", err
	}
	return f.pages[page], nil
}

type fakeStore struct {
	existing    map[string]bool
	existsErr   error
	createErr   error
	existsCalls []string
	created     []models.Post
}

func (f *fakeStore) PageExists(_ context.Context, url string) (bool, error) {
	f.existsCalls = append(f.existsCalls, url)
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return f.existing[url], nil
}

func (f *fakeStore) CreatePage(_ context.Context, post models.Post) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, post)
	return nil
}

type fakeArchive struct {
	known    map[string]bool
	inserted []models.Post
}

func (f *fakeArchive) IsExistByLink(_ context.Context, link string) (bool, error) {
	return f.known[link], nil
}

func (f *fakeArchive) Insert(_ context.Context, p *models.Post) (*mongo.InsertOneResult, error) {
	f.inserted = append(f.inserted, *p)
	return nil, nil
}

type fakeRuns struct {
	runs []models.ScrapeRun
}

func (f *fakeRuns) Insert(_ context.Context, run *models.ScrapeRun) (*mongo.InsertOneResult, error) {
	f.runs = append(f.runs, *run)
	return nil, nil
}

func testConfig(maxPage int) *config.AppConfig {
	// 테스트에서는 pacing 을 끈다 (0 이면 쉬지 않는다)
	cfg := &config.AppConfig{}
	cfg.Scrape.MaxPage = maxPage
	cfg.BlogFetchBatchSize = 10
	return cfg
}

func pageMarkup(page int) string {
	return fmt.Sprintf(`<html><body>
		<a href="https://blog.naver.com/user%d/100?from=feed">%d페이지 글</a>
	</body></html>`, page, page)
}

func TestRunIdempotent(t *testing.T) {
	source := &fakeSource{pages: map[int]string{}}
	store := &fakeStore{existing: map[string]bool{}}
	for page := 1; page <= 3; page++ {
		source.pages[page] = pageMarkup(page)
		store.existing[fmt.Sprintf("https://blog.naver.com/user%d/100", page)] = true
	}

	svc := services.NewCollectorService(testConfig(3), source, store, nil, nil, nil)
	sum := svc.Run(context.Background())

	assert.Equal(t, 0, sum.Saved)
	assert.Equal(t, 3, sum.Skipped)
	assert.Empty(t, store.created)
}

func TestRunFetchFailureResilience(t *testing.T) {
	source := &fakeSource{
		pages: map[int]string{},
		errs:  map[int]error{3: errors.New("timeout")},
	}
	for page := 1; page <= 5; page++ {
		source.pages[page] = pageMarkup(page)
	}
	store := &fakeStore{existing: map[string]bool{}}

	svc := services.NewCollectorService(testConfig(5), source, store, nil, nil, nil)
	sum := svc.Run(context.Background())

	// 3페이지는 실패해도 나머지 페이지는 모두 처리된다
	assert.Equal(t, []int{1, 2, 3, 4, 5}, source.calls)
	assert.Equal(t, 4, sum.PagesScanned)
	assert.Equal(t, 4, sum.Saved)

	var links []string
	for _, p := range store.created {
		links = append(links, p.Link)
	}
	assert.ElementsMatch(t, []string{
		"https://blog.naver.com/user1/100",
		"https://blog.naver.com/user2/100",
		"https://blog.naver.com/user4/100",
		"https://blog.naver.com/user5/100",
	}, links)
}

func TestRunFailOpenOnExistenceError(t *testing.T) {
	source := &fakeSource{pages: map[int]string{1: pageMarkup(1)}}
	store := &fakeStore{existsErr: errors.New("notion down")}

	svc := services.NewCollectorService(testConfig(1), source, store, nil, nil, nil)
	sum := svc.Run(context.Background())

	// 확인 실패는 "없음"으로 간주되어 생성이 진행된다
	assert.Equal(t, 1, sum.Saved)
	assert.Len(t, store.created, 1)
}

func TestRunFailClosedOnExistenceError(t *testing.T) {
	source := &fakeSource{pages: map[int]string{1: pageMarkup(1)}}
	store := &fakeStore{existsErr: errors.New("notion down")}

	cfg := testConfig(1)
	cfg.Scrape.DedupeFailClosed = true
	svc := services.NewCollectorService(cfg, source, store, nil, nil, nil)
	sum := svc.Run(context.Background())

	assert.Equal(t, 0, sum.Saved)
	assert.Equal(t, 1, sum.Failed)
	assert.Empty(t, store.created)
}

func TestRunCreateFailureNotCounted(t *testing.T) {
	source := &fakeSource{pages: map[int]string{1: pageMarkup(1)}}
	store := &fakeStore{createErr: errors.New("validation error")}

	svc := services.NewCollectorService(testConfig(1), source, store, nil, nil, nil)
	sum := svc.Run(context.Background())

	assert.Equal(t, 0, sum.Saved)
	assert.Equal(t, 1, sum.Failed)
}

func TestRunEmptyPage(t *testing.T) {
	source := &fakeSource{pages: map[int]string{1: "<html><body>링크 없음</body></html>"}}
	store := &fakeStore{}

	svc := services.NewCollectorService(testConfig(1), source, store, nil, nil, nil)
	sum := svc.Run(context.Background())

	assert.Equal(t, 1, sum.PagesScanned)
	assert.Equal(t, 0, sum.Found)
	assert.Equal(t, 0, sum.Saved)
}

func TestRunArchivePreCheckSkipsStore(t *testing.T) {
	source := &fakeSource{pages: map[int]string{1: pageMarkup(1)}}
	store := &fakeStore{}
	archive := &fakeArchive{known: map[string]bool{
		"https://blog.naver.com/user1/100": true,
	}}

	svc := services.NewCollectorService(testConfig(1), source, store, archive, nil, nil)
	sum := svc.Run(context.Background())

	// 아카이브에 있으면 Notion 존재 확인조차 하지 않는다
	assert.Empty(t, store.existsCalls)
	assert.Equal(t, 1, sum.Skipped)
}

func TestRunArchivesSavedPosts(t *testing.T) {
	source := &fakeSource{pages: map[int]string{1: pageMarkup(1)}}
	store := &fakeStore{}
	archive := &fakeArchive{known: map[string]bool{}}

	svc := services.NewCollectorService(testConfig(1), source, store, archive, nil, nil)
	sum := svc.Run(context.Background())

	assert.Equal(t, 1, sum.Saved)
	assert.Len(t, archive.inserted, 1)
	assert.Equal(t, "https://blog.naver.com/user1/100", archive.inserted[0].Link)
}

func TestRunRecordsRunSummary(t *testing.T) {
	source := &fakeSource{pages: map[int]string{1: pageMarkup(1)}}
	store := &fakeStore{}
	runs := &fakeRuns{}

	svc := services.NewCollectorService(testConfig(1), source, store, nil, runs, nil)
	sum := svc.Run(context.Background())

	assert.Len(t, runs.runs, 1)
	assert.Equal(t, sum.RunID, runs.runs[0].RunID)
	assert.Equal(t, sum.Saved, runs.runs[0].Saved)
	assert.Equal(t, sum.PagesScanned, runs.runs[0].PagesScanned)
	assert.False(t, runs.runs[0].FinishedAt.IsZero())
}

func TestRunCollectsRssBlogs(t *testing.T) {
	rss := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel>
	<title>테스트 블로그</title>
	<item>
		<title>RSS 첫 글</title>
		<link>https://blog.naver.com/frank/10?from=rss</link>
	</item>
	<item>
		<title>RSS 두번째 글</title>
		<link>https://tech.example.com/posts/20</link>
	</item>
</channel></rss>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, rss)
	}))
	defer server.Close()

	cfg := testConfig(0)
	cfg.Blogs = []config.BlogSource{{Name: "테스트 블로그", RSSURL: server.URL}}

	store := &fakeStore{}
	svc := services.NewCollectorService(cfg, &fakeSource{}, store, nil, nil, nil)
	sum := svc.Run(context.Background())

	assert.Equal(t, 1, sum.FeedsScanned)
	assert.Equal(t, 2, sum.Saved)
	assert.Len(t, store.created, 2)

	assert.Equal(t, "https://blog.naver.com/frank/10", store.created[0].Link)
	assert.Equal(t, "frank", store.created[0].Author)
	assert.Equal(t, "rss", store.created[0].Source)
	assert.Equal(t, "테스트 블로그", store.created[0].BlogName)

	assert.Equal(t, "https://tech.example.com/posts/20", store.created[1].Link)
	assert.Equal(t, "", store.created[1].Author)
}
