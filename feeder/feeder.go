package feeder

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/mmcdole/gofeed"

	"blog-scout/config"
)

// SectionURL 은 네이버 블로그 이웃 새 글 피드 엔드포인트다.
const SectionURL = "https://section.blog.naver.com/BlogHome.naver"

const userAgent = "Mozilla/5.0"

// SectionFeeder fetches one page of the "new posts from neighbors" feed.
// 세션 쿠키가 있어야 이웃 피드가 내려오므로 요청마다 쿠키를 싣는다.
type SectionFeeder struct {
	baseURL    string
	cookie     string
	httpClient *http.Client
}

// NewSectionFeeder creates a feeder using the session cookie from cfg.
// If baseURL is empty, the production endpoint is used.
func NewSectionFeeder(cfg *config.AppConfig, baseURL string) *SectionFeeder {
	if baseURL == "" {
		baseURL = SectionURL
	}
	return &SectionFeeder{
		baseURL: baseURL,
		cookie:  cfg.NaverCookie,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FetchPage returns the raw markup of the given 1-based feed page.
// 전송 오류와 2xx 가 아닌 응답은 모두 에러로 보고한다. 호출자는 해당
// 페이지를 "포스트 0건"으로 간주하고 다음 페이지로 넘어간다.
func (f *SectionFeeder) FetchPage(ctx context.Context, page int) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	q := req.URL.Query()
	q.Set("directoryNo", "0")
	q.Set("currentPage", strconv.Itoa(page))
	q.Set("groupId", "0")
	req.URL.RawQuery = q.Encode()

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Cookie", f.cookie)
	req.Header.Set("Referer", f.baseURL)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch page %d: %w", page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch page %d: unexpected status %d", page, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read page %d: %w", page, err)
	}
	return string(body), nil
}

type RssFeedItem struct {
	Title       string
	Link        string
	PublishedAt time.Time
}

// FetchRssFeeds fetches RSS feeds from the given URL.
// If limit is greater than 0, it returns only the first limit items.
func FetchRssFeeds(rssUrl string, limit int) ([]RssFeedItem, error) {
	httpClient := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // 일부 블로그는 SSL 인증서 검증을 건너뛰어야 한다
		},
	}

	fp := gofeed.NewParser()
	fp.Client = httpClient

	feed, err := fp.ParseURL(rssUrl)
	if err != nil {
		return nil, err
	}

	var items []RssFeedItem
	for _, item := range feed.Items {
		var published time.Time
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			published = *item.UpdatedParsed
		}

		items = append(items, RssFeedItem{
			Title:       item.Title,
			Link:        item.Link,
			PublishedAt: published,
		})
	}

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	return items, nil
}
