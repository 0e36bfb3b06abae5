package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"blog-scout/models"
)

// BlogHost 는 수집 대상 링크를 판별하는 호스트 문자열이다.
const BlogHost = "blog.naver.com"

// authorMarker 뒤의 첫 경로 세그먼트를 블로거 ID 로 사용한다.
const authorMarker = "blog.naver.com/"

// MaxTitleLen 은 Notion title 필드 제약에 맞춘 제목 최대 길이(룬 기준)다.
const MaxTitleLen = 200

// ExtractPosts scans all anchor elements in the markup and returns the
// blog.naver.com post candidates found in it.
//
// 중복 제거는 canonical URL 을 키로 하며, 순서가 구현에 따라 흔들리지 않도록
// 첫 등장 위치를 유지한 채 나중 항목이 필드를 덮어쓴다(last-write-wins).
// 매칭되는 링크가 없으면 빈 슬라이스를 반환한다. 에러가 아니다.
func ExtractPosts(markup string) ([]models.Post, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	posts := []models.Post{}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || !strings.Contains(href, BlogHost) {
			return
		}

		p, ok := NormalizePost(sel.Text(), href)
		if !ok {
			return
		}
		p.Source = "section"

		if i, seen := index[p.Link]; seen {
			posts[i] = p
		} else {
			index[p.Link] = len(posts)
			posts = append(posts, p)
		}
	})

	return posts, nil
}

// NormalizePost 는 제목/링크 한 쌍을 수집 파이프라인이 쓰는 형태로 정규화한다.
// 제목이 비어 있으면 후보에서 제외한다(ok=false).
func NormalizePost(title, rawLink string) (models.Post, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Post{}, false
	}

	link := CanonicalURL(rawLink)
	return models.Post{
		Title:  TruncateTitle(title),
		Link:   link,
		Author: AuthorFromLink(link),
	}, true
}

// CanonicalURL strips everything from the first '?' onward.
// 이미 깨끗한 URL 에 적용해도 변하지 않는다.
func CanonicalURL(raw string) string {
	if i := strings.Index(raw, "?"); i >= 0 {
		return raw[:i]
	}
	return raw
}

// AuthorFromLink 는 blog.naver.com/ 뒤의 경로 세그먼트를 블로거 ID 로 추출한다.
// 마커가 없으면 빈 문자열을 반환한다. 의도된 관대한 fallback 이다.
func AuthorFromLink(link string) string {
	i := strings.Index(link, authorMarker)
	if i < 0 {
		return ""
	}
	rest := link[i+len(authorMarker):]
	if j := strings.Index(rest, "/"); j >= 0 {
		return rest[:j]
	}
	return rest
}

// TruncateTitle returns the title truncated to MaxTitleLen runes.
func TruncateTitle(s string) string {
	rs := []rune(s)
	if len(rs) <= MaxTitleLen {
		return s
	}
	return string(rs[:MaxTitleLen])
}
