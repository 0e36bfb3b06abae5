package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"blog-scout/models"
)

const defaultBaseURL = "https://api.notion.com"

// apiVersion 은 Notion-Version 헤더 값이다. 올리려면 페이로드 호환성 확인 필요.
const apiVersion = "2022-06-28"

// Client is a minimal Notion API client covering database queries and
// page creation for the post database.
type Client struct {
	baseURL    string
	token      string
	databaseID string
	httpClient *http.Client
}

// NewClient creates a Notion API client. If baseURL is empty, it defaults to
// https://api.notion.com.
func NewClient(baseURL, token, databaseID string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		token:      token,
		databaseID: databaseID,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// PageExists reports whether the database already holds a page whose URL
// property equals url exactly. 결과는 최대 1건만 요청한다.
func (c *Client) PageExists(ctx context.Context, url string) (bool, error) {
	body := queryRequest{
		Filter: queryFilter{
			Property: "URL",
			URL:      urlCondition{Equals: url},
		},
		PageSize: 1,
	}

	var resp queryResponse
	if err := c.post(ctx, "/v1/databases/"+c.databaseID+"/query", body, &resp); err != nil {
		return false, fmt.Errorf("query database: %w", err)
	}
	return len(resp.Results) > 0, nil
}

// CreatePage creates a new page in the post database with four properties:
// Name (title), Blogger (rich_text), URL (url), Scraped At (date, UTC).
func (c *Client) CreatePage(ctx context.Context, post models.Post) error {
	now := time.Now().UTC().Format(time.RFC3339)

	body := createPageRequest{
		Parent: pageParent{DatabaseID: c.databaseID},
		Properties: pageProperties{
			Name: titleProperty{
				Title: []textBlock{{Text: textContent{Content: post.Title}}},
			},
			Blogger: richTextProperty{
				RichText: []textBlock{{Text: textContent{Content: post.Author}}},
			},
			URL:       urlProperty{URL: post.Link},
			ScrapedAt: dateProperty{Date: dateValue{Start: now}},
		},
	}

	if err := c.post(ctx, "/v1/pages", body, nil); err != nil {
		return fmt.Errorf("create page: %w", err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body any, result any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}

	return nil
}

type queryRequest struct {
	Filter   queryFilter `json:"filter"`
	PageSize int         `json:"page_size"`
}

type queryFilter struct {
	Property string       `json:"property"`
	URL      urlCondition `json:"url"`
}

type urlCondition struct {
	Equals string `json:"equals"`
}

type queryResponse struct {
	Results []json.RawMessage `json:"results"`
}

type createPageRequest struct {
	Parent     pageParent     `json:"parent"`
	Properties pageProperties `json:"properties"`
}

type pageParent struct {
	DatabaseID string `json:"database_id"`
}

type pageProperties struct {
	Name      titleProperty    `json:"Name"`
	Blogger   richTextProperty `json:"Blogger"`
	URL       urlProperty      `json:"URL"`
	ScrapedAt dateProperty     `json:"Scraped At"`
}

type titleProperty struct {
	Title []textBlock `json:"title"`
}

type richTextProperty struct {
	RichText []textBlock `json:"rich_text"`
}

type textBlock struct {
	Text textContent `json:"text"`
}

type textContent struct {
	Content string `json:"content"`
}

type urlProperty struct {
	URL string `json:"url"`
}

type dateProperty struct {
	Date dateValue `json:"date"`
}

type dateValue struct {
	Start string `json:"start"`
}
