package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"blog-scout/config"
	"blog-scout/feeder"
	"blog-scout/models"
	"blog-scout/parser"
)

// PageSource 는 이웃 새 글 피드 한 페이지의 원본 마크업을 돌려준다.
type PageSource interface {
	FetchPage(ctx context.Context, page int) (string, error)
}

// PostStore 는 외부 저장소(Notion)에 대한 존재 확인과 페이지 생성이다.
type PostStore interface {
	PageExists(ctx context.Context, url string) (bool, error)
	CreatePage(ctx context.Context, post models.Post) error
}

// PostArchive 는 선택적인 로컬 Mongo 아카이브다. Notion 호출 전의
// 저렴한 존재 확인과, 저장 성공 후의 기록에 쓰인다.
type PostArchive interface {
	IsExistByLink(ctx context.Context, link string) (bool, error)
	Insert(ctx context.Context, p *models.Post) (*mongo.InsertOneResult, error)
}

// RunArchive 는 실행 요약 기록이다.
type RunArchive interface {
	Insert(ctx context.Context, run *models.ScrapeRun) (*mongo.InsertOneResult, error)
}

// RunSummary 는 한 번의 수집 실행 결과다.
type RunSummary struct {
	RunID        string
	StartedAt    time.Time
	FinishedAt   time.Time
	PagesScanned int
	FeedsScanned int
	Found        int
	Saved        int
	Skipped      int
	Failed       int
}

// CollectorService 는 수집 파이프라인 전체를 순차 실행한다.
// fetch → extract → dedupe → exists → create. 페이지/아이템 단위 실패는
// 모두 로그만 남기고 배치를 계속한다.
type CollectorService struct {
	cfg     *config.AppConfig
	source  PageSource
	store   PostStore
	archive PostArchive   // nil 이면 로컬 아카이브 비활성화
	runs    RunArchive    // nil 이면 실행 기록 비활성화
	events  *EventService // nil 이면 이벤트 발행 비활성화
}

// NewCollectorService 는 수집 서비스를 생성한다. archive/runs/events 는
// 해당 인프라가 설정되지 않았으면 nil 로 전달한다.
func NewCollectorService(cfg *config.AppConfig, source PageSource, store PostStore, archive PostArchive, runs RunArchive, events *EventService) *CollectorService {
	return &CollectorService{
		cfg:     cfg,
		source:  source,
		store:   store,
		archive: archive,
		runs:    runs,
		events:  events,
	}
}

// Run executes one full collection cycle: the section feed pages first,
// then the configured RSS blog sources. Returns the run summary.
func (s *CollectorService) Run(ctx context.Context) RunSummary {
	sum := RunSummary{
		RunID:     uuid.New().String(),
		StartedAt: time.Now(),
	}

	s.collectSectionPages(ctx, &sum)
	s.collectRssBlogs(ctx, &sum)

	sum.FinishedAt = time.Now()
	s.recordRun(ctx, sum)
	return sum
}

// collectSectionPages 는 이웃 새 글 피드를 1페이지부터 MaxPage 까지 훑는다.
func (s *CollectorService) collectSectionPages(ctx context.Context, sum *RunSummary) {
	for page := 1; page <= s.cfg.Scrape.MaxPage; page++ {
		config.Logger.Infof("fetching feed page %d", page)

		markup, err := s.source.FetchPage(ctx, page)
		if err != nil {
			// 이 페이지는 포스트 0건으로 취급하고 다음 페이지로 넘어간다
			config.Logger.Errorf("page fetch error: %v", err)
			continue
		}
		sum.PagesScanned++

		posts, err := parser.ExtractPosts(markup)
		if err != nil {
			config.Logger.Errorf("failed to parse page %d: %v", page, err)
			continue
		}
		if len(posts) == 0 {
			config.Logger.Infof("no posts found on page %d", page)
			continue
		}
		sum.Found += len(posts)

		for _, p := range posts {
			s.processPost(ctx, p, "section", sum)
		}

		s.pause(s.cfg.Scrape.PageDelayMs)
	}
}

// collectRssBlogs 는 config.yaml 의 blogs 목록을 같은 파이프라인으로 수집한다.
func (s *CollectorService) collectRssBlogs(ctx context.Context, sum *RunSummary) {
	for _, blog := range s.cfg.Blogs {
		items, err := feeder.FetchRssFeeds(blog.RSSURL, s.cfg.BlogFetchBatchSize)
		if err != nil {
			config.Logger.Errorf("fetch rss error for %s: %v", blog.Name, err)
			continue
		}
		sum.FeedsScanned++

		for _, item := range items {
			p, ok := parser.NormalizePost(item.Title, item.Link)
			if !ok {
				continue
			}
			p.Source = "rss"
			p.BlogName = blog.Name
			sum.Found++

			s.processPost(ctx, p, blog.Name, sum)
		}

		s.pause(s.cfg.Scrape.PageDelayMs)
	}
}

// processPost 는 포스트 하나를 중복 확인 후 외부 저장소에 기록한다.
func (s *CollectorService) processPost(ctx context.Context, p models.Post, origin string, sum *RunSummary) {
	// 로컬 아카이브가 있으면 Notion 호출 전에 먼저 확인한다
	if s.archive != nil {
		exists, err := s.archive.IsExistByLink(ctx, p.Link)
		if err != nil {
			config.Logger.Warnf("archive lookup failed for %s: %v", p.Link, err)
		} else if exists {
			sum.Skipped++
			return
		}
	}

	exists, err := s.store.PageExists(ctx, p.Link)
	if err != nil {
		if s.cfg.Scrape.DedupeFailClosed {
			config.Logger.Errorf("existence check failed for %s, skipping: %v", p.Link, err)
			sum.Failed++
			return
		}
		// fail-open: 확인 실패를 "없음"으로 간주한다. 외부 저장소 장애 시
		// 중복 생성 위험이 있지만 배치를 막지 않는다.
		config.Logger.Errorf("existence check failed for %s, assuming new: %v", p.Link, err)
		exists = false
	}
	if exists {
		sum.Skipped++
		return
	}

	if err := s.store.CreatePage(ctx, p); err != nil {
		config.Logger.Errorf("failed to save post %s: %v", p.Link, err)
		sum.Failed++
	} else {
		sum.Saved++
		config.Logger.Infof("saved post: %s (%s)", p.Title, p.Link)

		if s.archive != nil {
			if _, err := s.archive.Insert(ctx, &p); err != nil {
				config.Logger.Warnf("failed to archive post %s: %v", p.Link, err)
			}
		}
		if s.events != nil {
			if err := s.events.PublishPostSaved(p, origin); err != nil {
				config.Logger.Errorf("failed to publish PostSaved event: %v", err)
			}
		}
	}

	// 외부 API 를 너무 빠르게 호출하지 않도록 생성 시도 후에만 쉰다
	s.pause(s.cfg.Scrape.ItemDelayMs)
}

func (s *CollectorService) recordRun(ctx context.Context, sum RunSummary) {
	if s.runs == nil {
		return
	}
	run := &models.ScrapeRun{
		RunID:        sum.RunID,
		StartedAt:    sum.StartedAt,
		FinishedAt:   sum.FinishedAt,
		PagesScanned: sum.PagesScanned,
		FeedsScanned: sum.FeedsScanned,
		Found:        sum.Found,
		Saved:        sum.Saved,
		Skipped:      sum.Skipped,
		Failed:       sum.Failed,
	}
	if _, err := s.runs.Insert(ctx, run); err != nil {
		config.Logger.Errorf("failed to record scrape run %s: %v", sum.RunID, err)
	}
}

func (s *CollectorService) pause(ms int) {
	if ms > 0 {
		time.Sleep(time.Duration(ms) * time.Millisecond)
	}
}
