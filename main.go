package main

import (
	"context"
	"fmt"
	"os"

	"blog-scout/config"
	"blog-scout/db"
	"blog-scout/feeder"
	"blog-scout/kafka"
	"blog-scout/notion"
	"blog-scout/repositories"
	"blog-scout/services"
)

func main() {
	config.InitApp()
	cfg := config.GetConfig()

	// 필수 환경변수가 없으면 네트워크 호출 전에 즉시 중단한다
	if err := cfg.ValidateRequired(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx := context.Background()

	// 로컬 아카이브는 MONGO_URI 가 있을 때만 켠다. 실패해도 수집은 계속한다.
	var archive services.PostArchive
	var runs services.RunArchive
	if cfg.MongoURI != "" {
		if err := db.Init(ctx, &cfg); err != nil {
			config.Logger.Errorf("failed to initialize MongoDB, archive disabled: %v", err)
		} else {
			archive = repositories.NewPostRepository(db.Database())
			runs = repositories.NewScrapeRunRepository(db.Database())
		}
	}

	// 이벤트 발행도 선택 기능이다
	var eventService *services.EventService
	if kcfg := kafka.FromApp(&cfg); kcfg != nil {
		producer, err := kafka.NewProducer(kcfg)
		if err != nil {
			config.Logger.Errorf("failed to initialize Kafka producer, events disabled: %v", err)
		} else {
			defer producer.Close()
			eventService = services.NewEventService(producer)
		}
	}

	source := feeder.NewSectionFeeder(&cfg, "")
	store := notion.NewClient("", cfg.NotionToken, cfg.NotionDBID)

	collector := services.NewCollectorService(&cfg, source, store, archive, runs, eventService)
	sum := collector.Run(ctx)

	fmt.Printf("Done. New posts saved: %d\n", sum.Saved)
}
