package services

import (
	"time"

	"github.com/google/uuid"

	"blog-scout/events"
	"blog-scout/kafka"
	"blog-scout/models"
)

// EventService 는 수집 결과 이벤트 발행을 담당한다.
type EventService struct {
	producer kafka.Producer
}

// NewEventService 새로운 이벤트 서비스 생성
func NewEventService(producer kafka.Producer) *EventService {
	return &EventService{
		producer: producer,
	}
}

// PublishPostSaved 는 포스트 저장 이벤트를 발행한다.
func (s *EventService) PublishPostSaved(post models.Post, origin string) error {
	event := events.PostSavedEvent{
		BaseEvent: events.BaseEvent{
			ID:        uuid.New().String(),
			Type:      events.PostSaved,
			Timestamp: time.Now(),
			Source:    "collector",
			Version:   "1.0",
		},
		Title:  post.Title,
		Author: post.Author,
		Link:   post.Link,
		Origin: origin,
	}

	return s.producer.PublishEvent(kafka.TopicPostEvents, event.ID, event)
}
