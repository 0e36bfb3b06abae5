package events

import "time"

// EventType 이벤트 타입을 정의하는 열거형
type EventType string

const (
	// PostSaved 는 새 포스트가 Notion 에 저장되었을 때 발행된다.
	PostSaved EventType = "post.saved"
)

// BaseEvent 모든 이벤트의 기본 구조
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
}

// GetType 이벤트 타입을 반환
func (e BaseEvent) GetType() EventType {
	return e.Type
}

// PostSavedEvent 새 포스트가 외부 저장소에 기록되었을 때 발행되는 이벤트
type PostSavedEvent struct {
	BaseEvent
	Title  string `json:"title"`
	Author string `json:"author"`
	Link   string `json:"link"`
	// Origin 은 수집 경로다. 섹션 피드는 "section", RSS 는 블로그 이름.
	Origin string `json:"origin"`
}
