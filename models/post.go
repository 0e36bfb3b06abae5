package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a scraped blog post.
// In memory it is the unit flowing through the collection pipeline;
// when the Mongo archive is enabled it is also the document stored in
// the posts collection (unique index on link).
type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	// Title 은 앵커 텍스트에서 추출되며 200자(룬 기준)로 잘린다. 빈 값 없음.
	Title string `bson:"title" json:"title"`

	// Link 는 쿼리스트링이 제거된 canonical URL 이다.
	// 배치 내부와 Notion 양쪽에서 중복 판정 키로 사용한다.
	Link string `bson:"link" json:"link"`

	// Author 는 blog.naver.com/ 뒤의 경로 세그먼트에서 추출한 블로거 ID.
	// 패턴이 맞지 않으면 빈 문자열이다.
	Author string `bson:"author" json:"author"`

	// Source 는 수집 경로를 나타낸다. ("section" | "rss")
	Source string `bson:"source" json:"source"`

	// BlogName 은 RSS 소스로 수집된 경우 해당 블로그 이름이다.
	BlogName string `bson:"blog_name,omitempty" json:"blog_name,omitempty"`
}
