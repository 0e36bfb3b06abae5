package dto

import (
    "time"

    "blog-scout/models"
)

// PostDTO exposes the minimal fields needed for API consumers
// ID is a hex string to keep transport simple
type PostDTO struct {
    ID        string    `json:"id"`
    Title     string    `json:"title"`
    Link      string    `json:"link"`
    Author    string    `json:"author"`
    Source    string    `json:"source"`
    BlogName  string    `json:"blog_name,omitempty"`
    CreatedAt time.Time `json:"created_at"`
}

// NewPostDTO constructs PostDTO from models.Post
func NewPostDTO(p models.Post) PostDTO {
    return PostDTO{
        ID:        p.ID.Hex(),
        Title:     p.Title,
        Link:      p.Link,
        Author:    p.Author,
        Source:    p.Source,
        BlogName:  p.BlogName,
        CreatedAt: p.CreatedAt,
    }
}
