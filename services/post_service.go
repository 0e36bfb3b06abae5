package services

import (
    "context"

    "blog-scout/dto"
    "blog-scout/repositories"
)

// PostService encapsulates read logic over the archive and DTO mapping
type PostService struct {
    repo *repositories.PostRepository
}

func NewPostService(repo *repositories.PostRepository) *PostService {
    return &PostService{repo: repo}
}

type ListPostsInput struct {
    Page     int
    PageSize int
    Author   string
    Source   string
}

func (s *PostService) List(ctx context.Context, in ListPostsInput) ([]dto.PostDTO, int64, error) {
    items, total, err := s.repo.List(ctx, repositories.ListPostsOptions{
        Page:     in.Page,
        PageSize: in.PageSize,
        Author:   in.Author,
        Source:   in.Source,
    })
    if err != nil {
        return nil, 0, err
    }
    out := make([]dto.PostDTO, 0, len(items))
    for _, p := range items {
        out = append(out, dto.NewPostDTO(p))
    }
    return out, total, nil
}
