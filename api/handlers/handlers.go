package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"blog-scout/dto"
	"blog-scout/repositories"
	"blog-scout/services"
)

// ListPostsHandler lists archived posts with pagination and filters.
func ListPostsHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.ListPostsInput
		// pagination
		in.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
		in.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
		// filters
		in.Author = c.Query("author")
		in.Source = c.Query("source")

		items, total, err := svc.List(c.Request.Context(), in)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
	}
}

// ListRunsHandler lists recent scrape run summaries, newest first.
func ListRunsHandler(repo *repositories.ScrapeRunRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

		runs, err := repo.ListRecent(c.Request.Context(), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		out := make([]dto.ScrapeRunDTO, 0, len(runs))
		for _, r := range runs {
			out = append(out, dto.NewScrapeRunDTO(r))
		}
		c.JSON(http.StatusOK, out)
	}
}
