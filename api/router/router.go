package router

import (
    "context"
    "net/http"

    "github.com/gin-gonic/gin"
    "go.mongodb.org/mongo-driver/bson"

    "blog-scout/api/handlers"
    "blog-scout/db"
    "blog-scout/repositories"
    "blog-scout/services"
)

func New() *gin.Engine {
    r := gin.Default()

    // Health check
    r.GET("/health", func(c *gin.Context) {
        // Try ping MongoDB
        if err := db.Database().RunCommand(context.Background(), bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
            c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "mongo": "down", "error": err.Error()})
            return
        }
        c.JSON(http.StatusOK, gin.H{"status": "ok"})
    })

    // v1 routes
    api := r.Group("/api/v1")
    {
        postSvc := services.NewPostService(repositories.NewPostRepository(db.Database()))
        runRepo := repositories.NewScrapeRunRepository(db.Database())
        api.GET("/posts", handlers.ListPostsHandler(postSvc))
        api.GET("/runs", handlers.ListRunsHandler(runRepo))
    }

    return r
}
