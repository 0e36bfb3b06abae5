package dto

import (
    "time"

    "blog-scout/models"
)

// ScrapeRunDTO mirrors one run summary for API consumers
type ScrapeRunDTO struct {
    ID           string    `json:"id"`
    RunID        string    `json:"run_id"`
    StartedAt    time.Time `json:"started_at"`
    FinishedAt   time.Time `json:"finished_at"`
    PagesScanned int       `json:"pages_scanned"`
    FeedsScanned int       `json:"feeds_scanned"`
    Found        int       `json:"found"`
    Saved        int       `json:"saved"`
    Skipped      int       `json:"skipped"`
    Failed       int       `json:"failed"`
}

// NewScrapeRunDTO constructs ScrapeRunDTO from models.ScrapeRun
func NewScrapeRunDTO(r models.ScrapeRun) ScrapeRunDTO {
    return ScrapeRunDTO{
        ID:           r.ID.Hex(),
        RunID:        r.RunID,
        StartedAt:    r.StartedAt,
        FinishedAt:   r.FinishedAt,
        PagesScanned: r.PagesScanned,
        FeedsScanned: r.FeedsScanned,
        Found:        r.Found,
        Saved:        r.Saved,
        Skipped:      r.Skipped,
        Failed:       r.Failed,
    }
}
