package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/tyrius02/next-gen-vision/internal/api/models"
	"github.com/tyrius02/next-gen-vision/internal/logging"
)

// LogsInput captures the optional log dump filters.
type LogsInput struct {
	Level  string `query:"level" enum:"debug,info,warn,error" example:"warn" doc:"Minimum level to include"`
	Module string `query:"module" example:"devices" doc:"Restrict to entries from one module"`
}

// registerLogRoutes registers the log dump endpoint.
func (s *Server) registerLogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-logs",
		Method:      http.MethodGet,
		Path:        "/api/logs",
		Summary:     "Logs",
		Description: "Dump the in-memory log buffer, oldest first, optionally filtered by minimum level and module. Live entries stream as log-entry events on /api/events.",
		Tags:        []string{"logs"},
		Errors:      []int{401},
		Security:    withAuth(),
	}, func(ctx context.Context, input *LogsInput) (*models.LogsResponse, error) {
		var entries []models.LogEntryData

		if buffer := logging.GetBuffer(); buffer != nil {
			filtered := buffer.ReadFiltered(input.Level, input.Module)
			entries = make([]models.LogEntryData, 0, len(filtered))
			for _, entry := range filtered {
				entries = append(entries, models.LogEntryData{
					Seq:        entry.Seq,
					Timestamp:  entry.Timestamp,
					Level:      entry.Level,
					Module:     entry.Module,
					Message:    entry.Message,
					Attributes: entry.Attributes,
				})
			}
		}

		return &models.LogsResponse{
			Body: models.LogsData{
				Entries: entries,
				Count:   len(entries),
			},
		}, nil
	})
}
