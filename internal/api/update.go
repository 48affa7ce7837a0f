package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/tyrius02/next-gen-vision/internal/api/models"
	"github.com/tyrius02/next-gen-vision/internal/updater"
)

// registerUpdateRoutes registers the self-update endpoints.
func (s *Server) registerUpdateRoutes() {
	svc := s.options.UpdateService
	if svc == nil {
		return
	}

	// Check for updates and report updater state
	huma.Register(s.api, huma.Operation{
		OperationID: "get-update",
		Method:      http.MethodGet,
		Path:        "/api/update",
		Summary:     "Update Check",
		Description: "Check GitHub releases for a newer version and report the updater state",
		Tags:        []string{"update"},
		Errors:      []int{401, 409, 500},
		Security:    withAuth(),
	}, func(ctx context.Context, _ *struct{}) (*models.UpdateResponse, error) {
		if svc.IsEnabled() && !updateBusy(svc.GetStatus(ctx).State) {
			info, err := svc.CheckForUpdate(ctx)
			if err != nil {
				return nil, mapUpdateError(err)
			}
			return &models.UpdateResponse{Body: updateData(svc.GetStatus(ctx), info)}, nil
		}

		// Busy or disabled: report state without touching the network
		return &models.UpdateResponse{Body: updateData(svc.GetStatus(ctx), nil)}, nil
	})

	// Apply the available update
	huma.Register(s.api, huma.Operation{
		OperationID: "apply-update",
		Method:      http.MethodPost,
		Path:        "/api/update",
		Summary:     "Apply Update",
		Description: "Download and apply the available update, then restart. Runs a check first when no release is staged.",
		Tags:        []string{"update"},
		Errors:      []int{400, 401, 409, 500, 503},
		Security:    withAuth(),
	}, func(ctx context.Context, _ *struct{}) (*models.UpdateApplyResponse, error) {
		if err := svc.ApplyUpdate(ctx); err != nil {
			return nil, mapUpdateError(err)
		}

		resp := &models.UpdateApplyResponse{}
		resp.Body.Message = "Update applied, restarting..."
		return resp, nil
	})
}

// updateBusy reports whether the updater is mid-transition, in which case
// a new release check would be rejected.
func updateBusy(state updater.State) bool {
	switch state {
	case updater.StateChecking, updater.StateDownloading, updater.StateApplying, updater.StateRestarting:
		return true
	}
	return false
}

// updateData merges the updater status with an optional check result.
func updateData(status *updater.Status, info *updater.UpdateInfo) models.UpdateData {
	data := models.UpdateData{
		State:           string(status.State),
		Enabled:         status.Enabled,
		DisabledReason:  status.DisabledReason,
		CurrentVersion:  status.CurrentVersion,
		LatestVersion:   status.TargetVersion,
		LastChecked:     status.LastChecked,
		Error:           status.Error,
		BackupAvailable: status.BackupAvailable,
		BackupVersion:   status.BackupVersion,
	}

	if info != nil {
		data.LatestVersion = info.LatestVersion
		data.UpdateAvailable = info.UpdateAvailable
		data.ReleaseNotes = info.ReleaseNotes
		data.ReleaseURL = info.ReleaseURL
		data.AssetSize = info.AssetSize
		if !info.PublishedAt.IsZero() {
			published := info.PublishedAt
			data.PublishedAt = &published
		}
	}

	return data
}

// mapUpdateError turns the updater's coded errors into the HTTP statuses
// they deserve; anything uncoded becomes a 500.
func mapUpdateError(err error) error {
	var updateErr *updater.Error
	if errors.As(err, &updateErr) {
		switch updateErr.Code {
		case updater.ErrCodeInvalidState:
			return huma.Error409Conflict(updateErr.Message)
		case updater.ErrCodeNoUpdate:
			return huma.Error400BadRequest(updateErr.Message)
		case updater.ErrCodeNotFound:
			return huma.Error404NotFound(updateErr.Message)
		case updater.ErrCodeDisabled:
			return huma.Error503ServiceUnavailable(updateErr.Message)
		default:
			return huma.Error500InternalServerError(updateErr.Message)
		}
	}
	return huma.Error500InternalServerError(err.Error())
}
