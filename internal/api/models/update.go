package models

import "time"

// UpdateData combines updater state with the latest release check result.
type UpdateData struct {
	State           string     `json:"state" example:"idle" doc:"Updater state"`
	Enabled         bool       `json:"enabled" example:"true" doc:"Whether self-update is available on this install"`
	DisabledReason  string     `json:"disabled_reason,omitempty" doc:"Why self-update is unavailable"`
	CurrentVersion  string     `json:"current_version" example:"1.2.0" doc:"Currently installed version"`
	LatestVersion   string     `json:"latest_version,omitempty" example:"1.3.0" doc:"Latest released version"`
	UpdateAvailable bool       `json:"update_available" example:"true" doc:"Whether a newer release exists"`
	ReleaseNotes    string     `json:"release_notes,omitempty" doc:"Markdown release notes"`
	ReleaseURL      string     `json:"release_url,omitempty" doc:"Release page URL"`
	PublishedAt     *time.Time `json:"published_at,omitempty" doc:"When the release was published"`
	AssetSize       int        `json:"asset_size,omitempty" example:"5242880" doc:"Release asset size in bytes"`
	LastChecked     *time.Time `json:"last_checked,omitempty" doc:"When releases were last checked"`
	Error           string     `json:"error,omitempty" doc:"Error message when the updater is in the error state"`
	BackupAvailable bool       `json:"backup_available" example:"false" doc:"Whether a rollback backup exists"`
	BackupVersion   string     `json:"backup_version,omitempty" example:"1.1.0" doc:"Version of the backup binary"`
}

// UpdateResponse wraps UpdateData for API responses.
type UpdateResponse struct {
	Body UpdateData
}

// UpdateApplyResponse confirms an accepted update.
type UpdateApplyResponse struct {
	Body struct {
		Message string `json:"message" example:"Update applied, restarting..." doc:"Status message"`
	}
}
