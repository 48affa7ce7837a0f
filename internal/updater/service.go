// Package updater provides self-update from GitHub releases: version
// checks, binary replacement with backup and rollback, and a periodic
// checker that announces newer releases on the event bus.
package updater

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"syscall"
	"time"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/tyrius02/next-gen-vision/internal/events"
	"github.com/tyrius02/next-gen-vision/internal/logging"
	"github.com/tyrius02/next-gen-vision/internal/version"
)

// State is where the updater sits in its lifecycle.
type State string

// The lifecycle runs idle through restarting; error and rolled_back are
// terminal until the next check.
const (
	StateIdle        State = "idle"
	StateChecking    State = "checking"
	StateAvailable   State = "available"
	StateDownloading State = "downloading"
	StateApplying    State = "applying"
	StateRestarting  State = "restarting"
	StateError       State = "error"
	StateRolledBack  State = "rolled_back"
)

// Service is the updater as the API consumes it.
type Service interface {
	// CheckForUpdate asks the release source for a newer version.
	// Nothing is downloaded.
	CheckForUpdate(ctx context.Context) (*UpdateInfo, error)

	// ApplyUpdate swaps the running binary for the latest release and
	// arranges a restart.
	ApplyUpdate(ctx context.Context) error

	// GetStatus reports the lifecycle state, versions, and backup info.
	GetStatus(ctx context.Context) *Status

	// StartPeriodicChecks runs background update checks until ctx ends.
	StartPeriodicChecks(ctx context.Context, interval time.Duration)

	// IsEnabled reports whether self-update can work for this build in
	// this location. False means the startup checks disqualified it.
	IsEnabled() bool

	// DisabledReason names what disqualified self-update; empty when
	// enabled.
	DisabledReason() string
}

// UpdateInfo describes the newest known release relative to the running
// version.
type UpdateInfo struct {
	CurrentVersion  string    `json:"current_version"`
	LatestVersion   string    `json:"latest_version"`
	ReleaseNotes    string    `json:"release_notes,omitempty"`
	ReleaseURL      string    `json:"release_url,omitempty"`
	PublishedAt     time.Time `json:"published_at"`
	AssetSize       int       `json:"asset_size,omitempty"`
	UpdateAvailable bool      `json:"update_available"`
}

// Status is the wire shape GetStatus returns.
type Status struct {
	State           State      `json:"state"`
	Enabled         bool       `json:"enabled"`
	DisabledReason  string     `json:"disabled_reason,omitempty"`
	CurrentVersion  string     `json:"current_version"`
	TargetVersion   string     `json:"target_version,omitempty"`
	Error           string     `json:"error,omitempty"`
	LastChecked     *time.Time `json:"last_checked,omitempty"`
	BackupAvailable bool       `json:"backup_available"`
	BackupVersion   string     `json:"backup_version,omitempty"`
}

// Options configures NewService.
type Options struct {
	Repository string      // GitHub repo slug (e.g., "tyrius02/next-gen-vision")
	Prerelease bool        // Consider prereleases when comparing versions
	EventBus   *events.Bus // Optional; newer releases found by periodic checks are announced here
}

type service struct {
	repository selfupdate.Repository
	updater    *selfupdate.Updater
	backups    *backupManager
	bus        *events.Bus

	mu            sync.RWMutex
	state         State
	latestRelease *selfupdate.Release
	lastChecked   *time.Time
	lastError     error
	lastAnnounced string

	enabled        bool
	disabledReason string

	logger *slog.Logger
}

// NewService creates the updater. The service comes up disabled, not
// failed, when self-update cannot work here: dev builds have no release
// to compare against, and the binary location must be writable.
func NewService(opts *Options) (Service, error) {
	logger := logging.GetLogger("updater")

	disabled := func(reason string) Service {
		logger.Warn("Update service disabled", "reason", reason)
		return &service{
			enabled:        false,
			disabledReason: reason,
			state:          StateIdle,
			logger:         logger,
		}
	}

	if opts == nil || opts.Repository == "" {
		return disabled("no update repository configured"), nil
	}
	if version.Version == "dev" {
		return disabled("dev builds have no release version to update from"), nil
	}
	if canWrite, reason := checkWritePermission(); !canWrite {
		return disabled(reason), nil
	}

	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub source: %w", err)
	}

	upd, err := selfupdate.NewUpdater(selfupdate.Config{
		Source:     source,
		Prerelease: opts.Prerelease,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create updater: %w", err)
	}

	backups, err := newBackupManager(logger)
	if err != nil {
		logger.Warn("Failed to create backup manager", "error", err)
	}

	return &service{
		repository: selfupdate.ParseSlug(opts.Repository),
		updater:    upd,
		backups:    backups,
		bus:        opts.EventBus,
		state:      StateIdle,
		enabled:    true,
		logger:     logger,
	}, nil
}

func checkWritePermission() (bool, string) {
	exe, err := os.Executable()
	if err != nil {
		return false, fmt.Sprintf("failed to get executable path: %v", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return false, fmt.Sprintf("failed to resolve symlinks: %v", err)
	}

	dir := filepath.Dir(exe)

	tmp := filepath.Join(dir, ".vision-node.update.test")
	f, err := os.Create(tmp)
	if err != nil {
		return false, fmt.Sprintf("no write permission to %s: %v", dir, err)
	}
	f.Close()
	os.Remove(tmp)
	return true, ""
}

func (s *service) IsEnabled() bool {
	return s.enabled
}

func (s *service) DisabledReason() string {
	return s.disabledReason
}

// CheckForUpdate queries the release source and compares the newest
// release against the running version.
func (s *service) CheckForUpdate(ctx context.Context) (*UpdateInfo, error) {
	if !s.enabled {
		return nil, newError(ErrCodeDisabled, s.disabledReason, nil)
	}

	if !s.transitionTo(StateChecking, StateIdle, StateAvailable, StateError) {
		return nil, newError(ErrCodeInvalidState,
			fmt.Sprintf("cannot check for updates in state %s", s.getState()), nil)
	}

	currentVersion := version.Version

	release, found, err := s.updater.DetectLatest(ctx, s.repository)
	if err != nil {
		s.setError(err)
		return nil, newError(ErrCodeCheckFailed, "failed to check for updates", err)
	}

	now := time.Now()
	s.mu.Lock()
	s.lastChecked = &now
	s.mu.Unlock()

	if !found {
		s.setError(fmt.Errorf("repository not found or has no releases"))
		return nil, newError(ErrCodeNotFound, "repository not found or has no releases", nil)
	}

	if !release.GreaterThan(currentVersion) {
		s.transitionTo(StateIdle)
		return &UpdateInfo{
			CurrentVersion:  currentVersion,
			LatestVersion:   release.Version(),
			UpdateAvailable: false,
		}, nil
	}

	// Keep the release for a later ApplyUpdate.
	s.mu.Lock()
	s.latestRelease = release
	s.mu.Unlock()
	s.transitionTo(StateAvailable)

	return &UpdateInfo{
		CurrentVersion:  currentVersion,
		LatestVersion:   release.Version(),
		ReleaseNotes:    release.ReleaseNotes,
		ReleaseURL:      release.URL,
		PublishedAt:     release.PublishedAt,
		AssetSize:       release.AssetByteSize,
		UpdateAvailable: true,
	}, nil
}

// ApplyUpdate downloads and applies the latest update. The current
// binary is backed up first; a failed apply restores it. A successful
// apply sends SIGTERM so the service manager restarts the new binary.
func (s *service) ApplyUpdate(ctx context.Context) error {
	if !s.enabled {
		return newError(ErrCodeDisabled, s.disabledReason, nil)
	}

	// From idle, check first so there is a release to apply.
	if s.getState() == StateIdle {
		info, err := s.CheckForUpdate(ctx)
		if err != nil {
			return err
		}
		if !info.UpdateAvailable {
			return newError(ErrCodeNoUpdate, "no update available", nil)
		}
	}

	if !s.transitionTo(StateDownloading, StateAvailable) {
		return newError(ErrCodeInvalidState,
			fmt.Sprintf("cannot apply update in state %s", s.getState()), nil)
	}

	if s.backups != nil {
		if err := s.backups.createBackup(); err != nil {
			s.setError(err)
			return newError(ErrCodeBackupFailed, "failed to create backup", err)
		}
	}

	s.transitionTo(StateApplying)

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		s.setError(err)
		s.attemptRollback()
		return newError(ErrCodeApplyFailed, "failed to get executable path", err)
	}

	s.mu.RLock()
	release := s.latestRelease
	s.mu.RUnlock()

	if err := s.updater.UpdateTo(ctx, release, exe); err != nil {
		s.setError(err)
		s.attemptRollback()
		return newError(ErrCodeApplyFailed, "failed to apply update", err)
	}

	s.transitionTo(StateRestarting)
	s.logger.Info("Update applied, triggering restart", "version", release.Version())

	// Short delay so the API response gets out before the restart.
	go func() {
		time.Sleep(500 * time.Millisecond)
		s.triggerRestart()
	}()

	return nil
}

// GetStatus snapshots the whole updater under one read lock.
func (s *service) GetStatus(_ context.Context) *Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := &Status{
		State:          s.state,
		Enabled:        s.enabled,
		DisabledReason: s.disabledReason,
		CurrentVersion: version.Version,
		LastChecked:    s.lastChecked,
	}

	if s.latestRelease != nil {
		status.TargetVersion = s.latestRelease.Version()
	}

	if s.lastError != nil {
		status.Error = s.lastError.Error()
	}

	if s.backups != nil {
		status.BackupAvailable = s.backups.hasBackup()
		status.BackupVersion = s.backups.backupVersion()
	}

	return status
}

// StartPeriodicChecks checks for updates every interval and announces
// newer releases on the event bus. Each release is announced once.
func (s *service) StartPeriodicChecks(ctx context.Context, interval time.Duration) {
	if !s.enabled || interval <= 0 {
		return
	}
	s.logger.Info("Periodic update checks started", "interval", interval)
	go s.checkLoop(ctx, interval)
}

func (s *service) checkLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			info, err := s.CheckForUpdate(ctx)
			if err != nil {
				s.logger.Warn("Periodic update check failed", "error", err)
				continue
			}
			if info.UpdateAvailable {
				s.announce(info)
			}
		}
	}
}

func (s *service) announce(info *UpdateInfo) {
	s.mu.Lock()
	seen := s.lastAnnounced == info.LatestVersion
	s.lastAnnounced = info.LatestVersion
	s.mu.Unlock()
	if seen {
		return
	}

	s.logger.Info("Update available",
		"current", info.CurrentVersion, "latest", info.LatestVersion)
	if s.bus != nil {
		s.bus.Publish(events.UpdateAvailableEvent{
			CurrentVersion: info.CurrentVersion,
			LatestVersion:  info.LatestVersion,
			ReleaseURL:     info.ReleaseURL,
			Timestamp:      time.Now().Format(time.RFC3339),
		})
	}
}

func (s *service) transitionTo(newState State, validFromStates ...State) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(validFromStates) > 0 && !slices.Contains(validFromStates, s.state) {
		return false
	}

	s.logger.Debug("State transition", "from", s.state, "to", newState)
	s.state = newState
	s.lastError = nil
	return true
}

func (s *service) getState() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *service) setError(err error) {
	s.mu.Lock()
	s.lastError = err
	s.state = StateError
	s.mu.Unlock()
}

func (s *service) attemptRollback() {
	if s.backups == nil || !s.backups.hasBackup() {
		s.logger.Error("No backup available for automatic rollback")
		return
	}

	if err := s.backups.restore(); err != nil {
		s.logger.Error("Failed to restore backup", "error", err)
		return
	}

	s.transitionTo(StateRolledBack)
	s.logger.Info("Automatic rollback completed")
}

func (s *service) triggerRestart() {
	proc, err := os.FindProcess(os.Getpid())
	if err != nil {
		s.logger.Error("Failed to find own process", "error", err)
		return
	}

	s.logger.Info("Sending SIGTERM to trigger restart")
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		s.logger.Error("Failed to send SIGTERM", "error", err)
	}
}
