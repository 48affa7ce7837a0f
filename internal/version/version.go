package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
)

// Set at build time via -ldflags -X. fillFromBuildInfo supplies
// fallbacks for builds that skip them.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	BuildID   = "unknown"
)

// Info is the build identity reported by the version command and the
// version endpoint.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	BuildID   string `json:"build_id"`
	GoVersion string `json:"go_version"`
	Compiler  string `json:"compiler"`
	Platform  string `json:"platform"`
}

var fillOnce sync.Once

// fillFromBuildInfo backfills values not set via ldflags from the
// binary's embedded build info. Module builds without ldflags still
// get a usable version and commit this way.
func fillFromBuildInfo() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if GitCommit == "unknown" {
				GitCommit = setting.Value
			}
		case "vcs.time":
			if BuildDate == "unknown" {
				BuildDate = setting.Value
			}
		}
	}
}

// Get assembles the full build identity, including runtime facts.
func Get() Info {
	fillOnce.Do(fillFromBuildInfo)
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		BuildID:   BuildID,
		GoVersion: runtime.Version(),
		Compiler:  runtime.Compiler,
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns just the version, backfilled if ldflags left it "dev".
func String() string {
	fillOnce.Do(fillFromBuildInfo)
	return Version
}
