// Package version describes the running paddock build.
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Name is the program name used in version strings and the User-Agent.
const Name = "paddock"

// Info contains version information about paddock.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	GoVer   string `json:"go_version"`
	OS      string `json:"os"`
	Arch    string `json:"arch"`
}

// NewInfo creates a new Info from the build variables.
func NewInfo(version, commit, date string) *Info {
	return &Info{
		Version: version,
		Commit:  commit,
		Date:    date,
		GoVer:   runtime.Version(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}
}

// String returns a formatted version string.
func (i *Info) String() string {
	return fmt.Sprintf("%s %s (commit: %s, built: %s)", Name, i.Version, i.Commit, i.Date)
}

// FullString returns a detailed version string.
func (i *Info) FullString() string {
	return fmt.Sprintf(`%s %s
  Commit:   %s
  Built:    %s
  Go:       %s
  OS/Arch:  %s/%s`, Name, i.Version, i.Commit, i.Date, i.GoVer, i.OS, i.Arch)
}

// UserAgent returns the User-Agent sent to the standings API,
// e.g. "paddock/1.2.0".
func (i *Info) UserAgent() string {
	v := strings.TrimPrefix(i.Version, "v")
	if v == "" {
		v = "dev"
	}
	return Name + "/" + v
}
