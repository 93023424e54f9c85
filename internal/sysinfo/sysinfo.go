// Package sysinfo detects local environment facts for display and for the
// persona preamble. Detection never fails; anything missing reads "Unknown".
package sysinfo

import (
	"bufio"
	"os"
	"runtime"
	"strings"
)

const unknown = "Unknown"

const osReleasePath = "/etc/os-release"

// Info describes the local environment.
type Info struct {
	OS             string // kernel id, e.g. "Linux 6.8.0"
	PrettyName     string // distro PRETTY_NAME from os-release
	Desktop        string // XDG_CURRENT_DESKTOP
	SessionType    string // raw XDG_SESSION_TYPE
	DesktopSession string // DESKTOP_SESSION
	Wayland        bool
	X11            bool
	Shell          string
	User           string
	WorkingDir     string
}

// Detect gathers environment facts from os-release, XDG variables, and the
// process environment.
func Detect() Info {
	info := Info{
		OS:             osVersion(),
		PrettyName:     prettyName(osReleasePath),
		Desktop:        envOrUnknown("XDG_CURRENT_DESKTOP"),
		SessionType:    envOrUnknown("XDG_SESSION_TYPE"),
		DesktopSession: envOrUnknown("DESKTOP_SESSION"),
		Shell:          envOrUnknown("SHELL"),
		User:           envOrUnknown("USER"),
	}

	_, wayland := os.LookupEnv("WAYLAND_DISPLAY")
	_, display := os.LookupEnv("DISPLAY")
	info.Wayland = wayland
	info.X11 = display && !wayland

	if wd, err := os.Getwd(); err == nil {
		info.WorkingDir = wd
	}
	return info
}

// SessionLabel names the graphical session for display: "Wayland", "X11",
// or whatever XDG_SESSION_TYPE says.
func (i Info) SessionLabel() string {
	switch {
	case i.Wayland:
		return "Wayland"
	case i.X11:
		return "X11"
	default:
		return i.SessionType
	}
}

// DistroOrOS prefers the distro pretty name over the bare kernel id.
func (i Info) DistroOrOS() string {
	if i.PrettyName != "" && i.PrettyName != unknown {
		return i.PrettyName
	}
	return i.OS
}

// prettyName extracts PRETTY_NAME from an os-release style file.
func prettyName(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return unknown
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if value, ok := strings.CutPrefix(line, "PRETTY_NAME="); ok {
			return strings.Trim(strings.TrimSpace(value), `"`)
		}
	}
	return unknown
}

func osVersion() string {
	release := unknown
	if b, err := os.ReadFile("/proc/sys/kernel/osrelease"); err == nil {
		release = strings.TrimSpace(string(b))
	}
	name := runtime.GOOS
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return name + " " + release
}

func envOrUnknown(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return unknown
}
