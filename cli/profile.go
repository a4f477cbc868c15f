package cli

import (
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/pkg/profile"

	"github.com/sergev/vispel/log"
)

var profileModes = map[string]func(*profile.Profile){
	"allocs":    profile.MemProfileAllocs,
	"block":     profile.BlockProfile,
	"clock":     profile.ClockProfile,
	"cpu":       profile.CPUProfile,
	"goroutine": profile.GoroutineProfile,
	"heap":      profile.MemProfileHeap,
	"mem":       profile.MemProfile,
	"mutex":     profile.MutexProfile,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
}

type profileConfig struct {
	Mode string `default:""              enum:",${profileModes}" help:"Write a runtime profile of the session." name:"profile"     placeholder:"MODE"`
	Dir  string `default:"${profileDir}"                         help:"Profile output directory."               name:"profile-dir" type:"path"`
}

func (profileConfig) vars() kong.Vars {
	return kong.Vars{
		"profileModes": strings.Join(slices.Sorted(maps.Keys(profileModes)), ","),
		"profileDir":   cachePath(profileSubdir),
	}
}

func (profileConfig) group() kong.Group {
	return kong.Group{Key: "profile", Title: "Profiling (pprof)"}
}

// start begins profiling when a mode is selected. The returned function
// stops it and flushes the profile.
func (f profileConfig) start() (stop func()) {
	mode, ok := profileModes[f.Mode]
	if !ok {
		return func() {}
	}
	log.Debug("profile start", slog.String("mode", f.Mode), slog.String("dir", f.Dir))
	p := profile.Start(mode, profile.ProfilePath(f.Dir), profile.Quiet, profile.NoShutdownHook)
	return func() {
		p.Stop()
		log.Debug("profile stop", slog.String("mode", f.Mode), slog.String("dir", f.Dir))
	}
}
