// Package config holds the injected configuration record spec.md §9
// calls for ("treat as an injected config record; the engine should
// not read module-level globals"), populated from the environment the
// way the teacher's cmd/imap.go Config/DefaultConfig/getEnv trio does.
package config

import (
	"os"
	"strconv"

	"github.com/corvidmail/attachbrowser/internal/attach"
)

// Config is the full set of options spec.md §6 lists as inputs.
type Config struct {
	AttachFormat   string
	AttachSep      string
	DigestCollapse bool
	AttachSplit    bool
	Resolve        bool
	WaitKey        bool
	Weed           bool
	StatAttach     bool

	PrintCommand          string
	PrintQuad             attach.QuadOption
	FollowupToPosterQuad  attach.QuadOption

	MongoURI      string
	MongoDatabase string
}

// Default mirrors the field values a fresh mutt-like configuration
// would carry before any user rc file is read.
func Default() *Config {
	return &Config{
		AttachFormat:         "%u%D%I %t%4n %T%.40d%> [%.7m/%.10M, %.6e, %s] ",
		AttachSep:            "",
		DigestCollapse:       true,
		AttachSplit:          true,
		Resolve:              true,
		WaitKey:              true,
		Weed:                 true,
		StatAttach:           false,
		PrintCommand:         "lpr",
		PrintQuad:            attach.QuadAskYes,
		FollowupToPosterQuad: attach.QuadAskYes,
		MongoURI:             "mongodb://localhost:27017",
		MongoDatabase:        "maildb",
	}
}

// FromEnv overlays environment variables onto Default(), following the
// teacher's getEnv-with-fallback convention.
func FromEnv() *Config {
	c := Default()
	c.AttachFormat = getEnv("ATTACHBROWSER_FORMAT", c.AttachFormat)
	c.AttachSep = getEnv("ATTACHBROWSER_SEPARATOR", c.AttachSep)
	c.DigestCollapse = getEnvBool("ATTACHBROWSER_DIGEST_COLLAPSE", c.DigestCollapse)
	c.AttachSplit = getEnvBool("ATTACHBROWSER_SPLIT", c.AttachSplit)
	c.Resolve = getEnvBool("ATTACHBROWSER_RESOLVE", c.Resolve)
	c.WaitKey = getEnvBool("ATTACHBROWSER_WAIT_KEY", c.WaitKey)
	c.Weed = getEnvBool("ATTACHBROWSER_WEED", c.Weed)
	c.StatAttach = getEnvBool("ATTACHBROWSER_STAT_ATTACH", c.StatAttach)
	c.PrintCommand = getEnv("ATTACHBROWSER_PRINT_COMMAND", c.PrintCommand)
	c.MongoURI = getEnv("ATTACHBROWSER_MONGO_URI", c.MongoURI)
	c.MongoDatabase = getEnv("ATTACHBROWSER_MONGO_DATABASE", c.MongoDatabase)
	return c
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
