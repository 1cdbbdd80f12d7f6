// Package pipeline carries the configuration and the collaborators shared by
// every crawl job.
package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"eplgraph/internal/components/chrono"
	"eplgraph/lib/configutil"
	"eplgraph/lib/records"
	libtelemetry "eplgraph/lib/telemetry"
)

const ConfigFile = "eplgraph.json5"

type Config struct {
	BaseURL   string `json:"base_url"`
	UserAgent string `json:"user_agent"`
	DataDir   string `json:"data_dir"`

	// ReferenceYear is the start year of the most recent season crawled, zero
	// means the season currently in progress.
	ReferenceYear int `json:"reference_year"`
	SeasonCount   int `json:"season_count"`
	// Seasons replaces the computed window when set, e.g. ["2023–24", "2022–23"].
	Seasons []string `json:"seasons"`
	// CoachSeason is the season coached relations are attributed to, defaults
	// to the most recent season of the window.
	CoachSeason string `json:"coach_season"`
	// CoachFuzzyThreshold lets a Jaro-Winkler similarity of at least this much
	// match the info box manager to a history entry, zero disables it.
	CoachFuzzyThreshold float64 `json:"coach_fuzzy_threshold"`

	RequestTimeoutSeconds int `json:"request_timeout_seconds"`
	RetryCount            int `json:"retry_count"`
	RetryWaitMs           int `json:"retry_wait_ms"`
	RetryMaxWaitMs        int `json:"retry_max_wait_ms"`
	CourtesyDelayMs       int `json:"courtesy_delay_ms"`

	// CacheFile is a sqlite file pages are cached in, empty disables caching.
	CacheFile        string `json:"cache_file"`
	CacheMaxAgeHours int    `json:"cache_max_age_hours"`
	// DebugDumpDir receives every HTTP exchange when set.
	DebugDumpDir string `json:"debug_dump_dir"`
	Verbose      bool   `json:"verbose"`

	// ClubOverrides maps club display names to page titles for clubs whose
	// page is not "<name> F.C.".
	ClubOverrides map[string]string `json:"club_overrides"`

	Telemetry libtelemetry.Config `json:"telemetry"`
}

func DefaultConfig() Config {
	return Config{
		BaseURL:               "https://en.wikipedia.org/wiki/",
		UserAgent:             "eplgraph/1.0 (knowledge graph crawler; https://github.com/eplgraph/eplgraph)",
		DataDir:               "data",
		SeasonCount:           5,
		RequestTimeoutSeconds: 30,
		RetryCount:            3,
		RetryWaitMs:           1000,
		RetryMaxWaitMs:        8000,
		CourtesyDelayMs:       1000,
		ClubOverrides: map[string]string{
			"Bournemouth":             "AFC_Bournemouth",
			"AFC Bournemouth":         "AFC_Bournemouth",
			"Brighton & Hove Albion":  "Brighton_&_Hove_Albion_F.C.",
			"Wolverhampton Wanderers": "Wolverhampton_Wanderers_F.C.",
			"Newcastle United":        "Newcastle_United_F.C.",
			"Luton Town":              "Luton_Town_F.C.",
			"West Ham United":         "West_Ham_United_F.C.",
		},
	}
}

// LoadConfig reads eplgraph.json5 (and eplgraph.local.json5) from the working
// directory or any of its parents over DefaultConfig. Fields missing from the
// files keep their default value, a missing file means the defaults are used
// as is.
func LoadConfig() (Config, error) {
	cfg, err := configutil.ReadRecursively(ConfigFile, DefaultConfig())
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Window lists the seasons to crawl, most recent first.
func (c Config) Window(clock chrono.TimeAPI) []string {
	if len(c.Seasons) > 0 {
		out := make([]string, len(c.Seasons))
		for i, s := range c.Seasons {
			out[i] = records.CanonicalSeason(s)
		}
		return out
	}
	ref := c.ReferenceYear
	if ref == 0 {
		ref = records.CurrentSeasonStartYear(clock.Now())
	}
	count := c.SeasonCount
	if count <= 0 {
		count = 5
	}
	return records.Window(ref, count)
}

// TargetCoachSeason is the season coached relations are attributed to.
func (c Config) TargetCoachSeason(window []string) string {
	if c.CoachSeason != "" {
		return records.CanonicalSeason(c.CoachSeason)
	}
	if len(window) == 0 {
		return ""
	}
	return window[0]
}

func millis(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// Paths are the files every job reads or writes.
type Paths struct {
	SeasonNodes string
	ClubNodes   string
	PlayerNodes string
	CoachNodes  string

	ClubsBySeason string
	PlayedFor     string
	Coached       string

	PartOfEdges    string
	PlayedForEdges string
	CoachedEdges   string
}

func NewPaths(dataDir string) Paths {
	nodes := filepath.Join(dataDir, "nodes")
	relations := filepath.Join(dataDir, "relations")
	edges := filepath.Join(dataDir, "edges")
	return Paths{
		SeasonNodes: filepath.Join(nodes, "seasons.csv"),
		ClubNodes:   filepath.Join(nodes, "clubs.csv"),
		PlayerNodes: filepath.Join(nodes, "players.csv"),
		CoachNodes:  filepath.Join(nodes, "coaches.csv"),

		ClubsBySeason: filepath.Join(relations, "clubs_by_season.csv"),
		PlayedFor:     filepath.Join(relations, "played_for.csv"),
		Coached:       filepath.Join(relations, "coached.csv"),

		PartOfEdges:    filepath.Join(edges, "part_of.csv"),
		PlayedForEdges: filepath.Join(edges, "played_for.csv"),
		CoachedEdges:   filepath.Join(edges, "coached.csv"),
	}
}

// ErrNoRecords is returned by a job that could not extract a single record,
// the previous output files are left untouched.
var ErrNoRecords = errors.New("no records extracted")
