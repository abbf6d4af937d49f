package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	TagRanked = "ranked"
	TagCasual = "casual"

	defaultLookbackDays = 7
	defaultMaxMatches   = 70
)

var defaultCasualPrefixes = []string{"aram"}

// QueueSet is a set of Riot queue ids.
type QueueSet map[int]struct{}

func NewQueueSet(ids ...int) QueueSet {
	s := make(QueueSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s QueueSet) Has(id int) bool {
	_, ok := s[id]
	return ok
}

func (s QueueSet) IDs() []int {
	ids := make([]int, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

type Queue struct {
	Key   string
	ID    int
	Label string
	Tags  []string
}

func (q Queue) HasTag(tag string) bool {
	for _, t := range q.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Categories partitions the enabled queues once, at load time.
type Categories struct {
	Ranked QueueSet
	Casual QueueSet
}

func (c Categories) All() QueueSet {
	all := make(QueueSet, len(c.Ranked)+len(c.Casual))
	for id := range c.Ranked {
		all[id] = struct{}{}
	}
	for id := range c.Casual {
		all[id] = struct{}{}
	}
	return all
}

type TrackedPlayer struct {
	RiotID   string
	Platform string
	Routing  string
	// EnabledQueues is the per-player override when one is configured,
	// otherwise the global enabled set.
	EnabledQueues QueueSet
}

type Tracking struct {
	LookbackDays        int
	MaxMatchesPerPlayer int
	Regions             map[string]string
	Queues              []Queue
	Categories          Categories
	Players             []TrackedPlayer
}

func (t *Tracking) Lookback() time.Duration {
	return time.Duration(t.LookbackDays) * 24 * time.Hour
}

// QueueLabel returns the configured label for a queue id, or the id itself.
func (t *Tracking) QueueLabel(id int) string {
	for _, q := range t.Queues {
		if q.ID == id {
			return q.Label
		}
	}
	return fmt.Sprintf("queue %d", id)
}

type queueFile struct {
	ID    *int     `yaml:"id"`
	Label string   `yaml:"label"`
	Tags  []string `yaml:"tags"`
}

type trackingFile struct {
	App struct {
		LookbackDays        int      `yaml:"lookback_days"`
		MaxMatchesPerPlayer int      `yaml:"max_matches_per_player"`
		CasualPrefixes      []string `yaml:"casual_prefixes"`
	} `yaml:"app"`
	Riot struct {
		Regions map[string]struct {
			Routing string `yaml:"routing"`
		} `yaml:"regions"`
		EnabledQueues map[string]queueFile `yaml:"enabled_queues"`
	} `yaml:"riot"`
	Players []struct {
		RiotID    string `yaml:"riot_id"`
		Platform  string `yaml:"platform"`
		Overrides struct {
			EnabledQueues map[string]queueFile `yaml:"enabled_queues"`
		} `yaml:"overrides"`
	} `yaml:"players"`
}

func LoadTracking(path string) (*Tracking, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Field: "TRACKING_CONFIG", Msg: path, Err: err}
	}
	return ParseTracking(data)
}

func ParseTracking(data []byte) (*Tracking, error) {
	var f trackingFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &ConfigError{Field: "tracking", Msg: "invalid yaml", Err: err}
	}

	t := &Tracking{
		LookbackDays:        f.App.LookbackDays,
		MaxMatchesPerPlayer: f.App.MaxMatchesPerPlayer,
		Regions:             make(map[string]string, len(f.Riot.Regions)),
	}
	if t.LookbackDays <= 0 {
		t.LookbackDays = defaultLookbackDays
	}
	if t.MaxMatchesPerPlayer <= 0 {
		t.MaxMatchesPerPlayer = defaultMaxMatches
	}
	prefixes := f.App.CasualPrefixes
	if len(prefixes) == 0 {
		prefixes = defaultCasualPrefixes
	}

	for platform, r := range f.Riot.Regions {
		if r.Routing == "" {
			return nil, &ConfigError{Field: "riot.regions." + platform, Msg: "routing is empty"}
		}
		t.Regions[platform] = r.Routing
	}

	queues, err := resolveQueues("riot.enabled_queues", f.Riot.EnabledQueues, prefixes)
	if err != nil {
		return nil, err
	}
	if len(queues) == 0 {
		return nil, &ConfigError{Field: "riot.enabled_queues", Msg: "no queues enabled"}
	}
	t.Queues = queues
	t.Categories = Categories{Ranked: QueueSet{}, Casual: QueueSet{}}
	for _, q := range queues {
		if q.HasTag(TagCasual) {
			t.Categories.Casual[q.ID] = struct{}{}
		} else {
			t.Categories.Ranked[q.ID] = struct{}{}
		}
	}
	global := t.Categories.All()

	if len(f.Players) == 0 {
		return nil, &ConfigError{Field: "players", Msg: "no players configured"}
	}
	for i, p := range f.Players {
		field := fmt.Sprintf("players[%d]", i)
		if !strings.Contains(p.RiotID, "#") {
			return nil, &ConfigError{Field: field + ".riot_id", Msg: fmt.Sprintf("must look like Name#TAG, got %q", p.RiotID)}
		}
		routing, ok := t.Regions[p.Platform]
		if !ok {
			return nil, &ConfigError{Field: field + ".platform", Msg: fmt.Sprintf("platform %q not defined under riot.regions", p.Platform)}
		}

		enabled := global
		if len(p.Overrides.EnabledQueues) > 0 {
			override, err := resolveQueues(field+".overrides.enabled_queues", p.Overrides.EnabledQueues, prefixes)
			if err != nil {
				return nil, err
			}
			enabled = QueueSet{}
			for _, q := range override {
				enabled[q.ID] = struct{}{}
			}
		}

		t.Players = append(t.Players, TrackedPlayer{
			RiotID:        p.RiotID,
			Platform:      p.Platform,
			Routing:       routing,
			EnabledQueues: enabled,
		})
	}

	return t, nil
}

func resolveQueues(field string, in map[string]queueFile, casualPrefixes []string) ([]Queue, error) {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Queue, 0, len(in))
	for _, k := range keys {
		qf := in[k]
		if qf.ID == nil {
			return nil, &ConfigError{Field: field + "." + k, Msg: "id is required"}
		}
		q := Queue{Key: k, ID: *qf.ID, Label: qf.Label, Tags: qf.Tags}
		if len(q.Tags) == 0 {
			q.Tags = []string{tagForLabel(q.Label, casualPrefixes)}
		}
		for _, tag := range q.Tags {
			if tag != TagRanked && tag != TagCasual {
				return nil, &ConfigError{Field: field + "." + k + ".tags", Err: errors.New("unknown tag " + tag)}
			}
		}
		out = append(out, q)
	}
	return out, nil
}

func tagForLabel(label string, casualPrefixes []string) string {
	l := strings.ToLower(strings.TrimSpace(label))
	for _, p := range casualPrefixes {
		if strings.HasPrefix(l, strings.ToLower(p)) {
			return TagCasual
		}
	}
	return TagRanked
}
