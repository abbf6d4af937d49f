package models

import "encoding/json"

type Record struct {
	Key       string          `json:"key" db:"key"`
	Value     float64         `json:"value" db:"value"`
	Meta      json.RawMessage `json:"meta" db:"meta"`
	UpdatedAt int64           `json:"updated_at" db:"updated_at"`
}

// RecordMeta is the provenance stored with a record.
type RecordMeta struct {
	RiotID   string `json:"riot_id,omitempty"`
	PUUID    string `json:"puuid,omitempty"`
	MatchID  string `json:"match_id,omitempty"`
	Champion string `json:"champion,omitempty"`
	Games    int    `json:"games,omitempty"`
	Window   string `json:"window,omitempty"`
}

type RecordUpdate struct {
	Key      string
	Label    string
	Value    float64
	Previous *float64
	Meta     RecordMeta
}
