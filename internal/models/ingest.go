package models

type IngestCursor struct {
	PUUID         string `json:"puuid" db:"puuid"`
	LastEndTimeTS int64  `json:"last_end_time_ts" db:"last_end_time_ts"`
	UpdatedAt     int64  `json:"updated_at" db:"updated_at"`
}

type SaveResult struct {
	MatchInserted bool
	StatInserted  bool
}

type IngestResult struct {
	NewMatches            int `json:"new_matches"`
	NewPlayerRows         int `json:"new_player_rows"`
	SkippedByQueue        int `json:"skipped_by_queue"`
	SkippedNotParticipant int `json:"skipped_not_participant"`
	FailedPlayers         int `json:"failed_players"`
}

type BackfillResult struct {
	Candidates int `json:"candidates"`
	Updated    int `json:"updated"`
	Failed     int `json:"failed"`
}

// DeadTimeCoverage reports how many window rows of a player carry time_dead_s.
type DeadTimeCoverage struct {
	RiotID string `db:"riot_id"`
	Total  int    `db:"total"`
	Filled int    `db:"filled"`
}

type CursorStatus struct {
	PUUID         string
	RiotID        string
	LastEndTimeTS int64
	UpdatedAt     int64
}

// IngestStatus is a snapshot of checkpoint and time-dead coverage state.
type IngestStatus struct {
	WindowStart int64
	WindowEnd   int64
	Cursors     []CursorStatus
	Coverage    []DeadTimeCoverage
}
