package models

type Player struct {
	PUUID    string `json:"puuid" db:"puuid"`
	RiotID   string `json:"riot_id" db:"riot_id"`
	Platform string `json:"platform" db:"platform"`
	Routing  string `json:"routing" db:"routing"`
	AddedAt  int64  `json:"added_at" db:"added_at"`
}

type Match struct {
	MatchID     string `json:"match_id" db:"match_id"`
	Routing     string `json:"routing" db:"routing"`
	QueueID     int    `json:"queue_id" db:"queue_id"`
	GameStartTS int64  `json:"game_start_ts" db:"game_start_ts"`
	DurationS   *int   `json:"duration_s" db:"duration_s"`
	GameMode    string `json:"game_mode" db:"game_mode"`
	GameType    string `json:"game_type" db:"game_type"`
	MapID       int    `json:"map_id" db:"map_id"`
	IngestedAt  int64  `json:"ingested_at" db:"ingested_at"`
}

// PlayerMatchStat is one player's line in one match. TimeDeadS is the only
// field that may change after insert, and only from NULL.
type PlayerMatchStat struct {
	PUUID        string `json:"puuid" db:"puuid"`
	MatchID      string `json:"match_id" db:"match_id"`
	Win          bool   `json:"win" db:"win"`
	TeamID       int    `json:"team_id" db:"team_id"`
	Role         string `json:"role" db:"role"`
	Lane         string `json:"lane" db:"lane"`
	Position     string `json:"position" db:"position"`
	ChampionID   int    `json:"champion_id" db:"champion_id"`
	ChampionName string `json:"champion_name" db:"champion_name"`
	Kills        int    `json:"kills" db:"kills"`
	Deaths       int    `json:"deaths" db:"deaths"`
	Assists      int    `json:"assists" db:"assists"`
	CS           int    `json:"cs" db:"cs"`
	GoldEarned   int    `json:"gold_earned" db:"gold_earned"`
	GoldSpent    int    `json:"gold_spent" db:"gold_spent"`
	DmgToChamps  int    `json:"dmg_to_champs" db:"dmg_to_champs"`
	DmgTaken     int    `json:"dmg_taken" db:"dmg_taken"`
	VisionScore  int    `json:"vision_score" db:"vision_score"`
	WardsPlaced  int    `json:"wards_placed" db:"wards_placed"`
	WardsKilled  int    `json:"wards_killed" db:"wards_killed"`
	TurretKills  int    `json:"turret_kills" db:"turret_kills"`
	TimeDeadS    *int   `json:"time_dead_s" db:"time_dead_s"`
	GameStartTS  int64  `json:"game_start_ts" db:"game_start_ts"`
	QueueID      int    `json:"queue_id" db:"queue_id"`
}

// StatRow is a stat line joined with its player handle and match duration,
// the shape the aggregation reads.
type StatRow struct {
	PlayerMatchStat
	RiotID    string `json:"riot_id" db:"riot_id"`
	DurationS *int   `json:"duration_s" db:"duration_s"`
}

// StatRef points at a stat row that still needs its time_dead_s value.
type StatRef struct {
	PUUID   string `db:"puuid"`
	MatchID string `db:"match_id"`
	Routing string `db:"routing"`
}
