package riot

// Numeric participant fields are pointers so that a missing key can be told
// apart from a zero.

type AccountDTO struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

type MatchDTO struct {
	Metadata MetadataDTO  `json:"metadata"`
	Info     MatchInfoDTO `json:"info"`
}

type MetadataDTO struct {
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"`
}

type MatchInfoDTO struct {
	QueueID            *int             `json:"queueId"`
	GameStartTimestamp *int64           `json:"gameStartTimestamp"`
	GameDuration       *int             `json:"gameDuration"`
	GameMode           string           `json:"gameMode"`
	GameType           string           `json:"gameType"`
	MapID              *int             `json:"mapId"`
	Participants       []ParticipantDTO `json:"participants"`
}

type ParticipantDTO struct {
	PUUID        string `json:"puuid"`
	Win          bool   `json:"win"`
	TeamID       *int   `json:"teamId"`
	Role         string `json:"role"`
	Lane         string `json:"lane"`
	TeamPosition string `json:"teamPosition"`
	ChampionID   *int   `json:"championId"`
	ChampionName string `json:"championName"`

	Kills                *int `json:"kills"`
	Deaths               *int `json:"deaths"`
	Assists              *int `json:"assists"`
	TotalMinionsKilled   *int `json:"totalMinionsKilled"`
	NeutralMinionsKilled *int `json:"neutralMinionsKilled"`

	GoldEarned                  *int `json:"goldEarned"`
	GoldSpent                   *int `json:"goldSpent"`
	TotalDamageDealtToChampions *int `json:"totalDamageDealtToChampions"`
	TotalDamageTaken            *int `json:"totalDamageTaken"`

	VisionScore *int `json:"visionScore"`
	WardsPlaced *int `json:"wardsPlaced"`
	WardsKilled *int `json:"wardsKilled"`
	TurretKills *int `json:"turretKills"`

	TotalTimeSpentDead *int `json:"totalTimeSpentDead"`
}

// Participant returns the participant entry for puuid, if any.
func (m *MatchDTO) Participant(puuid string) (*ParticipantDTO, bool) {
	for i := range m.Info.Participants {
		if m.Info.Participants[i].PUUID == puuid {
			return &m.Info.Participants[i], true
		}
	}
	return nil, false
}
