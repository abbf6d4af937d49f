package models

import "time"

type ChampionStat struct {
	Name    string
	Games   int
	Wins    int
	WinRate float64
}

type PlayerReport struct {
	PUUID   string
	RiotID  string
	Games   int
	Wins    int
	WinRate float64

	Kills   int
	Deaths  int
	Assists int
	AvgK    float64
	AvgD    float64
	AvgA    float64
	KDA     float64

	TopChampions []ChampionStat

	CSGames  int
	CSPerMin float64

	DeadGames  int
	TotalDeadS int
	AvgDeadS   float64

	MainRole    string
	IsSupport   bool
	CasualGames int
}

// GameLine is a single stat line singled out by an award.
type GameLine struct {
	RiotID   string
	PUUID    string
	MatchID  string
	Champion string
	Kills    int
	Deaths   int
	Assists  int
	Win      bool
	QueueID  int
	StartTS  int64
	KDA      float64
	Impact   float64
}

type Awards struct {
	BestKDA      *PlayerReport
	WorstKDA     *PlayerReport
	BestCS       *PlayerReport
	WorstCS      *PlayerReport
	MostCasual   *PlayerReport
	MostDeadTime *PlayerReport
	WorstGame    *GameLine
	BestImpact   *GameLine
}

type WeeklyReport struct {
	Start        time.Time
	End          time.Time
	LookbackDays int
	Players      []PlayerReport
	Leaderboard  []PlayerReport
	Awards       Awards
	Records      []RecordUpdate
	// QueueLabels maps the queue ids seen in the window to display names.
	QueueLabels  map[int]string
}
