package application

const (
	// Aggregation thresholds
	minGamesForAward     = 3
	minGamesForCSAward   = 3
	minCSGameDurationS   = 600
	supportShareRequired = 0.60
	supportPosition      = "UTILITY"
	topChampionsCount    = 3
	leaderboardSize      = 10

	// Impact score weights
	impactKillWeight    = 3.0
	impactAssistWeight  = 1.5
	impactDeathWeight   = 2.0
	impactDamageDivisor = 1000.0
	impactVisionDivisor = 10.0
	impactTurretWeight  = 2.0

	// Records
	recordEpsilon = 1e-9

	// Excel report configuration
	excelSheetName  = "Leaderboard"
	excelRecordName = "Records"

	// Google Sheets configuration
	defaultSheetTitle = "Riftstats Leaderboard"
	defaultClearRange = "A1:Z1000"
	defaultStartCell  = "A1"
)
