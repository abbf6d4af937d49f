package discord

const (
	// Display limits
	topPlayersLimit      = 10
	maxMessageLength     = 2000
	maxMessageTruncation = 1990
	maxEmbedsPerMessage  = 10
	maxEmbedTextPerMsg   = 6000
	maxDescriptionLength = 3500
	topChampionsShown    = 3

	// Win rate thresholds for color coding
	winRateExcellent = 75.0
	winRateGood      = 60.0
	winRatePoor      = 40.0

	// Embed colors
	colorGold   = 0xFFD700 // Leaderboard
	colorGreen  = 0x2ECC71 // Good win rate
	colorPurple = 0x9B59B6 // Excellent win rate, records
	colorRed    = 0xE74C3C // Poor win rate, shame
	colorGray   = 0x95A5A6 // Default/neutral
	colorBlue   = 0x3498DB // Info/player stats

	footerText = "Riftstats"
	dateLayout = "2006-01-02"
)
