package constants

// Centralized constants for headers, env keys and LLM integration.
const (
	// Environment variable keys
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvConfigPath   = "SUNO_BATTLER_CONFIG"
	EnvDBPath       = "SUNO_BATTLER_DB"
	EnvAddress      = "SUNO_BATTLER_ADDR"
	EnvLogLevel     = "LOG_LEVEL"
	EnvLogFormat    = "LOG_FORMAT"

	DefaultConfigPath = "./suno_battler.json"
	DefaultDBPath     = "./data/suno_battler.db"

	// HTTP headers and content types
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderGoogAPIKey    = "x-goog-api-key"

	ContentTypeJSON = "application/json"

	// Authorization prefix
	BearerPrefix = "Bearer "

	// OpenAI API endpoints and defaults
	OpenAIBaseURL             = "https://api.openai.com"
	OpenAIChatCompletionsPath = "/v1/chat/completions"
	OpenAIChatModel           = "gpt-5-nano"

	// Gemini API endpoints and defaults
	GeminiBaseURL  = "https://generativelanguage.googleapis.com"
	GeminiModel    = "gemini-2.5-flash"
	GeminiScopeURL = "https://www.googleapis.com/auth/generative-language"

	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	// Suno CDN locations derived from a song UUID
	SunoCDNBaseURL = "https://cdn1.suno.ai/"
)

// Routes used by the backend router
const (
	RouteAPIPrefix     = "/api"
	RouteVersion       = "/version"
	RouteLeaderboard   = "/leaderboard"
	RouteBattles       = "/battles"
	RouteBattlesCustom = "/battles/custom"
	RouteBattleByID    = "/battles/:battleID"
	RouteBattleAdvance = "/battles/:battleID/advance"
	RouteBattleStream  = "/battles/:battleID/stream"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyDetails = "details"
	JSONKeyStatus  = "status"
	JSONKeyResult  = "result"
	JSONKeyBattle  = "battle"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest          = "Invalid request"
	ErrInvalidBattleID         = "Invalid battle ID"
	ErrBattleNotFound          = "Battle not found"
	ErrFailedGenerateMonsters  = "Failed to generate monsters. Please check the links or try again."
	ErrInvalidCombatants       = "Invalid combatants"
	ErrFailedStartBattle       = "Failed to start battle"
	ErrFailedFetchLeaderboard  = "Failed to fetch leaderboard"
	ErrFailedEncodeLeaderboard = "Failed to encode leaderboard"
)

// Logging field names
const (
	LogFieldBattleID   = "battle_id"
	LogFieldMatchupKey = "matchup_key"
	LogFieldSource     = "source"
	LogFieldName       = "name"
	LogFieldAddr       = "addr"
	LogFieldTurn       = "turn"
	LogFieldWinner     = "winner_id"
	LogFieldProvider   = "provider"
	LogFieldModel      = "model"
)
