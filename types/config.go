package types

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose bool          `mapstructure:"verbose"`
	Config  string        `mapstructure:"config"`
	Project ProjectConfig `mapstructure:"project" validate:"required"`
	Data    DataConfig    `mapstructure:"data"`
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	LLM     LLMConfig     `mapstructure:"llm" validate:"omitempty"`
	Team    []MemberConfig `mapstructure:"team" validate:"omitempty,dive"`
}

// ProjectConfig holds project-related settings
type ProjectConfig struct {
	RootDir      string `mapstructure:"rootDir" validate:"required"`
	TemplatesDir string `mapstructure:"templatesDir" validate:"required"`
}

// DataConfig points at an optional seed fixture loaded into the in-memory
// store at startup. State is never written back; the store is memory-only.
type DataConfig struct {
	SeedFile   string `mapstructure:"seedFile"`
	SeedFormat string `mapstructure:"seedFormat" validate:"omitempty,oneof=json yaml toml"`
}

// ServerConfig holds settings for the dashboard API server.
type ServerConfig struct {
	Port int `mapstructure:"port" validate:"required,min=1,max=65535"`
}

// MemberConfig describes one entry of the static team roster.
type MemberConfig struct {
	ID   string `mapstructure:"id" validate:"required"`
	Name string `mapstructure:"name" validate:"required"`
	Role string `mapstructure:"role" validate:"required,oneof=director executor"`
}

// LLMConfig holds configuration for the advisory LLM integration
type LLMConfig struct {
	Provider  string `mapstructure:"provider" validate:"omitempty,oneof=gemini openai"`
	ModelName string `mapstructure:"modelName" validate:"omitempty,min=1"`
	// AnalysisModelName is used for the risk-analysis operation, which wants a
	// stronger reasoning model than the default.
	AnalysisModelName string  `mapstructure:"analysisModelName" validate:"omitempty,min=1"`
	APIKey            string  `mapstructure:"apiKey" validate:"omitempty,min=1"`
	MaxOutputTokens   int     `mapstructure:"maxOutputTokens" validate:"omitempty,min=1"`
	Temperature       float64 `mapstructure:"temperature" validate:"omitempty,min=0,max=2"`
	// RequestTimeoutSeconds controls the HTTP client timeout for advisory calls
	RequestTimeoutSeconds int `mapstructure:"requestTimeoutSeconds" validate:"omitempty,min=5,max=600"`
	// Debug enables extra request/response logging within the LLM provider
	Debug bool `mapstructure:"debug"`
}
