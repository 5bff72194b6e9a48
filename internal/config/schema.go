package config

// Config holds taabir configuration.
// Stored at: ~/.taabir/config.yaml
type Config struct {
	LLM        LLMCfg        `mapstructure:"llm" yaml:"llm"`
	Article    ArticleCfg    `mapstructure:"article" yaml:"article"`
	References ReferencesCfg `mapstructure:"references" yaml:"references"`
	Server     ServerCfg     `mapstructure:"server" yaml:"server"`
}

// LLMCfg configures the LLM provider used by the pipeline.
type LLMCfg struct {
	Provider       string  `mapstructure:"provider" yaml:"provider"`   // "openai", "mock"
	Model          string  `mapstructure:"model" yaml:"model"`         // Model name
	APIKey         string  `mapstructure:"api_key" yaml:"api_key"`     // API key (supports ${ENV_VAR} syntax)
	Temperature    float64 `mapstructure:"temperature" yaml:"temperature"`
	MaxTokens      int     `mapstructure:"max_tokens" yaml:"max_tokens"`
	RateLimit      int     `mapstructure:"rate_limit" yaml:"rate_limit"` // Requests per minute
	MaxRetries     int     `mapstructure:"max_retries" yaml:"max_retries"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// ArticleCfg specifies defaults applied to generated articles.
type ArticleCfg struct {
	TargetWords         int    `mapstructure:"target_words" yaml:"target_words"`
	AuthorName          string `mapstructure:"author_name" yaml:"author_name"`
	AuthorCredentials   string `mapstructure:"author_credentials" yaml:"author_credentials"`
	ReviewerName        string `mapstructure:"reviewer_name" yaml:"reviewer_name"`
	ReviewerCredentials string `mapstructure:"reviewer_credentials" yaml:"reviewer_credentials"`
}

// ReferencesCfg pins the source editions cited by generated drafts.
type ReferencesCfg struct {
	IbnSirinEdition string `mapstructure:"ibn_sirin_edition" yaml:"ibn_sirin_edition"`
	IbnSirinPage    string `mapstructure:"ibn_sirin_page" yaml:"ibn_sirin_page"`
	NabulsiEdition  string `mapstructure:"nabulsi_edition" yaml:"nabulsi_edition"`
	NabulsiPage     string `mapstructure:"nabulsi_page" yaml:"nabulsi_page"`
	PsychRef        string `mapstructure:"psych_ref" yaml:"psych_ref"`
}

// ServerCfg configures the HTTP server.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port string `mapstructure:"port" yaml:"port"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMCfg{
			Provider:       "openai",
			Model:          "gpt-4o-mini",
			APIKey:         "${OPENAI_API_KEY}",
			Temperature:    0.4,
			MaxTokens:      1800,
			RateLimit:      150,
			MaxRetries:     3,
			TimeoutSeconds: 120,
		},
		Article: ArticleCfg{
			TargetWords: 1500,
		},
		References: ReferencesCfg{
			IbnSirinEdition: "تفسير الأحلام الكبير، دار المعرفة",
			IbnSirinPage:    "",
			NabulsiEdition:  "تعطير الأنام في تعبير المنام، دار الفكر",
			NabulsiPage:     "",
			PsychRef:        "",
		},
		Server: ServerCfg{
			Host: "127.0.0.1",
			Port: "8750",
		},
	}
}

// Addr returns the host:port the server binds to.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}
