package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Telephony provisioning provider
	TelephonyAccountSID  string
	TelephonyAuthToken   string
	TelephonyBaseURL     string
	TelephonyTimeout     time.Duration
	DefaultLocality      string // area code used when none can be extracted
	VoiceCallbackBaseURL string // overrides site identifier as callback host when set

	// Generative text backends
	OpenAIAPIKey     string
	AltTextAPIKey    string
	AltTextBaseURL   string
	AltModelPrefix   string
	DefaultChatModel string
	TextTimeout      time.Duration

	// Default usage limits applied to new accounts
	BillableCallLimit  int
	FreeCallLimit      int // spam / silent / operator-test counters share this
	TotalCallLimit     int
	TrainingLimit      int
	TrainingTokenLimit int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)

	viper.SetDefault("TELEPHONY_ACCOUNT_SID", "")
	viper.SetDefault("TELEPHONY_AUTH_TOKEN", "")
	viper.SetDefault("TELEPHONY_BASE_URL", "https://api.twilio.com")
	viper.SetDefault("TELEPHONY_TIMEOUT", "15s")
	viper.SetDefault("DEFAULT_LOCALITY", "415")
	viper.SetDefault("VOICE_CALLBACK_BASE_URL", "")

	viper.SetDefault("OPENAI_API_KEY", "")
	viper.SetDefault("ALT_TEXT_API_KEY", "")
	viper.SetDefault("ALT_TEXT_BASE_URL", "https://api.deepseek.com/v1")
	viper.SetDefault("ALT_MODEL_PREFIX", "deepseek-")
	viper.SetDefault("DEFAULT_CHAT_MODEL", "gpt-4o-mini")
	viper.SetDefault("TEXT_TIMEOUT", "60s")

	viper.SetDefault("BILLABLE_CALL_LIMIT", 100)
	viper.SetDefault("FREE_CALL_LIMIT", 500)
	viper.SetDefault("TOTAL_CALL_LIMIT", 1000)
	viper.SetDefault("TRAINING_LIMIT", 200)
	viper.SetDefault("TRAINING_TOKEN_LIMIT", 500000)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.TelephonyAccountSID = viper.GetString("TELEPHONY_ACCOUNT_SID")
	cfg.TelephonyAuthToken = viper.GetString("TELEPHONY_AUTH_TOKEN")
	if cfg.TelephonyAccountSID == "" || cfg.TelephonyAuthToken == "" {
		log.Println("Warning: TELEPHONY_ACCOUNT_SID / TELEPHONY_AUTH_TOKEN not set. Registration will not function.")
	}
	cfg.TelephonyBaseURL = viper.GetString("TELEPHONY_BASE_URL")

	telephonyTimeoutStr := viper.GetString("TELEPHONY_TIMEOUT")
	telephonyTimeout, err := time.ParseDuration(telephonyTimeoutStr)
	if err != nil {
		telephonyTimeout = 15 * time.Second
		if telephonyTimeoutStr != "" {
			log.Printf("Warning: Invalid value for TELEPHONY_TIMEOUT ('%s'). Defaulting to %s.\n", telephonyTimeoutStr, telephonyTimeout)
		}
	}
	cfg.TelephonyTimeout = telephonyTimeout

	cfg.DefaultLocality = viper.GetString("DEFAULT_LOCALITY")
	cfg.VoiceCallbackBaseURL = viper.GetString("VOICE_CALLBACK_BASE_URL")

	cfg.OpenAIAPIKey = viper.GetString("OPENAI_API_KEY")
	if cfg.OpenAIAPIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set. Text responses will not function.")
	}
	cfg.AltTextAPIKey = viper.GetString("ALT_TEXT_API_KEY")
	cfg.AltTextBaseURL = viper.GetString("ALT_TEXT_BASE_URL")
	cfg.AltModelPrefix = viper.GetString("ALT_MODEL_PREFIX")
	cfg.DefaultChatModel = viper.GetString("DEFAULT_CHAT_MODEL")

	textTimeoutStr := viper.GetString("TEXT_TIMEOUT")
	textTimeout, err := time.ParseDuration(textTimeoutStr)
	if err != nil {
		textTimeout = 60 * time.Second
		if textTimeoutStr != "" {
			log.Printf("Warning: Invalid value for TEXT_TIMEOUT ('%s'). Defaulting to %s.\n", textTimeoutStr, textTimeout)
		}
	}
	cfg.TextTimeout = textTimeout

	cfg.BillableCallLimit = viper.GetInt("BILLABLE_CALL_LIMIT")
	cfg.FreeCallLimit = viper.GetInt("FREE_CALL_LIMIT")
	cfg.TotalCallLimit = viper.GetInt("TOTAL_CALL_LIMIT")
	cfg.TrainingLimit = viper.GetInt("TRAINING_LIMIT")
	cfg.TrainingTokenLimit = viper.GetInt("TRAINING_TOKEN_LIMIT")

	return cfg, nil
}
