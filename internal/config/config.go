package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Env   string
	Store StoreConfig
	Image ImageConfig
	AI    AIConfig
}

type StoreConfig struct {
	Dir      string
	MaxBytes int64
}

type ImageConfig struct {
	MaxDimension  int
	JPEGQuality   int
	MaxPerListing int
}

type AIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout int // in seconds
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("MARKET_ENV", "development")
	viper.SetDefault("STORE_DIR", "data")
	viper.SetDefault("STORE_MAX_BYTES", 5*1024*1024)
	viper.SetDefault("IMAGE_MAX_DIMENSION", 800)
	viper.SetDefault("IMAGE_JPEG_QUALITY", 70)
	viper.SetDefault("IMAGE_MAX_PER_LISTING", 3)
	viper.SetDefault("AI_MODEL", "gemini-2.5-flash")
	viper.SetDefault("AI_BASE_URL", "https://generativelanguage.googleapis.com")
	viper.SetDefault("AI_TIMEOUT", 30)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Env: viper.GetString("MARKET_ENV"),
		Store: StoreConfig{
			Dir:      viper.GetString("STORE_DIR"),
			MaxBytes: viper.GetInt64("STORE_MAX_BYTES"),
		},
		Image: ImageConfig{
			MaxDimension:  viper.GetInt("IMAGE_MAX_DIMENSION"),
			JPEGQuality:   viper.GetInt("IMAGE_JPEG_QUALITY"),
			MaxPerListing: viper.GetInt("IMAGE_MAX_PER_LISTING"),
		},
		AI: AIConfig{
			APIKey:  viper.GetString("GEMINI_API_KEY"),
			Model:   viper.GetString("AI_MODEL"),
			BaseURL: viper.GetString("AI_BASE_URL"),
			Timeout: viper.GetInt("AI_TIMEOUT"),
		},
	}
}
