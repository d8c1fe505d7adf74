package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Auth     Auth
	Streak   Streak
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type Auth struct {
	// Backend selects the auth implementation: "database" or "mock".
	Backend       string
	JWTSecret     string
	TokenTTLHours int
	RememberDays  int
}

type Streak struct {
	// DefaultThreshold is the attempts-per-day count required for a day
	// to qualify toward a streak when the user has no stored override.
	DefaultThreshold int
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("AUTH_BACKEND", "database")
	viper.SetDefault("AUTH_TOKEN_TTL_HOURS", 12)
	viper.SetDefault("AUTH_REMEMBER_DAYS", 30)
	viper.SetDefault("STREAK_DEFAULT_THRESHOLD", 5)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Auth.Backend = viper.GetString("AUTH_BACKEND")
	config.Auth.JWTSecret = viper.GetString("AUTH_JWT_SECRET")
	config.Auth.TokenTTLHours = viper.GetInt("AUTH_TOKEN_TTL_HOURS")
	config.Auth.RememberDays = viper.GetInt("AUTH_REMEMBER_DAYS")

	config.Streak.DefaultThreshold = viper.GetInt("STREAK_DEFAULT_THRESHOLD")

	log.Info().Str("port", config.Server.Port).Str("auth_backend", config.Auth.Backend).Msg("Config loaded")
	return &config, nil
}
