package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var (
	DbHost     string
	DbPort     string
	DbUser     string
	DbPassword string
	DbName     string
	ServerPort string

	LogLevel  string
	LogFormat string

	// QuotaReservationExpire is how long an uncommitted reservation lives before the sweeper rolls it back.
	QuotaReservationExpire time.Duration
	// QuotaUntilRefresh is the number of reservations after which usage is resynced. Zero disables it.
	QuotaUntilRefresh int
	// QuotaMaxAge forces a resync when a usage row is older than this. Zero disables it.
	QuotaMaxAge      time.Duration
	QuotaSyncRetries int
	SweepInterval    time.Duration

	DeviceProfileSeedFile string
	AttachHandlePoolFile  string
	CORSAllowedOrigins    []string
)

func setDefaults() {
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "password")
	viper.SetDefault("DB_NAME", "accel")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("QUOTA_RESERVATION_EXPIRE", "24h")
	viper.SetDefault("QUOTA_UNTIL_REFRESH", 0)
	viper.SetDefault("QUOTA_MAX_AGE", "0s")
	viper.SetDefault("QUOTA_SYNC_RETRIES", 3)
	viper.SetDefault("SWEEP_INTERVAL", "1m")
	viper.SetDefault("DEVICE_PROFILE_SEED_FILE", "")
	viper.SetDefault("ATTACH_HANDLE_POOL_FILE", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:")
}

func LoadConfig() {
	err := godotenv.Load()
	if err != nil {
		logrus.Debug("No .env file found, using environment variables")
	}

	setDefaults()
	viper.AutomaticEnv()

	DbHost = viper.GetString("DB_HOST")
	DbPort = viper.GetString("DB_PORT")
	DbUser = viper.GetString("DB_USER")
	DbPassword = viper.GetString("DB_PASSWORD")
	DbName = viper.GetString("DB_NAME")
	ServerPort = viper.GetString("SERVER_PORT")

	LogLevel = viper.GetString("LOG_LEVEL")
	LogFormat = viper.GetString("LOG_FORMAT")

	QuotaReservationExpire = viper.GetDuration("QUOTA_RESERVATION_EXPIRE")
	QuotaUntilRefresh = viper.GetInt("QUOTA_UNTIL_REFRESH")
	QuotaMaxAge = viper.GetDuration("QUOTA_MAX_AGE")
	QuotaSyncRetries = viper.GetInt("QUOTA_SYNC_RETRIES")
	SweepInterval = viper.GetDuration("SWEEP_INTERVAL")

	DeviceProfileSeedFile = viper.GetString("DEVICE_PROFILE_SEED_FILE")
	AttachHandlePoolFile = viper.GetString("ATTACH_HANDLE_POOL_FILE")
	CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
