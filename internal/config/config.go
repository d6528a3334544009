package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	Debug         bool
	AllowedOrigin string
	// Database
	DatabaseURL string
	// Local user id used for outbound calls made on behalf of the service itself
	ServiceID int64
	// Upstream services
	MealServiceURL       string
	NoticeServiceURL     string
	ClassroomServiceURL  string
	StaticInfoServiceURL string
	UserServiceURL       string
	// Kakao OpenBuilder block map
	BlocksFile string
	Timezone   string
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Port:                 getEnvDefault("PORT", "8080"),
		Debug:                getEnvBoolDefault("DEBUG", false),
		AllowedOrigin:        getEnvDefault("ALLOWED_ORIGIN", "*"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		ServiceID:            getEnvInt64Default("SERVICE_ID", 4),
		MealServiceURL:       getEnvDefault("MEAL_SERVICE_URL", "http://meal-service:8000"),
		NoticeServiceURL:     getEnvDefault("NOTICE_SERVICE_URL", "http://notice-service:8000"),
		ClassroomServiceURL:  getEnvDefault("CLASSROOM_TIMETABLE_SERVICE_URL", "http://classroom-timetable-service:8000"),
		StaticInfoServiceURL: getEnvDefault("STATIC_INFO_SERVICE_URL", "http://static-info-service:8000"),
		UserServiceURL:       getEnvDefault("USER_SERVICE_URL", "http://user-service:8000"),
		BlocksFile:           getEnvDefault("BLOCKS_FILE", "./blocks.yaml"),
		Timezone:             getEnvDefault("TIMEZONE", "Asia/Seoul"),
	}
	if cfg.DatabaseURL == "" {
		log.Println("warning: DATABASE_URL is not set; user lookups will fail until provided")
	}
	return cfg
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt64Default(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getEnvBoolDefault(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}
