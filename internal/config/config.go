package config

import (
	"errors"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/plus3/blockfall/tetris"
)

// Config is the runtime configuration shared by the commands.
type Config struct {
	Board         tetris.Config
	Seed          uint64
	LogLevel      slog.Level
	RedisAddr     string
	RedisPassword string
	RedisKey      string
	PlayerName    string
}

// Load reads an optional .env file and then BLOCKFALL_* variables, falling
// back to the defaults for anything unset or invalid.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[CONFIG] Could not read .env: %v", err)
	}

	board := tetris.DefaultConfig()
	board.Width = GetEnvAsInt("BLOCKFALL_WIDTH", board.Width)
	board.Height = GetEnvAsInt("BLOCKFALL_HEIGHT", board.Height)
	board.MoveDelay = GetEnvAsDuration("BLOCKFALL_MOVE_DELAY", board.MoveDelay)
	board.LockDelay = GetEnvAsDuration("BLOCKFALL_LOCK_DELAY", board.LockDelay)
	board.PointsPerLevel = GetEnvAsInt("BLOCKFALL_POINTS_PER_LEVEL", board.PointsPerLevel)
	board.Spawn.Y = board.Height/2 - 2

	return Config{
		Board:         board,
		Seed:          uint64(GetEnvAsInt("BLOCKFALL_SEED", int(time.Now().UnixNano()&0x7fffffff))),
		LogLevel:      parseLevel(GetEnv("BLOCKFALL_LOG_LEVEL", "info")),
		RedisAddr:     GetEnv("BLOCKFALL_REDIS_ADDR", ""),
		RedisPassword: GetEnv("BLOCKFALL_REDIS_PASSWORD", ""),
		RedisKey:      GetEnv("BLOCKFALL_REDIS_KEY", ""),
		PlayerName:    GetEnv("BLOCKFALL_PLAYER", "bot"),
	}
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		log.Printf("Invalid log level %q, using info", s)
		return slog.LevelInfo
	}
	return level
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid duration value for %s: %s, using default: %s", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
