package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

// Store backends selectable with TASK_STORE.
const (
	backendMemory = "memory"
	backendSQLite = "sqlite"
)

// Config holds the server settings read from the environment.
type Config struct {
	Port           int
	AllowedOrigins string
	StoreBackend   string
	DBPath         string
	DBDebug        bool
}

// ListenAddr returns the address the HTTP server binds to.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func loadConfig() Config {
	return Config{
		Port:           getEnvInt("PORT", 5000),
		AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		StoreBackend:   getEnv("TASK_STORE", backendMemory),
		DBPath:         getEnv("TASK_DB_PATH", "tasks.db"),
		DBDebug:        getEnvBool("DB_DEBUG", false),
	}
}

// getEnv returns environment variable or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvBool returns environment variable as bool or default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
		log.Printf("Warning: invalid bool value for %s: %s, using default: %t", key, value, defaultValue)
	}
	return defaultValue
}
