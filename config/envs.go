package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP            string // Host IP for the server
	RESTPort          int    // Port for the REST API
	DBHost            string // Hostname or IP address for the database
	DBPort            int    // Port number for the database
	DBUser            string // Username for the database
	DBPassword        string // Password for the database
	DBName            string // Name of the database
	RedisAddr         string // host:port of the Redis server
	RedisPassword     string // Password for Redis, empty for none
	RedisDB           int    // Redis database number
	GinMode           string // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret         string // Secret key for JWT signing
	JWTIssuer         string // Issuer claim for JWTs
	SessionTTLSeconds int    // Lifetime of an idle game session
	MaxMazeDimension  int    // Largest row or column count served by GET /mazes
}

// Load reads the configuration from the environment, after loading a .env file if one
// exists. Every missing or malformed variable is reported in the returned error.
func Load() (*Config, error) {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}
	return fromEnv(os.LookupEnv)
}

func fromEnv(lookup func(string) (string, bool)) (*Config, error) {
	e := &env{lookup: lookup}

	c := &Config{
		HostIP:            e.mustGet("HOST_IP"),
		RESTPort:          e.mustGetInt("REST_PORT"),
		DBHost:            e.mustGet("DB_HOST"),
		DBPort:            e.mustGetInt("DB_PORT"),
		DBUser:            e.mustGet("DB_USER"),
		DBPassword:        e.mustGet("DB_PASS"),
		DBName:            e.mustGet("DB_NAME"),
		RedisAddr:         e.mustGet("REDIS_ADDR"),
		RedisPassword:     e.getWithDefault("REDIS_PASSWORD", ""),
		RedisDB:           e.getIntWithDefault("REDIS_DB", 0),
		GinMode:           e.getWithDefault("GIN_MODE", "release"),
		JWTSecret:         e.mustGet("JWT_SECRET"),
		JWTIssuer:         e.mustGet("JWT_ISSUER"),
		SessionTTLSeconds: e.getIntWithDefault("SESSION_TTL_SECONDS", 86400),
		MaxMazeDimension:  e.getIntWithDefault("MAX_MAZE_DIMENSION", 100),
	}

	if len(e.problems) > 0 {
		return nil, errors.New("configuration: " + strings.Join(e.problems, "; "))
	}
	return c, nil
}

// env reads variables and collects every problem instead of stopping at the first.
type env struct {
	lookup   func(string) (string, bool)
	problems []string
}

// mustGet retrieves the value of an environment variable or records it as missing.
func (e *env) mustGet(key string) string {
	value, exists := e.lookup(key)
	if !exists {
		e.problems = append(e.problems, fmt.Sprintf("%s is not set", key))
	}
	return value
}

// mustGetInt retrieves the value of an environment variable as an integer.
func (e *env) mustGetInt(key string) int {
	value, exists := e.lookup(key)
	if !exists {
		e.problems = append(e.problems, fmt.Sprintf("%s is not set", key))
		return 0
	}
	return e.atoi(key, value)
}

// getWithDefault retrieves the value of an environment variable or returns a default value if not set.
func (e *env) getWithDefault(key, defaultValue string) string {
	if value, exists := e.lookup(key); exists {
		return value
	}
	return defaultValue
}

func (e *env) getIntWithDefault(key string, defaultValue int) int {
	value, exists := e.lookup(key)
	if !exists {
		return defaultValue
	}
	return e.atoi(key, value)
}

func (e *env) atoi(key, value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		e.problems = append(e.problems, fmt.Sprintf("%s must be an integer: %v", key, err))
	}
	return n
}
