package config

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all runtime configuration, read from the environment (with a
// best-effort .env file load first).
type Config struct {
	Port          string `env:"PORT" env-default:"8000"`
	MongoURI      string `env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	MongoDBName   string `env:"MONGO_DB_NAME" env-default:"ruraliq"`
	JWTSecret     string `env:"JWT_SECRET" env-default:"dev-only-secret"`
	TokenTTLHours int    `env:"TOKEN_TTL_HOURS" env-default:"24"`

	// ExtraOrigins is a comma-separated list appended to the built-in CORS
	// allowlist.
	ExtraOrigins string `env:"ALLOWED_ORIGINS" env-default:""`
}

func Load() (Config, error) {
	if err := LoadEnv(); err != nil {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}
	return cfg, nil
}

// AllowedOrigins is the CORS allowlist: local dev servers plus anything from
// ALLOWED_ORIGINS.
func (c Config) AllowedOrigins() []string {
	origins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	}
	for _, o := range strings.Split(c.ExtraOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// LoadEnv loads environment variables from a .env file if one can be found.
func LoadEnv() error {
	possiblePaths := []string{
		".env",
		"../.env",
		os.Getenv("RURALIQ_ENV"),
	}

	var loadedFile string
	for _, path := range possiblePaths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			loadedFile = path
			break
		}
	}

	if loadedFile == "" {
		// Nothing to load; the process environment may already be complete.
		return nil
	}

	file, err := os.Open(loadedFile)
	if err != nil {
		return fmt.Errorf("error opening .env file: %v", err)
	}
	defer file.Close()

	log.Printf("Loading environment variables from %s", loadedFile)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)
		os.Setenv(key, value)
	}
	return scanner.Err()
}
