package config

import (
	"log"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration.
type Config struct {
	Port            string
	AppTitle        string
	DBPath          string
	DataDir         string
	UploadDir       string
	PublicDir       string
	TrustedNetworks []netip.Prefix
	MaxUploadMB     int64
}

var (
	once     sync.Once
	instance *Config
)

// GetConfig returns the singleton instance of the Config.
// It loads the configuration from an .env file on its first call.
func GetConfig() *Config {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil {
			log.Println("No .env file found, using default environment variables")
		}

		instance = &Config{
			Port:            getEnv("PORT", "3000"),
			AppTitle:        getEnv("APP_TITLE", "Godot Build Manager"),
			DBPath:          getEnv("DB_PATH", "db/builds.db"),
			DataDir:         getEnv("DATA_DIR", "builds"),
			UploadDir:       getEnv("UPLOAD_DIR", "uploads"),
			PublicDir:       getEnv("PUBLIC_DIR", "public"),
			TrustedNetworks: parsePrefixes(getEnv("TRUSTED_NETWORKS", "192.168.0.0/16")),
			MaxUploadMB:     getEnvInt64("MAX_UPLOAD_MB", 512),
		}
	})
	return instance
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
		log.Printf("Invalid value for %s, using default %d", key, defaultValue)
	}
	return defaultValue
}

// parsePrefixes parses a comma-separated list of CIDR ranges. Entries that
// fail to parse are skipped with a warning rather than aborting startup.
func parsePrefixes(raw string) []netip.Prefix {
	var prefixes []netip.Prefix
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		p, err := netip.ParsePrefix(part)
		if err != nil {
			log.Printf("Skipping invalid trusted network %q: %v", part, err)
			continue
		}
		prefixes = append(prefixes, p)
	}
	return prefixes
}
