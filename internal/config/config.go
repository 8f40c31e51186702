package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config is constructed once at startup and passed into each
// component's constructor. Nothing outside this package reads the
// environment.
type Config struct {
	DBUrl          string
	Port           string
	JWTSecret      string
	AllowedOrigins []string
}

func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Println(".env file not found, falling back to environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default-secret-key-change-in-production"
		log.Println("JWT_SECRET not set, using default key")
	}

	origins := []string{"*"}
	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		origins = origins[:0]
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return Config{
		DBUrl:          os.Getenv("DB_URL"),
		Port:           port,
		JWTSecret:      secret,
		AllowedOrigins: origins,
	}
}
