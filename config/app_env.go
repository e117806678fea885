package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/viewmark/viewmark/internal/log"
	"github.com/viewmark/viewmark/pkg/utils"
)

const (
	AppEnvKey = "APP_ENV"
	// EnvFileKey names the dotenv file read by both the server and the CLI.
	// The CLI also binds it to --env-file.
	EnvFileKey     = "VIEWMARK_ENV_FILE"
	SkipDotenvKey  = "SKIP_DOTENV"
	defaultEnvFile = ".env"
)

type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTest        Environment = "test"
	EnvProduction  Environment = "production"
)

// ParseEnvironment folds the accepted APP_ENV spellings. An empty value is
// development; unknown names are kept lower-cased.
func ParseEnvironment(raw string) Environment {
	switch env := strings.ToLower(strings.TrimSpace(raw)); env {
	case "", "dev", "development", "local":
		return EnvDevelopment
	case "test", "testing":
		return EnvTest
	case "prod", "production":
		return EnvProduction
	default:
		return Environment(env)
	}
}

func CurrentEnvironment() Environment {
	return ParseEnvironment(os.Getenv(AppEnvKey))
}

func (e Environment) AllowsAutoMigrate() bool {
	return e == EnvDevelopment || e == EnvTest
}

func checkAutoMigrate(logger *log.Logger) error {
	env := CurrentEnvironment()
	if !env.AllowsAutoMigrate() {
		return fmt.Errorf("--auto-migrate is not allowed when %s=%q", AppEnvKey, string(env))
	}
	if strings.TrimSpace(os.Getenv(AppEnvKey)) == "" {
		logger.Warn("APP_ENV not set; allowing --auto-migrate as development")
	}
	return nil
}

// LoadEnvFile loads path, or VIEWMARK_ENV_FILE, or .env, without overriding
// variables already present in the process. It returns the file it loaded
// and "" when loading was skipped or the file is absent.
func LoadEnvFile(logger *log.Logger, path string) string {
	if utils.GetEnvBool(SkipDotenvKey, false) {
		logger.Debug("Skipping env file", "reason", SkipDotenvKey)
		return ""
	}

	if strings.TrimSpace(path) == "" {
		path = utils.GetEnvTrimmedOrDefault(EnvFileKey, defaultEnvFile)
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("No env file found", "path", path)
		} else {
			logger.Warn("Failed to load env file", "path", path, "error", err)
		}
		return ""
	}

	logger.Info("Loaded env file", "path", path)
	return path
}
