package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// APIKeyEnv is the environment variable holding the OpenWeatherMap credential.
const APIKeyEnv = "API_KEY"

// Defaults used when no config file provides a value.
const (
	DefaultAPIURL = "https://api.openweathermap.org/data/2.5"
	DefaultUnits  = "imperial"
	// Lakewood, OH.
	DefaultLat = 41.478130
	DefaultLon = -81.804850
)

// ErrAPIKeyMissing is returned when API_KEY is unset or empty.
var ErrAPIKeyMissing = errors.New("please set the API_KEY in your .env file")

var once sync.Once
var loadErr error
var logger *zap.SugaredLogger
var loggerOnce sync.Once

// isTestRun returns true if the current process is a Go test binary.
func isTestRun() bool {
	return flag.Lookup("test.v") != nil || filepath.Ext(os.Args[0]) == ".test"
}

func setDefaults() {
	viper.SetDefault("openweathermap.api_url", DefaultAPIURL)
	viper.SetDefault("openweathermap.units", DefaultUnits)
	viper.SetDefault("location.lat", DefaultLat)
	viper.SetDefault("location.lon", DefaultLon)
	viper.SetDefault("http.timeout", "0s")
	viper.SetDefault("log.level", "warn")
}

// configPaths lists the directories searched for config.yaml, in order.
func configPaths() []string {
	return searchPaths(isTestRun())
}

// searchPaths only walks up to the enclosing go.mod under tests, so an
// installed binary never reads another project's config.yaml.
func searchPaths(withProjectRoot bool) []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "forecast"))
	}
	if withProjectRoot {
		if root, err := getProjectRoot(); err == nil {
			paths = append(paths, root)
		}
	}
	return paths
}

// loadConfig must not log: the logger itself depends on the loaded level.
func loadConfig() {
	setDefaults()
	viper.SetConfigType("yaml")
	viper.SetConfigName("config")
	for _, p := range configPaths() {
		viper.AddConfigPath(p)
	}
	loadErr = viper.ReadInConfig()

	if isTestRun() {
		viper.SetConfigName("config_test")
		if err := viper.MergeInConfig(); err != nil {
			loadErr = errors.Join(loadErr, err)
		}
	}
}

func initConfig() {
	once.Do(loadConfig)
}

func getProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// GetAPIKey loads .env (if present) and returns API_KEY.
func GetAPIKey() (string, error) {
	_ = godotenv.Load()
	key, ok := os.LookupEnv(APIKeyEnv)
	if !ok || strings.TrimSpace(key) == "" {
		return "", ErrAPIKeyMissing
	}
	return key, nil
}

func GetOpenWeatherApiUrl() string {
	initConfig()
	return strings.TrimRight(viper.GetString("openweathermap.api_url"), "/")
}

func GetUnits() string {
	initConfig()
	return viper.GetString("openweathermap.units")
}

// GetLocation returns the latitude and longitude the forecast is requested for.
func GetLocation() (lat, lon float64) {
	initConfig()
	return viper.GetFloat64("location.lat"), viper.GetFloat64("location.lon")
}

// GetHTTPTimeout returns the outbound request timeout. Zero means none.
func GetHTTPTimeout() time.Duration {
	initConfig()
	d := viper.GetDuration("http.timeout")
	if d < 0 {
		return 0
	}
	return d
}

// ReloadConfigForTest resets the config singleton and reloads Viper config. Use only in tests.
func ReloadConfigForTest() {
	once = sync.Once{}
	initConfig()
}

// GetLogger returns the process-wide logger. It writes to stderr so that
// stdout only ever carries the forecast line.
func GetLogger() *zap.SugaredLogger {
	loggerOnce.Do(func() {
		initConfig()
		cfg := zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{"stderr"}
		if lvl, err := zap.ParseAtomicLevel(viper.GetString("log.level")); err == nil {
			cfg.Level = lvl
		}
		l, err := cfg.Build()
		if err != nil {
			l = zap.NewNop()
		}
		logger = l.Sugar()
		if loadErr != nil {
			logger.Debugw("Config file not fully loaded, using defaults", "error", loadErr)
		}
	})
	return logger
}
