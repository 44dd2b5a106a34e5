package service

import (
	"context"
	"errors"

	"github.com/fakhrymubarak/forecast/internal/config"
	"github.com/fakhrymubarak/forecast/internal/model"
	"github.com/fakhrymubarak/forecast/internal/repository"
)

// ErrNoConditions is returned when the API answered without any weather
// condition to describe.
var ErrNoConditions = errors.New("weather API returned no weather conditions")

// ForecastServiceInterface defines the interface for the forecast lookup
type ForecastServiceInterface interface {
	Run(ctx context.Context, days uint8) (*model.Summary, error)
}

// ForecastService resolves the credential, fetches the weather once and
// reduces it to a summary.
type ForecastService struct {
	WeatherRepo repository.WeatherRepository
	// APIKey resolves the credential. Defaults to config.GetAPIKey.
	APIKey func() (string, error)
}

// NewForecastService creates a new forecast service instance
func NewForecastService(repo ...repository.WeatherRepository) *ForecastService {
	var weatherRepo repository.WeatherRepository
	if len(repo) > 0 && repo[0] != nil {
		weatherRepo = repo[0]
	} else {
		weatherRepo = repository.NewWeatherRepository()
	}
	return &ForecastService{
		WeatherRepo: weatherRepo,
		APIKey:      config.GetAPIKey,
	}
}

// Run looks up the weather for a horizon of days (0 = current weather). The
// credential is checked before any request is made.
func (s *ForecastService) Run(ctx context.Context, days uint8) (*model.Summary, error) {
	resolve := s.APIKey
	if resolve == nil {
		resolve = config.GetAPIKey
	}
	apiKey, err := resolve()
	if err != nil {
		return nil, err
	}

	weather, err := s.WeatherRepo.GetWeather(ctx, apiKey, days)
	if err != nil {
		config.GetLogger().Debugw("Failed to fetch weather", "days", days, "error", err)
		return nil, err
	}
	return Summarize(weather)
}

// Summarize takes the temperature and the first condition's description.
func Summarize(weather *model.WeatherResponse) (*model.Summary, error) {
	if weather == nil || len(weather.Weather) == 0 {
		return nil, ErrNoConditions
	}
	return &model.Summary{
		Temperature: weather.Main.Temp,
		Description: weather.Weather[0].Description,
	}, nil
}
