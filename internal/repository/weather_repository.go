package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/fakhrymubarak/forecast/internal/config"
	"github.com/fakhrymubarak/forecast/internal/model"
)

// SlotsPerDay is the number of 3-hour forecast increments in a day.
const SlotsPerDay = 8

// Endpoint is an OpenWeatherMap data/2.5 resource.
type Endpoint string

const (
	EndpointWeather  Endpoint = "weather"
	EndpointForecast Endpoint = "forecast"
)

// Custom error types
var (
	ErrTransport     = errors.New("weather API unreachable")
	ErrInvalidAPIKey = errors.New("weather API rejected the API key")
	ErrExternalAPI   = errors.New("external API error")
	ErrDecode        = errors.New("unexpected weather API response")
)

// SelectEndpoint picks the endpoint for a forecast horizon and the number of
// 3-hour slots to ask for. A horizon of 0 means current weather.
func SelectEndpoint(days uint8) (Endpoint, int) {
	count := int(days) * SlotsPerDay
	if days == 0 {
		return EndpointWeather, count
	}
	return EndpointForecast, count
}

// Request holds everything interpolated into the request URL.
type Request struct {
	BaseURL  string
	Endpoint Endpoint
	Lat      float64
	Lon      float64
	APIKey   string
	Units    string
	Count    int
}

// URL renders the request. Values are interpolated as-is.
func (r Request) URL() string {
	return fmt.Sprintf("%s/%s?lat=%s&lon=%s&appid=%s&units=%s&cnt=%d",
		r.BaseURL, r.Endpoint, formatCoord(r.Lat), formatCoord(r.Lon), r.APIKey, r.Units, r.Count)
}

// redacted is URL with the API key masked, for logging.
func (r Request) redacted() string {
	r.APIKey = "***"
	return r.URL()
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// NewRequest builds the request for days using the configured base URL,
// location and unit system.
func NewRequest(apiKey string, days uint8) Request {
	endpoint, count := SelectEndpoint(days)
	lat, lon := config.GetLocation()
	return Request{
		BaseURL:  config.GetOpenWeatherApiUrl(),
		Endpoint: endpoint,
		Lat:      lat,
		Lon:      lon,
		APIKey:   apiKey,
		Units:    config.GetUnits(),
		Count:    count,
	}
}

// WeatherRepository defines the interface for weather data access
type WeatherRepository interface {
	GetWeather(ctx context.Context, apiKey string, days uint8) (*model.WeatherResponse, error)
}

// weatherRepository implements WeatherRepository
type weatherRepository struct {
	httpClient *http.Client
}

// NewWeatherRepository creates a new weather repository instance. Without an
// explicit client it uses one with the configured timeout.
func NewWeatherRepository(httpClient ...*http.Client) WeatherRepository {
	client := &http.Client{Timeout: config.GetHTTPTimeout()}
	if len(httpClient) > 0 && httpClient[0] != nil {
		client = httpClient[0]
	}
	return &weatherRepository{
		httpClient: client,
	}
}

// GetWeather performs exactly one GET against the endpoint selected by days.
// The body is decoded as a WeatherResponse in both modes. A forecast body in
// the list shape is accepted too, and its nearest slot is returned instead.
func (r *weatherRepository) GetWeather(ctx context.Context, apiKey string, days uint8) (*model.WeatherResponse, error) {
	req := NewRequest(apiKey, days)
	logger := config.GetLogger()
	logger.Debugw("Requesting weather", "endpoint", req.Endpoint, "cnt", req.Count, "url", req.redacted())

	body, err := r.fetch(ctx, req)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	weather, err := decodeWeather(raw, req.Endpoint)
	if err != nil {
		logger.Debugw("Weather payload did not decode", "endpoint", req.Endpoint, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return weather, nil
}

// decodeWeather falls back to the forecast list shape only for the forecast
// endpoint, and only when the body is missing current weather fields but
// carries a "list".
func decodeWeather(raw []byte, endpoint Endpoint) (*model.WeatherResponse, error) {
	var data model.WeatherResponse
	err := json.Unmarshal(raw, &data)
	if err == nil {
		return &data, nil
	}
	if endpoint != EndpointForecast || !errors.Is(err, model.ErrMissingField) || !hasList(raw) {
		return nil, err
	}

	var forecast model.ForecastResponse
	if ferr := json.Unmarshal(raw, &forecast); ferr != nil {
		return nil, ferr
	}
	weather := forecast.Current()
	return &weather, nil
}

func hasList(raw []byte) bool {
	var shape struct {
		List json.RawMessage `json:"list"`
	}
	return json.Unmarshal(raw, &shape) == nil && len(shape.List) > 0
}

// fetch issues the GET and returns the body of a 2xx response.
func (r *weatherRepository) fetch(ctx context.Context, req Request) (io.ReadCloser, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	resp, err := r.httpClient.Do(httpReq)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = req.redacted()
		}
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	config.GetLogger().Debugw("Weather API responded", "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		msg := apiMessage(resp.Body)
		if resp.StatusCode == http.StatusUnauthorized {
			return nil, fmt.Errorf("%w: %s", ErrInvalidAPIKey, msg)
		}
		return nil, fmt.Errorf("%w: %s: %s", ErrExternalAPI, resp.Status, msg)
	}
	return resp.Body, nil
}

// apiMessage extracts the "message" field OpenWeatherMap puts in error bodies,
// falling back to the raw body.
func apiMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}
	var e struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &e); err == nil && e.Message != "" {
		return e.Message
	}
	return string(raw)
}
