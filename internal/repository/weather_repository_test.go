package repository

import (
	"strings"
	"testing"

	"github.com/fakhrymubarak/forecast/internal/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestNewWeatherRepository(t *testing.T) {
	repo := NewWeatherRepository()
	if repo == nil {
		t.Error("Expected repository to be created")
	}
}

func TestSelectEndpoint(t *testing.T) {
	endpoint, count := SelectEndpoint(0)
	assert.Equal(t, EndpointWeather, endpoint)
	assert.Equal(t, 0, count)

	for days := 1; days <= 255; days++ {
		endpoint, count := SelectEndpoint(uint8(days))
		assert.Equal(t, EndpointForecast, endpoint, "days=%d", days)
		assert.Equal(t, days*8, count, "days=%d", days)
	}
}

func TestSelectEndpoint_MaxHorizonDoesNotOverflow(t *testing.T) {
	_, count := SelectEndpoint(255)
	assert.Equal(t, 2040, count)
}

func TestRequest_URL(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want string
	}{
		{
			name: "current weather",
			req: Request{
				BaseURL:  config.DefaultAPIURL,
				Endpoint: EndpointWeather,
				Lat:      config.DefaultLat,
				Lon:      config.DefaultLon,
				APIKey:   "abc123",
				Units:    "imperial",
			},
			want: "https://api.openweathermap.org/data/2.5/weather?lat=41.47813&lon=-81.80485&appid=abc123&units=imperial&cnt=0",
		},
		{
			name: "two day forecast",
			req: Request{
				BaseURL:  config.DefaultAPIURL,
				Endpoint: EndpointForecast,
				Lat:      config.DefaultLat,
				Lon:      config.DefaultLon,
				APIKey:   "abc123",
				Units:    "imperial",
				Count:    16,
			},
			want: "https://api.openweathermap.org/data/2.5/forecast?lat=41.47813&lon=-81.80485&appid=abc123&units=imperial&cnt=16",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.URL())
		})
	}
}

func TestRequest_Redacted(t *testing.T) {
	req := Request{BaseURL: "http://x", Endpoint: EndpointWeather, APIKey: "secret"}
	assert.NotContains(t, req.redacted(), "secret")
	assert.Contains(t, req.redacted(), "appid=***")
	assert.Equal(t, "secret", req.APIKey)
}

func TestNewRequest(t *testing.T) {
	viper.Set("openweathermap.api_url", "https://api.example.test/data/2.5")
	defer viper.Set("openweathermap.api_url", nil)

	req := NewRequest("k", 2)
	assert.Equal(t, EndpointForecast, req.Endpoint)
	assert.Equal(t, 16, req.Count)
	assert.Equal(t, "imperial", req.Units)
	assert.True(t, strings.HasPrefix(req.URL(), "https://api.example.test/data/2.5/forecast?"))
	assert.Contains(t, req.URL(), "cnt=16")
	assert.Contains(t, req.URL(), "appid=k")
}

func TestApiMessage(t *testing.T) {
	msg := apiMessage(strings.NewReader(`{"cod":401, "message": "Invalid API key. Please see https://openweathermap.org/faq#error401 for more info."}`))
	assert.True(t, strings.HasPrefix(msg, "Invalid API key"))

	assert.Equal(t, "upstream down", apiMessage(strings.NewReader("upstream down")))
}
