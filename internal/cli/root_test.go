package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/fakhrymubarak/forecast/internal/config"
	"github.com/fakhrymubarak/forecast/internal/model"
	"github.com/fakhrymubarak/forecast/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockForecastService struct {
	summary *model.Summary
	err     error
	days    []uint8
}

func (m *mockForecastService) Run(ctx context.Context, days uint8) (*model.Summary, error) {
	m.days = append(m.days, days)
	if m.err != nil {
		return nil, m.err
	}
	return m.summary, nil
}

// Ensure mockForecastService implements ForecastServiceInterface
var _ service.ForecastServiceInterface = (*mockForecastService)(nil)

func execute(t *testing.T, svc service.ForecastServiceInterface, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd(svc)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCmd_Days(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want uint8
	}{
		{name: "default", args: nil, want: 0},
		{name: "short flag", args: []string{"-d", "2"}, want: 2},
		{name: "short flag attached", args: []string{"-d5"}, want: 5},
		{name: "long flag", args: []string{"--days=255"}, want: 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockForecastService{summary: &model.Summary{Temperature: 1, Description: "x"}}
			_, err := execute(t, svc, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, []uint8{tt.want}, svc.days)
		})
	}
}

func TestRootCmd_PrintsSummary(t *testing.T) {
	svc := &mockForecastService{summary: &model.Summary{Temperature: 72.5, Description: "clear sky"}}

	out, err := execute(t, svc)
	require.NoError(t, err)
	assert.Equal(t, "72.5 \"clear sky\"\n", out)
}

func TestRootCmd_RejectsBadInput(t *testing.T) {
	tests := map[string][]string{
		"days too large":  {"-d", "256"},
		"negative days":   {"-d", "-1"},
		"not a number":    {"--days", "two"},
		"positional args": {"Lakewood"},
		"unknown flag":    {"--lat", "1"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			svc := &mockForecastService{}
			_, err := execute(t, svc, args...)
			assert.Error(t, err)
			assert.Empty(t, svc.days)
		})
	}
}

func TestRootCmd_ServiceErrorPrintsNothing(t *testing.T) {
	svc := &mockForecastService{err: service.ErrNoConditions}

	out, err := execute(t, svc)
	assert.ErrorIs(t, err, service.ErrNoConditions)
	assert.Empty(t, out)
}

func TestRootCmd_Help(t *testing.T) {
	out, err := execute(t, &mockForecastService{}, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Weather in the terminal!")
	assert.Contains(t, out, "-d, --days")
}

func TestExecute_MissingAPIKey(t *testing.T) {
	t.Setenv(config.APIKeyEnv, "")

	err := Execute(context.Background(), nil)
	assert.ErrorIs(t, err, config.ErrAPIKeyMissing)
}
