package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-report/config"
	"weather-report/internal/models"
)

func TestInitLogger_WritesToOutput(t *testing.T) {
	cnf := config.Default()
	cnf.Log.Level = "info"

	var buf bytes.Buffer
	l, hook := InitLogger(cnf, &buf)
	require.NotNil(t, l)
	assert.False(t, hook.Enabled())

	l.Debug("hidden")
	l.Info("visible", map[string]any{"k": "v"})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "visible", entry["msg"])
	assert.Equal(t, "v", entry["k"])
	assert.Equal(t, cnf.App.Name, entry["app_name"])
}

func TestInitLogger_ConsoleFormatSkipsSentry(t *testing.T) {
	cnf := config.Default()
	cnf.Log.Format = "console"
	cnf.Sentry.DSN = "https://public@example.com/1"

	var buf bytes.Buffer
	l, hook := InitLogger(cnf, &buf)
	require.NotNil(t, l)
	assert.False(t, hook.Enabled())

	l.Info("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestInitLogger_JSONFormatEnablesSentry(t *testing.T) {
	cnf := config.Default()
	cnf.App.Env = "prod"
	cnf.Log.Format = "json"
	cnf.Sentry.DSN = "https://public@example.com/1"

	l, hook := InitLogger(cnf, &bytes.Buffer{})
	require.NotNil(t, l)
	assert.True(t, hook.Enabled())
}

func TestInitReportService_UsesConfiguredEndpoints(t *testing.T) {
	geocoding := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	}))
	defer geocoding.Close()

	cnf := config.Default()
	cnf.OpenMeteo.GeocodingURL = geocoding.URL
	cnf.Report.OutputDir = t.TempDir()

	l, _ := InitLogger(cnf, &bytes.Buffer{})
	service := InitReportService(cnf, l)

	_, err := service.Analyze(context.Background(), "Atlantis")
	assert.True(t, errors.Is(err, models.ErrCityNotFound))
}
