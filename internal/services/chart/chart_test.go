package chart

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-report/internal/models"
)

func days(temps ...float64) []models.DailySummary {
	out := make([]models.DailySummary, len(temps))
	for i, t := range temps {
		out[i] = models.DailySummary{
			Date:          time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC),
			Temperature:   t,
			Precipitation: float64(i) * 0.7,
		}
	}
	return out
}

func TestRenderer_Render(t *testing.T) {
	var buf bytes.Buffer

	err := NewRenderer(0, 0).Render(&buf, Title("Berlin", 7), days(13, 21, 20.2, 18, 15.5, 16, 17.25))
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")))

	img, err := png.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, DefaultWidth, img.Bounds().Dx())
	assert.Equal(t, DefaultHeight, img.Bounds().Dy())
}

func TestRenderer_Deterministic(t *testing.T) {
	r := NewRenderer(640, 400)
	input := days(1, 2, 3)

	var first, second bytes.Buffer
	require.NoError(t, r.Render(&first, Title("Oslo", 7), input))
	require.NoError(t, r.Render(&second, Title("Oslo", 7), input))

	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestRenderer_FlatSeries(t *testing.T) {
	input := days(5, 5, 5)
	for i := range input {
		input[i].Precipitation = 0
	}

	var buf bytes.Buffer
	assert.NoError(t, NewRenderer(0, 0).Render(&buf, Title("Cairo", 7), input))
	assert.NotZero(t, buf.Len())
}

func TestRenderer_SingleDay(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(0, 0).Render(&buf, Title("Lima", 7), days(19)))
	require.NotZero(t, buf.Len())
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, DefaultWidth, img.Bounds().Dx())
}

func TestRenderer_SingleDayZeroValues(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(0, 0).Render(&buf, Title("Lima", 1), days(0)))
	assert.NotZero(t, buf.Len())
}

func TestRenderer_NoDays(t *testing.T) {
	var buf bytes.Buffer
	err := NewRenderer(0, 0).Render(&buf, Title("Lima", 7), nil)
	assert.ErrorIs(t, err, ErrNoDays)
	assert.Zero(t, buf.Len())
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Weather Analysis: Berlin (Last 7 Days)", Title("Berlin", 7))
}
