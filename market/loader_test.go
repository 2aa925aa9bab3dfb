package market

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

const sampleBars = `time;open;high;low;close;volume
20190306 145500;171.24;172.48;170.55;172.02;1200
20190306 150500;172.02;173.10;171.80;172.90;900
not-a-timestamp;1;2;3;4;5
20190306 144500;170.00;171.00;169.50;171.20;1500
`

func TestLoadHistoryCSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "aapl.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleBars), 0644))

	h, stats, err := LoadHistory(With("AAPL"), path)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Bars)
	assert.Equal(t, 1, stats.BadLines)
	require.Len(t, h.Bars, 3)

	// sorted chronologically regardless of file order
	assert.True(t, h.Bars[0].Time.Before(h.Bars[1].Time))
	assert.True(t, h.Bars[1].Time.Before(h.Bars[2].Time))

	first := h.Bars[0]
	assert.Equal(t, 170.00, first.Open)
	assert.Equal(t, 171.00, first.High)
	assert.Equal(t, 169.50, first.Low)
	assert.Equal(t, 171.20, first.Close)
	assert.Equal(t, 171.20, first.Price)
	assert.Equal(t, 1500.0, first.Volume)
}

func TestLoadHistoryXZ(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "aapl.csv.xz")
	f, err := os.Create(path)
	require.NoError(t, err)
	w, err := xz.NewWriter(f)
	require.NoError(t, err)
	_, err = w.Write([]byte(sampleBars))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	h, stats, err := LoadHistory(With("AAPL"), path)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Bars)
	assert.Len(t, h.Bars, 3)
}

func TestLoadHistoryNoBars(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte("time;open;high;low;close;volume\n"), 0644))

	_, _, err := LoadHistory(With("AAPL"), path)
	assert.Error(t, err)
}

func TestLoadHistoryMissingFile(t *testing.T) {
	t.Parallel()

	_, _, err := LoadHistory(With("AAPL"), filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestParseTimeFormats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"compact", "20190306 145500", true},
		{"rfc3339", "2019-03-06T14:55:00Z", true},
		{"unix", "1551884100", true},
		{"garbage", "yesterday", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := parseTime(tt.input)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
