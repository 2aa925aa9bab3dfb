package market

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ulikunitz/xz"
)

const csvLayout = "20060102 150405"

// LoadStats counts lines the loader had to skip or repair.
type LoadStats struct {
	Bars     int
	BadLines int
}

// LoadHistory reads a semicolon-separated bar file for item and returns
// its chronological history. Expected columns are
// time;open;high;low;close;volume with an optional header line.
// Files ending in .xz are decompressed transparently.
//
// Malformed lines are counted and skipped, never fatal; a file that
// yields no bars at all is an error.
func LoadHistory(item Item, path string) (History, LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return History{}, LoadStats{}, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		xr, err := xz.NewReader(f)
		if err != nil {
			return History{}, LoadStats{}, fmt.Errorf("open xz %s: %w", path, err)
		}
		r = xr
	}

	h, stats, err := readBars(item, r)
	if err != nil {
		return History{}, stats, fmt.Errorf("read %s: %w", path, err)
	}
	return h, stats, nil
}

func readBars(item Item, r io.Reader) (History, LoadStats, error) {
	var stats LoadStats

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	h := History{Item: item}
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(strings.ToLower(line), "time;") {
			continue
		}
		bar, ok := parseBar(line)
		if !ok {
			stats.BadLines++
			continue
		}
		h.Bars = append(h.Bars, bar)
	}
	if err := sc.Err(); err != nil {
		return History{}, stats, err
	}
	if len(h.Bars) == 0 {
		return History{}, stats, fmt.Errorf("no valid bars")
	}

	h.Sort()
	stats.Bars = len(h.Bars)
	return h, stats, nil
}

func parseBar(line string) (HistoryPoint, bool) {
	parts := strings.Split(line, ";")
	if len(parts) < 5 {
		return HistoryPoint{}, false
	}

	ts, err := parseTime(parts[0])
	if err != nil {
		return HistoryPoint{}, false
	}

	vals := make([]float64, 4)
	for i := 1; i < 5; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return HistoryPoint{}, false
		}
		vals[i-1] = v
	}

	var volume float64
	if len(parts) > 5 {
		// volume column is optional and often zero for forex feeds
		volume, _ = strconv.ParseFloat(strings.TrimSpace(parts[5]), 64)
	}

	o, hi, lo, c := vals[0], vals[1], vals[2], vals[3]
	return HistoryPoint{
		Time:   ts,
		Price:  c,
		Low:    lo,
		High:   hi,
		Volume: volume,
		Open:   o,
		Close:  c,
	}, true
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(csvLayout, s, time.UTC); err == nil {
		return t, nil
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
