// Package dataset loads labeled 2D points for the scatter viewer from JSON,
// CSV or YAML files and from http(s) URLs.
package dataset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"pointmap/internal/logging"
	"pointmap/internal/scatter"
)

var (
	// ErrUnsupportedFormat is returned for sources whose format is unknown.
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	// ErrNoPoints is returned when a source parses but yields no usable point.
	ErrNoPoints = errors.New("no valid points")
	// ErrTooLarge is returned when a fetched body exceeds Loader.MaxBytes.
	ErrTooLarge = errors.New("dataset too large")
)

// DefaultMaxBytes caps a fetched body when Loader.MaxBytes is zero.
const DefaultMaxBytes = 64 << 20

// Format is a dataset encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

// idSpace namespaces the ids generated for rows without one.
var idSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("pointmap/dataset"))

// FormatFromPath infers the format from a file or URL path extension.
func FormatFromPath(p string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(p)); ext {
	case ".json", ".geojson":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Loader fetches datasets. The zero value reads files and uses
// http.DefaultClient with no logging.
type Loader struct {
	Client   *http.Client
	Logger   *slog.Logger
	Timeout  time.Duration // per fetch; 0 means 30s
	MaxBytes int64         // per fetched body; 0 means DefaultMaxBytes
}

func (l Loader) logger() *slog.Logger {
	if l.Logger == nil {
		return logging.Discard()
	}
	return l.Logger
}

// Load reads the dataset at src, a file path or an http(s) URL.
func (l Loader) Load(ctx context.Context, src string) ([]scatter.Point, error) {
	if isURL(src) {
		return l.fetch(ctx, src)
	}
	format, err := FormatFromPath(src)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return Decode(f, format, l.logger().With("source", src))
}

// LoadOrEmpty behaves like Load but never returns a nil slice; on failure the
// error is logged and returned alongside an empty dataset so the viewer can
// still paint its background.
func (l Loader) LoadOrEmpty(ctx context.Context, src string) ([]scatter.Point, error) {
	pts, err := l.Load(ctx, src)
	if err != nil {
		l.logger().Warn("dataset load failed", "source", src, "error", err)
		return []scatter.Point{}, err
	}
	return pts, nil
}

func isURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (l Loader) fetch(ctx context.Context, src string) ([]scatter.Point, error) {
	timeout := l.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", src, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", src, resp.Status)
	}

	u, _ := url.Parse(src)
	format, err := FormatFromPath(u.Path)
	if err != nil {
		format = formatFromContentType(resp.Header.Get("Content-Type"))
	}
	limit := l.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", src, err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("fetching %s: %w (over %d bytes)", src, ErrTooLarge, limit)
	}
	return Decode(bytes.NewReader(body), format, l.logger().With("source", src))
}

func formatFromContentType(ct string) Format {
	ct = strings.ToLower(ct)
	switch {
	case strings.Contains(ct, "csv"):
		return FormatCSV
	case strings.Contains(ct, "yaml"):
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses r in the given format.
func Decode(r io.Reader, format Format, logger *slog.Logger) ([]scatter.Point, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	var (
		recs []record
		err  error
	)
	switch format {
	case FormatJSON:
		recs, err = decodeJSON(r)
	case FormatYAML:
		recs, err = decodeYAML(r)
	case FormatCSV:
		recs, err = decodeCSV(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return toPoints(recs, logger)
}

// record is the union of the field names accepted for a point.
type record struct {
	ID         string   `json:"id" yaml:"id"`
	TrackID    string   `json:"track_id" yaml:"track_id"`
	Label      string   `json:"label" yaml:"label"`
	Title      string   `json:"title" yaml:"title"`
	Primary    string   `json:"primary" yaml:"primary"`
	Era        string   `json:"era" yaml:"era"`
	Secondary  string   `json:"secondary" yaml:"secondary"`
	Game       string   `json:"game" yaml:"game"`
	GroupTitle string   `json:"group_title" yaml:"group_title"`
	GameTitle  string   `json:"game_title" yaml:"game_title"`
	X          *float64 `json:"x" yaml:"x"`
	Y          *float64 `json:"y" yaml:"y"`
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func toPoints(recs []record, logger *slog.Logger) ([]scatter.Point, error) {
	pts := make([]scatter.Point, 0, len(recs))
	generated := 0
	for i, r := range recs {
		if r.X == nil || r.Y == nil || !finite(*r.X) || !finite(*r.Y) {
			logger.Warn("skipping record without finite coordinates", "index", i)
			continue
		}
		p := scatter.Point{
			ID:         firstNonEmpty(r.ID, r.TrackID),
			Label:      firstNonEmpty(r.Label, r.Title),
			Primary:    firstNonEmpty(r.Primary, r.Era),
			Secondary:  firstNonEmpty(r.Secondary, r.Game),
			GroupTitle: firstNonEmpty(r.GroupTitle, r.GameTitle),
			X:          *r.X,
			Y:          *r.Y,
		}
		if p.ID == "" {
			p.ID = stableID(p)
			generated++
		}
		if p.Label == "" {
			p.Label = p.ID
		}
		pts = append(pts, p)
	}
	if generated > 0 {
		logger.Debug("generated ids for records without one", "count", generated)
	}
	if len(pts) == 0 {
		return nil, ErrNoPoints
	}
	return pts, nil
}

// stableID derives an id from the content of p, so reloading the same file
// yields the same ids.
func stableID(p scatter.Point) string {
	key := strings.Join([]string{
		p.Label, p.Primary, p.Secondary, p.GroupTitle,
		strconv.FormatFloat(p.X, 'g', -1, 64),
		strconv.FormatFloat(p.Y, 'g', -1, 64),
	}, "\x1f")
	return uuid.NewSHA1(idSpace, []byte(key)).String()
}
