// Package classifier is the demo "which circle made this?" simulator. It does
// no audio analysis: after a delay it picks a random circle and confidence.
package classifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"mime"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"pointmap/internal/logging"
)

// ErrNotAudio is returned for files whose MIME type is not audio/*.
var ErrNotAudio = errors.New("not an audio file")

// Circle is one candidate arrangement circle.
type Circle struct {
	Name      string
	Style     string
	Intensity int
	Color     string
}

// DefaultCircles is the built-in candidate list.
var DefaultCircles = []Circle{
	{Name: "IOSYS", Style: "Electronic, denpa", Intensity: 70, Color: "#4ECDC4"},
	{Name: "Liz Triangle", Style: "Acoustic, folk", Intensity: 75, Color: "#98FB98"},
	{Name: "SOUND HOLIC", Style: "Eurobeat, trance", Intensity: 60, Color: "#FFD93D"},
	{Name: "UNDEAD CORPORATION", Style: "Death metal", Intensity: 95, Color: "#FF6B6B"},
	{Name: "暁Records", Style: "Rock, vocal", Intensity: 80, Color: "#DDA0DD"},
}

// Confidence range of a simulated result: [MinConfidence, MaxConfidence).
const (
	MinConfidence = 0.70
	MaxConfidence = 0.95
)

// DefaultDelay mimics inference latency.
const DefaultDelay = 1500 * time.Millisecond

// Result is a simulated classification.
type Result struct {
	File       string
	MIME       string
	Circle     Circle
	Confidence float64
}

// Simulator produces Results. It is safe for concurrent use.
type Simulator struct {
	circles []Circle
	delay   time.Duration
	logger  *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithCircles replaces the candidate list.
func WithCircles(c []Circle) Option {
	return func(s *Simulator) {
		if len(c) > 0 {
			s.circles = append([]Circle(nil), c...)
		}
	}
}

// WithDelay sets the simulated latency.
func WithDelay(d time.Duration) Option {
	return func(s *Simulator) {
		if d >= 0 {
			s.delay = d
		}
	}
}

// WithSeed makes results reproducible. Zero keeps a time-based seed.
func WithSeed(seed int64) Option {
	return func(s *Simulator) {
		if seed != 0 {
			s.rng = rand.New(rand.NewSource(seed))
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Simulator) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns a Simulator.
func New(opts ...Option) *Simulator {
	s := &Simulator{
		circles: DefaultCircles,
		delay:   DefaultDelay,
		logger:  logging.Discard(),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Circles returns the candidate list.
func (s *Simulator) Circles() []Circle {
	return append([]Circle(nil), s.circles...)
}

// audioTypes covers common audio extensions on systems without a mime.types
// database.
var audioTypes = map[string]string{
	".aac":  "audio/aac",
	".flac": "audio/flac",
	".m4a":  "audio/mp4",
	".mp3":  "audio/mpeg",
	".ogg":  "audio/ogg",
	".opus": "audio/opus",
	".wav":  "audio/wav",
}

// DetectMIME returns the MIME type implied by the file extension, without
// parameters. Unknown extensions yield "".
func DetectMIME(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	t := mime.TypeByExtension(ext)
	if t == "" {
		return audioTypes[ext]
	}
	if mt, _, err := mime.ParseMediaType(t); err == nil {
		return mt
	}
	return t
}

// Classify validates path and returns a random result after the configured
// delay. It returns ctx.Err() if ctx ends first.
func (s *Simulator) Classify(ctx context.Context, path string) (Result, error) {
	mt := DetectMIME(path)
	if !strings.HasPrefix(mt, "audio/") {
		return Result{}, fmt.Errorf("%s (%s): %w", filepath.Base(path), orUnknown(mt), ErrNotAudio)
	}

	s.logger.Debug("classifying", "file", path, "mime", mt, "delay", s.delay)
	if s.delay > 0 {
		t := time.NewTimer(s.delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-t.C:
		}
	} else if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	s.mu.Lock()
	c := s.circles[s.rng.Intn(len(s.circles))]
	conf := MinConfidence + s.rng.Float64()*(MaxConfidence-MinConfidence)
	s.mu.Unlock()

	res := Result{File: path, MIME: mt, Circle: c, Confidence: conf}
	s.logger.Info("classified", "file", path, "circle", c.Name, "confidence", conf)
	return res, nil
}

func orUnknown(mt string) string {
	if mt == "" {
		return "unknown type"
	}
	return mt
}
