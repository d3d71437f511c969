package classifier

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyRejectsNonAudio(t *testing.T) {
	s := New(WithDelay(0))
	for _, name := range []string{"notes.txt", "cover.png", "noext"} {
		t.Run(name, func(t *testing.T) {
			_, err := s.Classify(t.Context(), name)
			assert.ErrorIs(t, err, ErrNotAudio)
		})
	}
}

func TestClassifyReturnsKnownCircle(t *testing.T) {
	s := New(WithDelay(0), WithSeed(42))
	names := map[string]bool{}
	for _, c := range DefaultCircles {
		names[c.Name] = true
	}
	for i := 0; i < 200; i++ {
		res, err := s.Classify(t.Context(), "track.wav")
		require.NoError(t, err)
		assert.True(t, names[res.Circle.Name], res.Circle.Name)
		assert.GreaterOrEqual(t, res.Confidence, MinConfidence)
		assert.Less(t, res.Confidence, MaxConfidence)
		assert.Equal(t, "audio/", res.MIME[:6])
	}
}

func TestClassifySeedIsReproducible(t *testing.T) {
	a := New(WithDelay(0), WithSeed(7))
	b := New(WithDelay(0), WithSeed(7))
	for i := 0; i < 10; i++ {
		ra, err := a.Classify(t.Context(), "a.wav")
		require.NoError(t, err)
		rb, err := b.Classify(t.Context(), "a.wav")
		require.NoError(t, err)
		assert.Equal(t, ra.Circle, rb.Circle)
		assert.Equal(t, ra.Confidence, rb.Confidence)
	}
}

func TestClassifyCustomCircles(t *testing.T) {
	only := Circle{Name: "Solo", Style: "Piano"}
	s := New(WithDelay(0), WithCircles([]Circle{only}))
	res, err := s.Classify(t.Context(), "x.wav")
	require.NoError(t, err)
	assert.Equal(t, only, res.Circle)
	assert.Equal(t, []Circle{only}, s.Circles())
}

func TestClassifyHonorsContext(t *testing.T) {
	s := New(WithDelay(time.Hour))
	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := s.Classify(ctx, "track.wav")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Minute)
}

func TestDetectMIME(t *testing.T) {
	assert.Equal(t, "image/png", DetectMIME("cover.PNG"))
	assert.Contains(t, DetectMIME("song.mp3"), "audio/")
	assert.Contains(t, DetectMIME("song.FLAC"), "audio/")
	assert.Equal(t, "", DetectMIME("README"))
}

func TestDefaultLoggerIsSilent(t *testing.T) {
	s := New()
	assert.False(t, s.logger.Enabled(t.Context(), slog.LevelError))
}
