// Package speech turns sentence text into playable audio.
package speech

import (
	"context"
	"encoding/base64"
	"errors"
	"time"

	"github.com/abhisek/spellbound/internal/resilience"
)

// Default PCM layout returned by the supported TTS endpoints.
const (
	DefaultSampleRate    = 24000
	DefaultChannels      = 1
	DefaultBitsPerSample = 16
)

var (
	// ErrAllFailed is returned when every configured backend failed.
	ErrAllFailed = resilience.ErrAllFailed

	// ErrCircuitOpen is returned when a backend is temporarily disabled
	// after repeated failures.
	ErrCircuitOpen = resilience.ErrCircuitOpen

	// ErrNoAudio is returned when a backend answered without audio data.
	ErrNoAudio = errors.New("no audio in response")
)

// Audio is raw little-endian signed PCM.
type Audio struct {
	PCM           []byte
	SampleRate    int
	Channels      int
	BitsPerSample int
}

// NewAudio wraps pcm with the default layout.
func NewAudio(pcm []byte) *Audio {
	return &Audio{
		PCM:           pcm,
		SampleRate:    DefaultSampleRate,
		Channels:      DefaultChannels,
		BitsPerSample: DefaultBitsPerSample,
	}
}

// Base64 returns the PCM payload base64-encoded.
func (a *Audio) Base64() string {
	return base64.StdEncoding.EncodeToString(a.PCM)
}

// Duration is the playback length of the audio.
func (a *Audio) Duration() time.Duration {
	bytesPerSec := a.SampleRate * a.Channels * a.BitsPerSample / 8
	if bytesPerSec == 0 {
		return 0
	}
	return time.Duration(len(a.PCM)) * time.Second / time.Duration(bytesPerSec)
}

// Synthesizer converts text to speech.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (*Audio, error)
}
