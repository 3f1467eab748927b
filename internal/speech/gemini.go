package speech

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/genai"
)

// GeminiConfig configures the Gemini TTS backend.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-2.5-flash-preview-tts"
	Voice  string // Default: "Kore"
}

// GeminiSynthesizer implements Synthesizer with Gemini's native audio
// output.
type GeminiSynthesizer struct {
	client *genai.Client
	model  string
	voice  string
}

// NewGeminiSynthesizer creates a Gemini TTS backend.
func NewGeminiSynthesizer(ctx context.Context, cfg GeminiConfig) (*GeminiSynthesizer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash-preview-tts"
	}
	if cfg.Voice == "" {
		cfg.Voice = "Kore"
	}
	return &GeminiSynthesizer{client: client, model: cfg.Model, voice: cfg.Voice}, nil
}

func (g *GeminiSynthesizer) Synthesize(ctx context.Context, text string) (*Audio, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: g.voice},
			},
		},
	}
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(text), config)
	if err != nil {
		return nil, fmt.Errorf("gemini tts: %w", err)
	}
	return audioFromResponse(result)
}

// audioFromResponse extracts the first inline audio part.
func audioFromResponse(result *genai.GenerateContentResponse) (*Audio, error) {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return nil, ErrNoAudio
	}
	for _, part := range result.Candidates[0].Content.Parts {
		if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
			continue
		}
		audio := NewAudio(decodeInline(part.InlineData.Data))
		if rate := sampleRateFromMIME(part.InlineData.MIMEType); rate > 0 {
			audio.SampleRate = rate
		}
		return audio, nil
	}
	return nil, ErrNoAudio
}

// decodeInline returns data decoded when it is base64 text, and data
// unchanged when it is already raw PCM.
func decodeInline(data []byte) []byte {
	if len(data)%4 != 0 {
		return data
	}
	for _, c := range data {
		if !isBase64Char(c) {
			return data
		}
	}
	decoded, err := base64.StdEncoding.DecodeString(string(data))
	if err != nil {
		return data
	}
	return decoded
}

func isBase64Char(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '+' || c == '/' || c == '='
}

// sampleRateFromMIME parses "audio/L16;codec=pcm;rate=24000".
func sampleRateFromMIME(mime string) int {
	for _, param := range strings.Split(mime, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(param), "=")
		if !ok || k != "rate" {
			continue
		}
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}
