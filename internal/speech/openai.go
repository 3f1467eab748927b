package speech

import (
	"context"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIConfig configures the OpenAI TTS backend.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini-tts"
	Voice   string // Default: "alloy"
	BaseURL string
}

// OpenAISynthesizer implements Synthesizer with the OpenAI speech
// endpoint. It requests raw 24kHz 16-bit mono PCM.
type OpenAISynthesizer struct {
	client *openai.Client
	model  string
	voice  string
}

// NewOpenAISynthesizer creates an OpenAI TTS backend.
func NewOpenAISynthesizer(cfg OpenAIConfig) (*OpenAISynthesizer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini-tts"
	}
	if cfg.Voice == "" {
		cfg.Voice = "alloy"
	}
	return &OpenAISynthesizer{
		client: openai.NewClientWithConfig(config),
		model:  cfg.Model,
		voice:  cfg.Voice,
	}, nil
}

func (o *OpenAISynthesizer) Synthesize(ctx context.Context, text string) (*Audio, error) {
	resp, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(o.model),
		Input:          text,
		Voice:          openai.SpeechVoice(o.voice),
		ResponseFormat: openai.SpeechResponseFormatPcm,
	})
	if err != nil {
		return nil, fmt.Errorf("openai tts: %w", err)
	}
	defer resp.Close()

	pcm, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read openai audio: %w", err)
	}
	if len(pcm) == 0 {
		return nil, ErrNoAudio
	}
	return NewAudio(pcm), nil
}
