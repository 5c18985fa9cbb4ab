package config

import (
	"fmt"
	"os"
)

type Config struct {
	Speech      SpeechConfig      `yaml:"speech"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Audio       AudioConfig       `yaml:"audio"`
	Limits      LimitsConfig      `yaml:"limits"`
	Languages   LanguagesConfig   `yaml:"languages"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type SpeechConfig struct {
	Endpoint             string `yaml:"endpoint"`
	APIToken             string `yaml:"api_token"`
	ASRServiceID         string `yaml:"asr_service_id"`
	TranslationServiceID string `yaml:"translation_service_id"`
	LangDetectServiceID  string `yaml:"lang_detect_service_id"`
	MaxRetries           int    `yaml:"max_retries"`
	TimeoutSeconds       int    `yaml:"timeout_seconds"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
	// BaseURL overrides the Gemini endpoint, used by tests.
	BaseURL string `yaml:"base_url"`
}

type AudioConfig struct {
	TargetSampleRate int    `yaml:"target_sample_rate"`
	ToleranceHz      int    `yaml:"tolerance_hz"`
	FFmpegPath       string `yaml:"ffmpeg_path"`
}

type LimitsConfig struct {
	MaxAudioMB int      `yaml:"max_audio_mb"`
	Formats    []string `yaml:"formats"`
}

// LanguagesConfig sets the language pair used for clips dropped into the
// inbox, where no caller supplies one.
type LanguagesConfig struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

type PathsConfig struct {
	Inbox  string `yaml:"inbox"`
	Output string `yaml:"output"`
	Temp   string `yaml:"temp"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

func (c *Config) Validate() error {
	if c.Speech.Endpoint == "" {
		return fmt.Errorf("speech.endpoint is required")
	}
	if c.Speech.APIToken == "" {
		return fmt.Errorf("speech.api_token is required (or set BHASHINI_AUTH_TOKEN)")
	}
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("gemini.api_key is required (or set GEMINI_API_KEY)")
	}
	if c.Paths.Inbox == "" {
		return fmt.Errorf("paths.inbox is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}

	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Speech.ASRServiceID == "" {
		c.Speech.ASRServiceID = "bhashini/ai4bharat/conformer-multilingual-asr"
	}
	if c.Speech.TranslationServiceID == "" {
		c.Speech.TranslationServiceID = "ai4bharat/indictrans-v2-all-gpu--t4"
	}
	if c.Speech.LangDetectServiceID == "" {
		c.Speech.LangDetectServiceID = "bhashini/iitmandi/audio-lang-detection/gpu"
	}
	if c.Speech.MaxRetries == 0 {
		c.Speech.MaxRetries = 3
	}
	if c.Speech.TimeoutSeconds == 0 {
		c.Speech.TimeoutSeconds = 120
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.0-flash"
	}
	if c.Audio.TargetSampleRate == 0 {
		c.Audio.TargetSampleRate = 16000
	}
	if c.Audio.ToleranceHz == 0 {
		c.Audio.ToleranceHz = 1000
	}
	if c.Audio.FFmpegPath == "" {
		c.Audio.FFmpegPath = "ffmpeg"
	}
	if c.Limits.MaxAudioMB == 0 {
		c.Limits.MaxAudioMB = 50
	}
	if len(c.Limits.Formats) == 0 {
		c.Limits.Formats = []string{"wav", "mp3", "flac", "m4a", "ogg"}
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Languages.Source == "" {
		c.Languages.Source = "hi"
	}
	if c.Languages.Target == "" {
		c.Languages.Target = "en"
	}

	return nil
}

// applyEnv overlays credentials from the environment so tokens never have to
// live in the yaml file. Order for the speech token follows the upstream docs.
func (c *Config) applyEnv() {
	if c.Speech.APIToken == "" {
		for _, key := range []string{"BHASHINI_AUTH_TOKEN", "ULCA_API_KEY", "BHASHINI_API_KEY"} {
			if v := os.Getenv(key); v != "" {
				c.Speech.APIToken = v
				break
			}
		}
	}
	if c.Gemini.APIKey == "" {
		c.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}
}
