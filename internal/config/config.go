package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"heart-triage-agent/internal/agent"
	"heart-triage-agent/internal/triage"
)

type Config struct {
	Port     string
	LogLevel string

	ECGMode     agent.ECGMode
	Seed        uint64
	ProfilePath string

	TelegramToken string
	DoctorChatID  int64
	FontPath      string
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load reads all env vars and builds the config
func Load() (*Config, error) {
	mode, err := agent.ParseECGMode(getEnv("TRIAGE_ECG_MODE", string(agent.ECGModeCoupled)))
	if err != nil {
		return nil, fmt.Errorf("TRIAGE_ECG_MODE: %w", err)
	}

	seed, err := strconv.ParseUint(getEnv("TRIAGE_SEED", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("TRIAGE_SEED: %w", err)
	}

	chatID, err := strconv.ParseInt(getEnv("DOCTOR_CHAT_ID", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("DOCTOR_CHAT_ID: %w", err)
	}

	return &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		ECGMode:     mode,
		Seed:        seed,
		ProfilePath: getEnv("TRIAGE_PATIENT_PROFILE", ""),

		TelegramToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		DoctorChatID:  chatID,
		FontPath:      getEnv("REPORT_FONT_PATH", ""),
	}, nil
}

// ReportsEnabled reports whether triage reports should be sent to Telegram.
func (c *Config) ReportsEnabled() bool {
	return c.TelegramToken != "" && c.DoctorChatID != 0
}

// LoadPatient reads a YAML patient profile. An empty path yields the demo profile.
func LoadPatient(path string) (triage.Patient, error) {
	if path == "" {
		return triage.DemoPatient(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return triage.Patient{}, fmt.Errorf("read patient profile: %w", err)
	}
	var p triage.Patient
	if err := yaml.Unmarshal(data, &p); err != nil {
		return triage.Patient{}, fmt.Errorf("parse patient profile %s: %w", path, err)
	}
	return p, nil
}
