package util

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const Name = "admintui"
const ConfigFileName = "config.yaml"

//go:embed config_default.yaml
var embeddedConfig []byte

type AppConfig struct {
	Conf struct {
		ApiUrl            string `yaml:"apiUrl"`
		RequestTimeoutSec int    `yaml:"requestTimeoutSec"`
		PollIntervalSec   int    `yaml:"pollIntervalSec"`
		MockPort          int    `yaml:"mockPort"`
		WithJournald      bool   `yaml:"withJournald"`
		SoundDefault      bool   `yaml:"soundDefault"`
	}
}

// RequestTimeout is the shared timeout applied to every API round-trip.
func (c *AppConfig) RequestTimeout() time.Duration {
	return time.Duration(c.Conf.RequestTimeoutSec) * time.Second
}

// PollInterval is the notification badge refresh interval.
func (c *AppConfig) PollInterval() time.Duration {
	return time.Duration(c.Conf.PollIntervalSec) * time.Second
}

func ReadConf() (*AppConfig, error) {

	c := &AppConfig{}

	// Try to resolve config file path (local first, then user dir)
	configPath := ResolveFilePath(ConfigFileName)

	buf, err := os.ReadFile(configPath)
	if err != nil {
		// If file doesn't exist, use embedded config and create user config file
		log.Printf("Config file not found at %s, using embedded defaults", configPath)
		buf = embeddedConfig

		configDir, dirErr := GetConfigDir()
		if dirErr == nil {
			userConfigPath := configDir + "/" + ConfigFileName
			writeErr := os.WriteFile(userConfigPath, embeddedConfig, 0644)
			if writeErr != nil {
				log.Printf("Warning: could not write default config to %s: %v", userConfigPath, writeErr)
			} else {
				log.Printf("Created default config file at %s", userConfigPath)
			}
		}
	}

	err = yaml.Unmarshal(buf, c)
	if err != nil {
		return nil, fmt.Errorf("in config file: %w", err)
	}

	envApiUrl := os.Getenv("TAPSORAN_API_URL")
	envTimeout := os.Getenv("TAPSORAN_REQUEST_TIMEOUT_SEC")
	envPollInterval := os.Getenv("TAPSORAN_POLL_INTERVAL_SEC")
	envMockPort := os.Getenv("TAPSORAN_MOCK_PORT")
	envWithJournald := os.Getenv("TAPSORAN_WITH_JOURNALD")
	envSoundDefault := os.Getenv("TAPSORAN_SOUND_DEFAULT")

	if envApiUrl != "" {
		c.Conf.ApiUrl = envApiUrl
	}

	if envTimeout != "" {
		v, err := strconv.Atoi(envTimeout)
		if err != nil {
			log.Printf("Error parsing TAPSORAN_REQUEST_TIMEOUT_SEC: %v", err)
		} else {
			c.Conf.RequestTimeoutSec = v
		}
	}

	if envPollInterval != "" {
		v, err := strconv.Atoi(envPollInterval)
		if err != nil {
			log.Printf("Error parsing TAPSORAN_POLL_INTERVAL_SEC: %v", err)
		} else {
			c.Conf.PollIntervalSec = v
		}
	}

	if envMockPort != "" {
		v, err := strconv.Atoi(envMockPort)
		if err != nil {
			log.Printf("Error parsing TAPSORAN_MOCK_PORT: %v", err)
		} else {
			c.Conf.MockPort = v
		}
	}

	if envWithJournald == "true" {
		c.Conf.WithJournald = true
	}

	if envSoundDefault == "true" {
		c.Conf.SoundDefault = true
	}

	// Defaults for values missing from both config and environment
	if c.Conf.ApiUrl == "" {
		c.Conf.ApiUrl = "http://localhost:4000"
	}
	if c.Conf.RequestTimeoutSec <= 0 {
		c.Conf.RequestTimeoutSec = 15
	}
	if c.Conf.PollIntervalSec <= 0 {
		c.Conf.PollIntervalSec = 20
	}
	if c.Conf.MockPort <= 0 {
		c.Conf.MockPort = 4000
	}

	return c, nil
}
