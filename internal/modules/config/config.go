package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"relay_bot/pkg/logger"

	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	tokenTelegramENV  = "TELEGRAM_TOKEN"
	chatIDTelegramENV = "TELEGRAM_CHAT_ID"
	liveConfigENV     = "LIVE_CONFIG_FILE"
)

// Config ...
type Config struct {
	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`

	// Live trading config of the host bot; the path is fixed at process
	// start and /reload_config always re-reads this same file.
	LiveConfigPath string `yaml:"live_config_path"`

	// Minimum interval between accepted /reload_config attempts.
	// Env-only (RELOAD_COOLDOWN), defaults to 5m.
	ReloadCooldown time.Duration `yaml:"-"`

	Service struct {
		Host      string `yaml:"host"`
		AdminPort int    `yaml:"admin_port"`
	} `yaml:"service"`

	Jaeger struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"jaeger"`

	Log logger.Config `yaml:"log"`

	// Mark-price stream for the paper facade.
	Market struct {
		Symbol string `yaml:"symbol"`
		WSURL  string `yaml:"ws_url"`
	} `yaml:"market"`
}

func NewConfig() (*Config, error) {

	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = "values_local.yaml"
	}
	file, err := os.Open("configs/" + configFileName)
	if err != nil {
		log.Fatalf("Failed to open config file: %v", err)
	}

	defer func() {
		_ = file.Close()
	}()

	decoder := yaml.NewDecoder(file)
	config := Config{
		ReloadCooldown: durationFromEnv("RELOAD_COOLDOWN", "5m"),
	}
	config.Market.Symbol = "btcusdt"
	config.Market.WSURL = "wss://fstream.binance.com/ws"

	err = decoder.Decode(&config)
	if err != nil {
		log.Fatalf("Failed to decode config file: %v", err)
	}

	token := os.Getenv(tokenTelegramENV)
	if token != "" {
		config.Telegram.Token = token
	}

	if chatID := int64FromEnv(chatIDTelegramENV, 0); chatID != 0 {
		config.Telegram.ChatID = chatID
	}

	livePath := os.Getenv(liveConfigENV)
	if livePath != "" {
		config.LiveConfigPath = livePath
	}

	if sym := os.Getenv("MARKET_SYMBOL"); sym != "" {
		config.Market.Symbol = sym
	}
	if url := os.Getenv("MARKET_WS_URL"); url != "" {
		config.Market.WSURL = url
	}

	if config.ReloadCooldown <= 0 {
		config.ReloadCooldown = 5 * time.Minute
	}

	return &config, nil
}

func int64FromEnv(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationFromEnv(key, def string) time.Duration {
	val := getenvDefault(key, def)
	d, err := time.ParseDuration(val)
	if err != nil {
		d, _ = time.ParseDuration(def)
	}
	return d
}
