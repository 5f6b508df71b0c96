package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"ichimai/internal/network"
	"ichimai/internal/sensor"
	"ichimai/internal/supervisor"
)

// Config はアプリケーション全体の設定を保持する構造体
type Config struct {
	Server     ServerConfig      `yaml:"server"`
	Sensor     sensor.Config     `yaml:"sensor"`
	Network    network.Config    `yaml:"network"`
	Supervisor supervisor.Config `yaml:"supervisor"`
}

// ServerConfig はHTTPサーバーの設定
type ServerConfig struct {
	Host string `yaml:"host"` // リッスンするホスト
	Port int    `yaml:"port"` // リッスンするポート番号

	// タイムアウト設定
	ReadTimeout  time.Duration `yaml:"read_timeout"`  // 読み込みタイムアウト
	WriteTimeout time.Duration `yaml:"write_timeout"` // 書き込みタイムアウト
}

// Load は設定を読み込む
// デフォルト値 → 設定ファイル（ICHIMAI_CONFIG） → 環境変数 の順で上書きする
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 0, // フレーム送信を途中で打ち切らない
		},
		Sensor:     sensor.DefaultConfig(),
		Network:    network.DefaultConfig(),
		Supervisor: supervisor.DefaultConfig(),
	}

	// 開発用の既定クレデンシャル。実機では環境変数か設定ファイルで上書きする
	cfg.Network.SSID = "ichimai-ap"
	cfg.Network.Password = "ichimai-pass"

	if path := os.Getenv("ICHIMAI_CONFIG"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	// 設定の検証
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}

	return cfg, nil
}

// fileConfig は設定ファイルの形
// 時間の項目はミリ秒の整数で指定する
type fileConfig struct {
	Server struct {
		Host           string `yaml:"host"`
		Port           int    `yaml:"port"`
		ReadTimeoutMs  int    `yaml:"read_timeout_ms"`
		WriteTimeoutMs int    `yaml:"write_timeout_ms"`
	} `yaml:"server"`
	Sensor struct {
		Device          string `yaml:"device"`
		Width           int    `yaml:"width"`
		Height          int    `yaml:"height"`
		Quality         int    `yaml:"quality"`
		PoolDepth       int    `yaml:"pool_depth"`
		BufferSize      int    `yaml:"buffer_size"`
		SettleDelayMs   int    `yaml:"settle_delay_ms"`
		InitRetries     int    `yaml:"init_retries"`
		RetryBackoffMs  int    `yaml:"retry_backoff_ms"`
		DetectTimeoutMs int    `yaml:"detect_timeout_ms"`

		Profile *sensor.HardwareProfile `yaml:"profile"`
	} `yaml:"sensor"`
	Network struct {
		SSID             string `yaml:"ssid"`
		Password         string `yaml:"password"`
		Interface        string `yaml:"interface"`
		ConnectTimeoutMs int    `yaml:"connect_timeout_ms"`
		PollIntervalMs   int    `yaml:"poll_interval_ms"`
		CheckTimeoutMs   int    `yaml:"check_timeout_ms"`
	} `yaml:"network"`
	Supervisor struct {
		HealthIntervalMs    int    `yaml:"health_interval_ms"`
		HeartbeatIntervalMs int    `yaml:"heartbeat_interval_ms"`
		YieldIntervalMs     int    `yaml:"yield_interval_ms"`
		LEDPath             string `yaml:"led_path"`
	} `yaml:"supervisor"`
}

// applyFile は設定ファイルで指定された項目だけを上書きする
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("設定ファイルの読み込みに失敗: %w", err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("設定ファイルの解析に失敗: %w", err)
	}

	if file.Server.Host != "" {
		c.Server.Host = file.Server.Host
	}
	if file.Server.Port != 0 {
		c.Server.Port = file.Server.Port
	}
	if file.Server.ReadTimeoutMs != 0 {
		c.Server.ReadTimeout = time.Duration(file.Server.ReadTimeoutMs) * time.Millisecond
	}
	if file.Server.WriteTimeoutMs != 0 {
		c.Server.WriteTimeout = time.Duration(file.Server.WriteTimeoutMs) * time.Millisecond
	}

	if file.Sensor.Device != "" {
		c.Sensor.Device = file.Sensor.Device
	}
	if file.Sensor.Width != 0 {
		c.Sensor.Width = file.Sensor.Width
	}
	if file.Sensor.Height != 0 {
		c.Sensor.Height = file.Sensor.Height
	}
	if file.Sensor.Quality != 0 {
		c.Sensor.Quality = file.Sensor.Quality
	}
	if file.Sensor.PoolDepth != 0 {
		c.Sensor.PoolDepth = file.Sensor.PoolDepth
	}
	if file.Sensor.BufferSize != 0 {
		c.Sensor.BufferSize = file.Sensor.BufferSize
	}
	if file.Sensor.SettleDelayMs != 0 {
		c.Sensor.SettleDelay = time.Duration(file.Sensor.SettleDelayMs) * time.Millisecond
	}
	if file.Sensor.InitRetries != 0 {
		c.Sensor.InitRetries = file.Sensor.InitRetries
	}
	if file.Sensor.RetryBackoffMs != 0 {
		c.Sensor.RetryBackoff = time.Duration(file.Sensor.RetryBackoffMs) * time.Millisecond
	}
	if file.Sensor.DetectTimeoutMs != 0 {
		c.Sensor.DetectTimeout = time.Duration(file.Sensor.DetectTimeoutMs) * time.Millisecond
	}
	if file.Sensor.Profile != nil {
		c.Sensor.Profile = *file.Sensor.Profile
	}

	if file.Network.SSID != "" {
		c.Network.SSID = file.Network.SSID
	}
	if file.Network.Password != "" {
		c.Network.Password = file.Network.Password
	}
	if file.Network.Interface != "" {
		c.Network.Interface = file.Network.Interface
	}
	if file.Network.ConnectTimeoutMs != 0 {
		c.Network.ConnectTimeout = time.Duration(file.Network.ConnectTimeoutMs) * time.Millisecond
	}
	if file.Network.PollIntervalMs != 0 {
		c.Network.PollInterval = time.Duration(file.Network.PollIntervalMs) * time.Millisecond
	}
	if file.Network.CheckTimeoutMs != 0 {
		c.Network.CheckTimeout = time.Duration(file.Network.CheckTimeoutMs) * time.Millisecond
	}

	if file.Supervisor.HealthIntervalMs != 0 {
		c.Supervisor.HealthInterval = time.Duration(file.Supervisor.HealthIntervalMs) * time.Millisecond
	}
	if file.Supervisor.HeartbeatIntervalMs != 0 {
		c.Supervisor.HeartbeatInterval = time.Duration(file.Supervisor.HeartbeatIntervalMs) * time.Millisecond
	}
	if file.Supervisor.YieldIntervalMs != 0 {
		c.Supervisor.YieldInterval = time.Duration(file.Supervisor.YieldIntervalMs) * time.Millisecond
	}
	if file.Supervisor.LEDPath != "" {
		c.Supervisor.LEDPath = file.Supervisor.LEDPath
	}

	return nil
}

// applyEnv は環境変数で指定された項目を上書きする
func (c *Config) applyEnv() {
	c.Server.Host = getEnvOrDefault("SERVER_HOST", c.Server.Host)
	c.Server.Port = getEnvAsIntOrDefault("PORT", c.Server.Port)
	c.Sensor.Device = getEnvOrDefault("SENSOR_DEVICE", c.Sensor.Device)
	c.Network.SSID = getEnvOrDefault("WIFI_SSID", c.Network.SSID)
	c.Network.Password = getEnvOrDefault("WIFI_PASSWORD", c.Network.Password)
	c.Network.Interface = getEnvOrDefault("WIFI_INTERFACE", c.Network.Interface)
	c.Supervisor.LEDPath = getEnvOrDefault("ICHIMAI_LED", c.Supervisor.LEDPath)
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	// サーバー設定の検証
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("無効なポート番号: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return fmt.Errorf("サーバータイムアウトが負の値です")
	}

	if err := c.Sensor.Validate(); err != nil {
		return fmt.Errorf("センサー設定が不正: %w", err)
	}
	if err := c.Network.Validate(); err != nil {
		return fmt.Errorf("ネットワーク設定が不正: %w", err)
	}
	if err := c.Supervisor.Validate(); err != nil {
		return fmt.Errorf("監視設定が不正: %w", err)
	}

	return nil
}

// ServerAddress はサーバーのリッスンアドレスを返す
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// getEnvOrDefault は環境変数を取得し、設定されていない場合はデフォルト値を返す
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault は環境変数を整数として取得し、設定されていない場合はデフォルト値を返す
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intVal int
		if _, err := fmt.Sscanf(value, "%d", &intVal); err == nil {
			return intVal
		}
	}
	return defaultValue
}
