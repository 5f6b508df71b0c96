package network

import (
	"fmt"
	"time"
)

// State は無線接続の状態を表す
type State int

const (
	// StateDisconnected は未接続を表す
	StateDisconnected State = iota
	// StateConnecting はアソシエーション進行中を表す
	StateConnecting
	// StateConnected は接続確立済みを表す
	StateConnected
	// StateLost は確立後の切断検出を表す
	StateLost
)

// String はStateの文字列表現を返す
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Config はネットワーク関連の設定
type Config struct {
	SSID      string `yaml:"ssid"`      // 接続先アクセスポイント
	Password  string `yaml:"password"`  // 接続パスワード（オープンネットワークは空）
	Interface string `yaml:"interface"` // 無線インターフェース名

	ConnectTimeout time.Duration `yaml:"connect_timeout"` // 初回接続の全体タイムアウト
	PollInterval   time.Duration `yaml:"poll_interval"`   // 接続待ちのポーリング間隔
	CheckTimeout   time.Duration `yaml:"check_timeout"`   // ヘルスチェック1回の上限
}

// DefaultConfig はデフォルトのネットワーク設定を返す
func DefaultConfig() Config {
	return Config{
		Interface:      "wlan0",
		ConnectTimeout: 30 * time.Second,
		PollInterval:   500 * time.Millisecond,
		CheckTimeout:   time.Second, // ハートビート周期を超えて監視ループを塞がない
	}
}

// Validate は設定の妥当性を検証する
func (c Config) Validate() error {
	if c.SSID == "" {
		return fmt.Errorf("SSIDが設定されていません")
	}
	if c.Interface == "" {
		return fmt.Errorf("無線インターフェース名が設定されていません")
	}
	if c.ConnectTimeout <= 0 {
		return fmt.Errorf("無効な接続タイムアウト: %v", c.ConnectTimeout)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("無効なポーリング間隔: %v", c.PollInterval)
	}
	if c.CheckTimeout <= 0 {
		return fmt.Errorf("無効なヘルスチェック上限: %v", c.CheckTimeout)
	}
	return nil
}
