package network

import (
	"testing"
	"time"
)

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateDisconnected, "disconnected"},
		{StateConnecting, "connecting"},
		{StateConnected, "connected"},
		{StateLost, "lost"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestNetworkConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "妥当な設定",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "パスワード空は許容（オープンネットワーク）",
			modify:  func(c *Config) { c.Password = "" },
			wantErr: false,
		},
		{
			name:    "SSID空は不正",
			modify:  func(c *Config) { c.SSID = "" },
			wantErr: true,
		},
		{
			name:    "インターフェース名空は不正",
			modify:  func(c *Config) { c.Interface = "" },
			wantErr: true,
		},
		{
			name:    "接続タイムアウト0は不正",
			modify:  func(c *Config) { c.ConnectTimeout = 0 },
			wantErr: true,
		},
		{
			name:    "ポーリング間隔0は不正",
			modify:  func(c *Config) { c.PollInterval = 0 },
			wantErr: true,
		},
		{
			name:    "ヘルスチェック上限0は不正",
			modify:  func(c *Config) { c.CheckTimeout = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Config{
				SSID:           "test-ap",
				Password:       "test-pass",
				Interface:      "wlan0",
				ConnectTimeout: 30 * time.Second,
				PollInterval:   500 * time.Millisecond,
				CheckTimeout:   5 * time.Second,
			}
			tt.modify(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
