package supervisor

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type mockChecker struct {
	mu    sync.Mutex
	calls int
}

func (m *mockChecker) CheckHealth() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
}

func (m *mockChecker) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type recordingBeacon struct {
	mu     sync.Mutex
	levels []bool
}

func (b *recordingBeacon) Set(on bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.levels = append(b.levels, on)
	return nil
}

func (b *recordingBeacon) Levels() []bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]bool(nil), b.levels...)
}

// TestLoopCadence は仮想クロックで5秒強を回し、
// ヘルスチェックとハートビートの発火回数を検証する
func TestLoopCadence(t *testing.T) {
	checker := &mockChecker{}
	beacon := &recordingBeacon{}
	state := NewState()

	loop := NewLoop(DefaultConfig(), checker, beacon, state)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	current := start
	loop.now = func() time.Time { return current }
	loop.sleep = func(d time.Duration) {
		current = current.Add(d)
		if current.Sub(start) > 5*time.Second+100*time.Millisecond {
			cancel()
		}
	}

	loop.Run(ctx)

	// ヘルスチェックは t=0 と t=5s の2回
	if got := checker.Calls(); got != 2 {
		t.Errorf("ヘルスチェック回数 = %d, want 2", got)
	}

	// ハートビートは t=0,1,2,3,4,5s の6回、最後に停止時の消灯が1回
	levels := beacon.Levels()
	if len(levels) != 7 {
		t.Fatalf("ハートビート書き込み回数 = %d, want 7", len(levels))
	}

	// トグル分はレベルが毎回反転していること
	for i := 1; i < 6; i++ {
		if levels[i] == levels[i-1] {
			t.Errorf("レベルが反転していない: levels[%d]=%v, levels[%d]=%v",
				i-1, levels[i-1], i, levels[i])
		}
	}

	if levels[6] {
		t.Error("停止時に消灯されていない")
	}
}

func TestLoopStopsOnContextCancel(t *testing.T) {
	checker := &mockChecker{}
	beacon := &recordingBeacon{}
	loop := NewLoop(DefaultConfig(), checker, beacon, NewState())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ループが停止しない")
	}

	if got := checker.Calls(); got != 0 {
		t.Errorf("停止済みコンテキストでヘルスチェックが実行された: %d回", got)
	}

	if levels := beacon.Levels(); len(levels) != 1 || levels[0] {
		t.Errorf("停止時の消灯書き込み = %v, want [false]", levels)
	}
}

func TestLoopConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"既定設定は妥当", func(c *Config) {}, false},
		{"ヘルスチェック間隔0は不正", func(c *Config) { c.HealthInterval = 0 }, true},
		{"ハートビート間隔0は不正", func(c *Config) { c.HeartbeatInterval = 0 }, true},
		{"イールド間隔0は不正", func(c *Config) { c.YieldInterval = 0 }, true},
		{"LEDパス空は許容", func(c *Config) { c.LEDPath = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.modify(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLEDBeacon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brightness")
	beacon := NewLEDBeacon(path)

	if err := beacon.Set(true); err != nil {
		t.Fatalf("Set(true) error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("輝度ファイルの読み込みに失敗: %v", err)
	}
	if string(data) != "1" {
		t.Errorf("点灯時の書き込み = %q, want %q", data, "1")
	}

	if err := beacon.Set(false); err != nil {
		t.Fatalf("Set(false) error = %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "0" {
		t.Errorf("消灯時の書き込み = %q, want %q", data, "0")
	}
}

func TestNullBeacon(t *testing.T) {
	if err := (NullBeacon{}).Set(true); err != nil {
		t.Errorf("NullBeacon.Set() error = %v", err)
	}
}
