package supervisor

import (
	"context"
	"fmt"
	"log"
	"time"
)

// HealthChecker はネットワーク接続の点検への依存を抽象化する
type HealthChecker interface {
	CheckHealth()
}

// Config は監視ループの設定
type Config struct {
	HealthInterval    time.Duration `yaml:"health_interval"`    // ヘルスチェックの間隔
	HeartbeatInterval time.Duration `yaml:"heartbeat_interval"` // 死活表示トグルの間隔
	YieldInterval     time.Duration `yaml:"yield_interval"`     // 各周回のイールド
	LEDPath           string        `yaml:"led_path"`           // 死活表示LEDのsysfsパス（空で無効）
}

// DefaultConfig はデフォルトの監視ループ設定を返す
func DefaultConfig() Config {
	return Config{
		HealthInterval:    5 * time.Second,
		HeartbeatInterval: 1 * time.Second,
		YieldInterval:     2 * time.Millisecond,
	}
}

// Validate は設定の妥当性を検証する
func (c Config) Validate() error {
	if c.HealthInterval <= 0 {
		return fmt.Errorf("無効なヘルスチェック間隔: %v", c.HealthInterval)
	}
	if c.HeartbeatInterval <= 0 {
		return fmt.Errorf("無効なハートビート間隔: %v", c.HeartbeatInterval)
	}
	if c.YieldInterval <= 0 {
		return fmt.Errorf("無効なイールド間隔: %v", c.YieldInterval)
	}
	return nil
}

// Loop は接続監視と死活表示を1本のゴルーチンで駆動する協調ループ
type Loop struct {
	config  Config
	checker HealthChecker
	beacon  Beacon
	state   *State

	now   func() time.Time
	sleep func(time.Duration)
}

// NewLoop は新しいLoopを作成する
func NewLoop(config Config, checker HealthChecker, beacon Beacon, state *State) *Loop {
	return &Loop{
		config:  config,
		checker: checker,
		beacon:  beacon,
		state:   state,
		now:     time.Now,
		sleep:   time.Sleep,
	}
}

// Run はコンテキストが終わるまでループを回す
// 各周回は経過時間の判定と短いイールドだけで、長時間ブロックしない
func (l *Loop) Run(ctx context.Context) {
	log.Printf("監視ループを開始: ヘルスチェック%v間隔, ハートビート%v間隔",
		l.config.HealthInterval, l.config.HeartbeatInterval)

	for {
		select {
		case <-ctx.Done():
			// 停止後にLEDを点灯したままにしない
			if err := l.beacon.Set(false); err != nil {
				log.Printf("死活表示の消灯に失敗: %v", err)
			}
			log.Println("監視ループを停止しました")
			return
		default:
		}

		now := l.now()

		if now.Sub(l.state.LastHealthCheck()) >= l.config.HealthInterval {
			l.state.RecordHealthCheck(now)
			l.checker.CheckHealth()
		}

		if last, _ := l.state.LastHeartbeat(); now.Sub(last) >= l.config.HeartbeatInterval {
			level := l.state.ToggleHeartbeat(now)
			if err := l.beacon.Set(level); err != nil {
				log.Printf("死活表示の更新に失敗: %v", err)
			}
		}

		l.sleep(l.config.YieldInterval)
	}
}
