package supervisor

import (
	"fmt"
	"os"
)

// Beacon は死活表示の出力先を抽象化する
type Beacon interface {
	// Set は表示レベルを設定する（true=点灯）
	Set(on bool) error
}

// LEDBeacon はsysfs経由でLEDの輝度を操作するBeacon実装
// path には /sys/class/leds/<name>/brightness を指定する
type LEDBeacon struct {
	path string
}

// NewLEDBeacon は新しいLEDBeaconを作成する
func NewLEDBeacon(path string) *LEDBeacon {
	return &LEDBeacon{path: path}
}

func (b *LEDBeacon) Set(on bool) error {
	value := "0"
	if on {
		value = "1"
	}
	if err := os.WriteFile(b.path, []byte(value), 0644); err != nil {
		return fmt.Errorf("LED輝度の書き込みに失敗: %w", err)
	}
	return nil
}

// NullBeacon は出力を捨てるBeacon実装
// LEDが配線されていない環境で使用する
type NullBeacon struct{}

func (NullBeacon) Set(on bool) error {
	return nil
}
