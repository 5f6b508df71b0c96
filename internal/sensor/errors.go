package sensor

import (
	"errors"
	"fmt"
)

var (
	// ErrInitFailed は立ち上げの試行回数を使い切ったことを表す
	ErrInitFailed = errors.New("センサー初期化の試行回数を超過")
	// ErrNotInitialized は初期化前のフレーム取得を表す
	ErrNotInitialized = errors.New("センサーが初期化されていません")
	// ErrPoolExhausted はプールに空きバッファがないことを表す
	ErrPoolExhausted = errors.New("フレームバッファプールが枯渇")
	// ErrFrameTooLarge はフレームがバッファ容量を超えたことを表す
	ErrFrameTooLarge = errors.New("フレームがバッファ容量を超過")
)

// StatusError は低レベル検出が返したステータスコードを保持する
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("センサーステータス 0x%x", e.Code)
}

// CaptureError は1回のフレーム取得要求の失敗を表す
// 取得の失敗はそのリクエストに閉じ、サービス全体には波及しない
type CaptureError struct {
	Cause error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("フレーム取得に失敗: %v", e.Cause)
}

func (e *CaptureError) Unwrap() error {
	return e.Cause
}
