package sensor

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// Source は取得側へ公開するフレーム借り出しの抽象
type Source interface {
	Acquire(ctx context.Context) (*FrameHandle, error)
}

// Acquisition はセンサー初期化とフレームバッファプールを管理する
type Acquisition struct {
	config Config
	driver Driver

	mu          sync.RWMutex
	initialized bool

	// 空きバッファのプール。容量がそのまま同時貸し出しの上限になる
	slots chan []byte

	sleep func(time.Duration)
}

// NewAcquisition は新しいAcquisitionを作成する
func NewAcquisition(config Config, driver Driver) *Acquisition {
	return &Acquisition{
		config: config,
		driver: driver,
		sleep:  time.Sleep,
	}
}

// Initialize はセンサーを検出して撮影可能な状態に引き上げる
// 検出はInitRetries回まで再試行し、全て失敗した場合はErrInitFailedを返す
// ドライバー呼び出しは1回ごとにDetectTimeoutで打ち切られ、
// 応答しないデバイスが立ち上げを固めることはない
func (a *Acquisition) Initialize(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.initialized {
		return nil
	}

	if err := a.config.Profile.Validate(); err != nil {
		return fmt.Errorf("ハードウェアプロファイルが不正: %w", err)
	}

	// バス準備の失敗は致命傷ではない。カーネルドライバーが
	// 既に線を握っている環境では検出だけで十分なため続行する
	busCtx, cancelBus := context.WithTimeout(ctx, a.config.DetectTimeout)
	if err := a.driver.PrepareBus(busCtx, a.config.Profile); err != nil {
		log.Printf("制御バス準備をスキップ: %v", err)
	}
	cancelBus()

	a.sleep(a.config.SettleDelay)

	var detectErr error
	for attempt := 1; attempt <= a.config.InitRetries; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, a.config.DetectTimeout)
		detectErr = a.driver.Detect(attemptCtx)
		cancel()
		if detectErr == nil {
			break
		}
		log.Printf("センサー検出に失敗 (試行 %d/%d): %v", attempt, a.config.InitRetries, detectErr)
		if attempt < a.config.InitRetries {
			a.sleep(a.config.RetryBackoff)
		}
	}
	if detectErr != nil {
		return fmt.Errorf("センサー初期化に失敗 (%d回試行): %w", a.config.InitRetries, ErrInitFailed)
	}

	// 設定適用の失敗はドライバー既定値での撮影に切り替えて続行する
	settings := Settings{
		Width:   a.config.Width,
		Height:  a.config.Height,
		Quality: a.config.Quality,
	}
	applyCtx, cancelApply := context.WithTimeout(ctx, a.config.DetectTimeout)
	if err := a.driver.ApplyProfile(applyCtx, a.config.Profile, settings); err != nil {
		log.Printf("センサー設定の適用に失敗、既定値で続行: %v", err)
	}
	cancelApply()

	a.slots = make(chan []byte, a.config.PoolDepth)
	for i := 0; i < a.config.PoolDepth; i++ {
		a.slots <- make([]byte, a.config.BufferSize)
	}

	a.initialized = true
	log.Printf("センサー初期化完了: %s (%dx%d, 品質%d, プール%d面)",
		a.config.Device, a.config.Width, a.config.Height, a.config.Quality, a.config.PoolDepth)

	return nil
}

// Acquire はプールからバッファを借り出して1フレームをキャプチャする
// 空きバッファが無い場合は待たずにCaptureErrorを返す
func (a *Acquisition) Acquire(ctx context.Context) (*FrameHandle, error) {
	a.mu.RLock()
	initialized := a.initialized
	slots := a.slots
	a.mu.RUnlock()

	if !initialized {
		return nil, ErrNotInitialized
	}

	var buf []byte
	select {
	case buf = <-slots:
	default:
		return nil, &CaptureError{Cause: ErrPoolExhausted}
	}

	n, err := a.driver.Capture(ctx, buf)
	if err != nil {
		slots <- buf
		return nil, &CaptureError{Cause: err}
	}

	return &FrameHandle{
		buf: buf,
		n:   n,
		release: func(b []byte) {
			slots <- b
		},
	}, nil
}
