package sensor

import (
	"fmt"
	"time"
)

// PixelFormat はセンサーの出力フォーマットを表す
type PixelFormat string

const (
	// FormatJPEG はセンサー内蔵エンコーダーによる圧縮出力を表す
	FormatJPEG PixelFormat = "jpeg"
)

// HardwareProfile はセンサーモジュールの静的なハードウェア構成
// 初期化時に一度だけ適用され、プロセス生存中は不変
type HardwareProfile struct {
	// 制御バス（SCCB）の2線
	SDA int `yaml:"sda"` // データ線
	SCL int `yaml:"scl"` // クロック線

	// 電源・クロック系（PowerとResetは-1で未配線）
	Power int `yaml:"power"` // パワーダウン制御
	Reset int `yaml:"reset"` // ハードウェアリセット
	XClk  int `yaml:"xclk"`  // 外部クロック供給

	// 画素データバス
	Data  [8]int `yaml:"data"`  // パラレルデータ線 D0-D7
	VSync int    `yaml:"vsync"` // 垂直同期
	HRef  int    `yaml:"href"`  // 水平有効区間
	PClk  int    `yaml:"pclk"`  // ピクセルクロック

	ClockHz int         `yaml:"clock_hz"` // 供給クロック周波数
	Format  PixelFormat `yaml:"format"`   // 出力フォーマット
}

// DefaultProfile は一般的なDVPカメラモジュールのピン配置を返す
func DefaultProfile() HardwareProfile {
	return HardwareProfile{
		SDA:     26,
		SCL:     27,
		Power:   32,
		Reset:   -1, // リセット線は基板上で固定
		XClk:    0,
		Data:    [8]int{5, 18, 19, 21, 36, 39, 34, 35},
		VSync:   25,
		HRef:    23,
		PClk:    22,
		ClockHz: 20_000_000,
		Format:  FormatJPEG,
	}
}

// Validate はプロファイルの妥当性を検証する
// 必須ピンの重複とクロック周波数をチェックする
func (p HardwareProfile) Validate() error {
	if p.ClockHz <= 0 {
		return fmt.Errorf("無効なクロック周波数: %d", p.ClockHz)
	}

	if p.Format != FormatJPEG {
		return fmt.Errorf("サポートされていないピクセルフォーマット: %s", p.Format)
	}

	// 必須ピンを集める（-1 の任意ピンは対象外）
	pins := []int{p.SDA, p.SCL, p.XClk, p.VSync, p.HRef, p.PClk}
	for _, d := range p.Data {
		pins = append(pins, d)
	}
	if p.Power >= 0 {
		pins = append(pins, p.Power)
	}
	if p.Reset >= 0 {
		pins = append(pins, p.Reset)
	}

	seen := make(map[int]bool, len(pins))
	for _, pin := range pins {
		if pin < 0 {
			return fmt.Errorf("無効なピン番号: %d", pin)
		}
		if seen[pin] {
			return fmt.Errorf("ピン番号が重複しています: %d", pin)
		}
		seen[pin] = true
	}

	return nil
}

// Settings はセンサーに適用する撮影設定を表す
type Settings struct {
	Width   int // 画像幅
	Height  int // 画像高さ
	Quality int // JPEG品質（2-31、小さいほど高品質）
}

// Config はセンサー関連の設定
type Config struct {
	Device     string `yaml:"device"`      // デバイスパス (例: /dev/video0)
	Width      int    `yaml:"width"`       // 画像幅
	Height     int    `yaml:"height"`      // 画像高さ
	Quality    int    `yaml:"quality"`     // JPEG品質 (2-31)
	PoolDepth  int    `yaml:"pool_depth"`  // フレームバッファプールの深さ
	BufferSize int    `yaml:"buffer_size"` // 1バッファの容量（バイト）

	// 立ち上げ関連
	SettleDelay   time.Duration `yaml:"settle_delay"`   // バス準備後のセトリング待機
	InitRetries   int           `yaml:"init_retries"`   // 検出の最大試行回数
	RetryBackoff  time.Duration `yaml:"retry_backoff"`  // 試行間の待機
	DetectTimeout time.Duration `yaml:"detect_timeout"` // 立ち上げ時ドライバー呼び出し1回の上限

	Profile HardwareProfile `yaml:"profile"` // ハードウェアプロファイル
}

// DefaultConfig はデフォルトのセンサー設定を返す
func DefaultConfig() Config {
	return Config{
		Device:        "/dev/video0",
		Width:         1600,
		Height:        1200,
		Quality:       4,
		PoolDepth:     2,
		BufferSize:    512 << 10, // JPEG1枚分として十分な512KiB
		SettleDelay:   500 * time.Millisecond,
		InitRetries:   5,
		RetryBackoff:  1 * time.Second,
		DetectTimeout: 5 * time.Second,
		Profile:       DefaultProfile(),
	}
}

// Validate は設定の妥当性を検証する
func (c Config) Validate() error {
	if c.Device == "" {
		return fmt.Errorf("デバイスパスが設定されていません")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("無効な解像度: %dx%d", c.Width, c.Height)
	}
	if c.Quality < 2 || c.Quality > 31 {
		return fmt.Errorf("無効なJPEG品質: %d", c.Quality)
	}
	if c.PoolDepth < 1 {
		return fmt.Errorf("無効なプール深度: %d", c.PoolDepth)
	}
	if c.BufferSize <= 0 {
		return fmt.Errorf("無効なバッファ容量: %d", c.BufferSize)
	}
	if c.InitRetries < 1 {
		return fmt.Errorf("無効な試行回数: %d", c.InitRetries)
	}
	if c.SettleDelay < 0 || c.RetryBackoff < 0 {
		return fmt.Errorf("待機時間が負の値です")
	}
	if c.DetectTimeout <= 0 {
		return fmt.Errorf("無効な検出上限: %v", c.DetectTimeout)
	}

	if err := c.Profile.Validate(); err != nil {
		return fmt.Errorf("プロファイルの検証に失敗: %w", err)
	}

	return nil
}

// Resolution は設定解像度を "幅x高さ" 形式で返す
func (c Config) Resolution() string {
	return fmt.Sprintf("%dx%d", c.Width, c.Height)
}
