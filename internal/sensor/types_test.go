package sensor

import (
	"errors"
	"testing"
)

func TestHardwareProfileValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*HardwareProfile)
		wantErr bool
	}{
		{
			name:    "既定プロファイルは妥当",
			modify:  func(p *HardwareProfile) {},
			wantErr: false,
		},
		{
			name:    "クロック0は不正",
			modify:  func(p *HardwareProfile) { p.ClockHz = 0 },
			wantErr: true,
		},
		{
			name:    "JPEG以外のフォーマットは不正",
			modify:  func(p *HardwareProfile) { p.Format = PixelFormat("yuv422") },
			wantErr: true,
		},
		{
			name:    "制御線の重複は不正",
			modify:  func(p *HardwareProfile) { p.SCL = p.SDA },
			wantErr: true,
		},
		{
			name:    "データ線と同期線の重複は不正",
			modify:  func(p *HardwareProfile) { p.VSync = p.Data[0] },
			wantErr: true,
		},
		{
			name:    "リセット線は未配線(-1)を許容",
			modify:  func(p *HardwareProfile) { p.Reset = -1 },
			wantErr: false,
		},
		{
			name:    "負のデータ線は不正",
			modify:  func(p *HardwareProfile) { p.Data[3] = -2 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultProfile()
			tt.modify(&p)
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "既定設定は妥当",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "デバイスパス空は不正",
			modify:  func(c *Config) { c.Device = "" },
			wantErr: true,
		},
		{
			name:    "品質下限割れは不正",
			modify:  func(c *Config) { c.Quality = 1 },
			wantErr: true,
		},
		{
			name:    "品質上限超えは不正",
			modify:  func(c *Config) { c.Quality = 32 },
			wantErr: true,
		},
		{
			name:    "プール0面は不正",
			modify:  func(c *Config) { c.PoolDepth = 0 },
			wantErr: true,
		},
		{
			name:    "バッファサイズ0は不正",
			modify:  func(c *Config) { c.BufferSize = 0 },
			wantErr: true,
		},
		{
			name:    "再試行0回は不正",
			modify:  func(c *Config) { c.InitRetries = 0 },
			wantErr: true,
		},
		{
			name:    "検出上限0は不正",
			modify:  func(c *Config) { c.DetectTimeout = 0 },
			wantErr: true,
		},
		{
			name:    "解像度0は不正",
			modify:  func(c *Config) { c.Width = 0 },
			wantErr: true,
		},
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

func TestStatusErrorFormat(t *testing.T) {
	err := &StatusError{Code: 0x26}
	if got := err.Error(); got != "センサーステータス 0x26" {
		t.Errorf("Error() = %q", got)
	}
}

func TestCaptureErrorUnwrap(t *testing.T) {
	cause := errors.New("capture failed")
	err := &CaptureError{Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("CaptureErrorは原因エラーをUnwrapできること")
	}
}

func TestResolution(t *testing.T) {
	c := DefaultConfig()
	if got := c.Resolution(); got != "1600x1200" {
		t.Errorf("Resolution() = %q, want %q", got, "1600x1200")
	}
}
