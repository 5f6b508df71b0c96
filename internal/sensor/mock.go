package sensor

import (
	"context"
	"sync"
)

// MockDriver はテスト用のDriver実装
// 失敗回数やペイロードをフィールドで差し替えて挙動を制御する
type MockDriver struct {
	mu sync.Mutex

	// DetectFailures は最初のN回のDetect呼び出しを失敗させる
	DetectFailures int
	// DetectStatus は失敗時にStatusErrorへ載せるステータスコード
	DetectStatus int

	PrepareBusErr   error
	ApplyProfileErr error
	CaptureErr      error

	// CapturePayload はCapture成功時にバッファへ書き込むデータ
	CapturePayload []byte

	prepareBusCalls   int
	detectCalls       int
	applyProfileCalls int
	captureCalls      int

	appliedSettings Settings
}

func (m *MockDriver) PrepareBus(ctx context.Context, profile HardwareProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prepareBusCalls++
	return m.PrepareBusErr
}

func (m *MockDriver) Detect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.detectCalls++
	if m.detectCalls <= m.DetectFailures {
		return &StatusError{Code: m.DetectStatus}
	}
	return nil
}

func (m *MockDriver) ApplyProfile(ctx context.Context, profile HardwareProfile, settings Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.applyProfileCalls++
	m.appliedSettings = settings
	return m.ApplyProfileErr
}

func (m *MockDriver) Capture(ctx context.Context, buf []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.captureCalls++
	if m.CaptureErr != nil {
		return 0, m.CaptureErr
	}
	if len(m.CapturePayload) > len(buf) {
		return 0, ErrFrameTooLarge
	}
	return copy(buf, m.CapturePayload), nil
}

// DetectCalls はDetectが呼ばれた回数を返す
func (m *MockDriver) DetectCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.detectCalls
}

// CaptureCalls はCaptureが呼ばれた回数を返す
func (m *MockDriver) CaptureCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.captureCalls
}

// AppliedSettings は最後にApplyProfileへ渡された設定を返す
func (m *MockDriver) AppliedSettings() Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.appliedSettings
}
