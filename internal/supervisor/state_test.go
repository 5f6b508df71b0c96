package supervisor

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestStateBootSession(t *testing.T) {
	s := NewState()

	if s.BootID() == uuid.Nil {
		t.Error("起動セッションIDが採番されていない")
	}
	if s.StartedAt().IsZero() {
		t.Error("起動時刻が記録されていない")
	}

	// セッションIDは起動ごとに異なること
	if NewState().BootID() == s.BootID() {
		t.Error("起動セッションIDが重複している")
	}
}

func TestStateToggleHeartbeat(t *testing.T) {
	s := NewState()
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	if got := s.ToggleHeartbeat(at); got != true {
		t.Errorf("1回目のToggleHeartbeat() = %v, want true", got)
	}
	if got := s.ToggleHeartbeat(at.Add(time.Second)); got != false {
		t.Errorf("2回目のToggleHeartbeat() = %v, want false", got)
	}

	last, level := s.LastHeartbeat()
	if !last.Equal(at.Add(time.Second)) {
		t.Errorf("LastHeartbeat()の時刻 = %v", last)
	}
	if level != false {
		t.Errorf("LastHeartbeat()のレベル = %v, want false", level)
	}
}

func TestStateRecordCapture(t *testing.T) {
	s := NewState()

	if got := s.CaptureCount(); got != 0 {
		t.Errorf("初期のCaptureCount() = %d, want 0", got)
	}

	s.RecordCapture(5000)
	s.RecordCapture(4096)

	if got := s.CaptureCount(); got != 2 {
		t.Errorf("CaptureCount() = %d, want 2", got)
	}

	at, bytes := s.LastCapture()
	if bytes != 4096 {
		t.Errorf("LastCapture()のバイト数 = %d, want 4096", bytes)
	}
	if at.IsZero() {
		t.Error("LastCapture()の時刻が記録されていない")
	}
}

func TestStateRecordHealthCheck(t *testing.T) {
	s := NewState()
	at := time.Date(2024, 1, 1, 0, 0, 5, 0, time.UTC)

	s.RecordHealthCheck(at)

	if got := s.LastHealthCheck(); !got.Equal(at) {
		t.Errorf("LastHealthCheck() = %v, want %v", got, at)
	}
}
