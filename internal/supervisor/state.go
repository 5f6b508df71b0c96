package supervisor

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// State は監視ループが所有する実行時状態
// 再起動で失われる揮発性のカウンターのみを持ち、永続化はしない
type State struct {
	mu sync.RWMutex

	bootID    uuid.UUID
	startedAt time.Time

	lastHeartbeat  time.Time
	heartbeatLevel bool

	lastHealthCheck time.Time

	lastCaptureAt    time.Time
	lastCaptureBytes int
	captureCount     uint64
}

// NewState は起動セッションIDを採番した新しいStateを作成する
func NewState() *State {
	return &State{
		bootID:    uuid.New(),
		startedAt: time.Now(),
	}
}

// BootID は起動セッションIDを返す
func (s *State) BootID() uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bootID
}

// StartedAt はプロセス起動時刻を返す
func (s *State) StartedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.startedAt
}

// ToggleHeartbeat は死活表示レベルを反転して新しいレベルを返す
func (s *State) ToggleHeartbeat(at time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.heartbeatLevel = !s.heartbeatLevel
	s.lastHeartbeat = at
	return s.heartbeatLevel
}

// LastHeartbeat は最終ハートビート時刻と現在のレベルを返す
func (s *State) LastHeartbeat() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastHeartbeat, s.heartbeatLevel
}

// RecordHealthCheck はヘルスチェックの実施時刻を記録する
func (s *State) RecordHealthCheck(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastHealthCheck = at
}

// LastHealthCheck は最終ヘルスチェック時刻を返す
func (s *State) LastHealthCheck() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastHealthCheck
}

// RecordCapture は撮影1回分の統計を記録する
func (s *State) RecordCapture(bytes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastCaptureAt = time.Now()
	s.lastCaptureBytes = bytes
	s.captureCount++
}

// LastCapture は最終撮影の時刻とバイト数を返す
func (s *State) LastCapture() (time.Time, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastCaptureAt, s.lastCaptureBytes
}

// CaptureCount は起動からの撮影成功回数を返す
func (s *State) CaptureCount() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.captureCount
}
