package network

import (
	"context"
	"sync"
	"time"
)

// MockBackend はテスト用のBackend実装
type MockBackend struct {
	mu sync.Mutex

	// Connected はStatusが返すリンク状態
	Connected bool
	// ConnectAfterPolls が正の場合、その回数のStatus呼び出し後に接続済みへ切り替える
	ConnectAfterPolls int
	// ReassociateRestores はReassociate成功時にリンクを復活させる
	ReassociateRestores bool
	// ReassociateDelay はReassociateの処理時間をシミュレートする
	ReassociateDelay time.Duration

	AssociateErr   error
	StatusErr      error
	AddressErr     error
	ReassociateErr error

	AddressValue string

	associateCalls   int
	statusCalls      int
	reassociateCalls int
}

func (m *MockBackend) Associate(ctx context.Context, ssid, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.associateCalls++
	return m.AssociateErr
}

func (m *MockBackend) Status(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statusCalls++
	if m.StatusErr != nil {
		return false, m.StatusErr
	}
	if m.ConnectAfterPolls > 0 && m.statusCalls > m.ConnectAfterPolls {
		m.Connected = true
	}
	return m.Connected, nil
}

func (m *MockBackend) Address(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AddressErr != nil {
		return "", m.AddressErr
	}
	return m.AddressValue, nil
}

func (m *MockBackend) Reassociate(ctx context.Context) error {
	m.mu.Lock()
	delay := m.ReassociateDelay
	m.reassociateCalls++
	m.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReassociateErr != nil {
		return m.ReassociateErr
	}
	if m.ReassociateRestores {
		m.Connected = true
	}
	return nil
}

// SetConnected はリンク状態を直接書き換える
func (m *MockBackend) SetConnected(connected bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Connected = connected
}

// StatusCalls はStatusが呼ばれた回数を返す
func (m *MockBackend) StatusCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.statusCalls
}

// ReassociateCalls はReassociateが呼ばれた回数を返す
func (m *MockBackend) ReassociateCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reassociateCalls
}
