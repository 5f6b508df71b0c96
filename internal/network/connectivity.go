package network

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// ErrAssociationTimeout は接続タイムアウト内にConnectedへ到達しなかったことを表す
var ErrAssociationTimeout = errors.New("アソシエーションがタイムアウト")

// Connectivity は接続状態セルの単一書き込み手
// 状態遷移はこの型のメソッドだけが行い、他からはスナップショットで読む
type Connectivity struct {
	config  Config
	backend Backend

	mu           sync.RWMutex
	state        State
	since        time.Time
	address      string
	reconnecting bool

	// 再接続ゴルーチンの完了待ち（テストと停止処理用）
	reconnectWG sync.WaitGroup

	now   func() time.Time
	sleep func(time.Duration)
}

// NewConnectivity は新しいConnectivityを作成する
func NewConnectivity(config Config, backend Backend) *Connectivity {
	return &Connectivity{
		config:  config,
		backend: backend,
		state:   StateDisconnected,
		now:     time.Now,
		sleep:   time.Sleep,
	}
}

// Connect はアソシエーションを開始してConnectedへの到達を待つ
// ConnectTimeout内に到達しない場合はErrAssociationTimeoutを返す
// バックエンド呼び出しにも同じ締切が課され、応答しない子プロセスに塞がれない
// この失敗は致命であり、呼び出し元がデバイス再起動で回復する
func (c *Connectivity) Connect(ctx context.Context) error {
	c.transition(StateConnecting)
	log.Printf("WiFi接続を開始: SSID=%s", c.config.SSID)

	pollCtx, cancel := context.WithTimeout(ctx, c.config.ConnectTimeout)
	defer cancel()

	if err := c.backend.Associate(pollCtx, c.config.SSID, c.config.Password); err != nil {
		c.transition(StateDisconnected)
		return fmt.Errorf("WiFi接続に失敗: %w", err)
	}

	deadline := c.now().Add(c.config.ConnectTimeout)
	for {
		connected, err := c.backend.Status(pollCtx)
		if err == nil && connected {
			addr, addrErr := c.backend.Address(pollCtx)
			if addrErr != nil {
				log.Printf("アドレス取得に失敗: %v", addrErr)
				addr = "unknown"
			}
			c.setAddress(addr)
			c.transition(StateConnected)
			log.Printf("WiFi接続完了: %s", addr)
			return nil
		}

		if !c.now().Before(deadline) {
			c.transition(StateDisconnected)
			return fmt.Errorf("WiFi接続が%vを超過: %w", c.config.ConnectTimeout, ErrAssociationTimeout)
		}

		log.Println("WiFi接続待機中...")
		c.sleep(c.config.PollInterval)
	}
}

// CheckHealth は現在の接続状態を点検する
// 未接続を検出するとLostへ遷移し、完了を待たずに再接続を要求する
// 点検自体もCheckTimeoutで上限され、監視ループを長時間塞がない
func (c *Connectivity) CheckHealth() {
	ctx, cancel := context.WithTimeout(context.Background(), c.config.CheckTimeout)
	defer cancel()

	connected, err := c.backend.Status(ctx)
	if err == nil && connected {
		// 再接続が実ってリンクが戻った場合はここでConnectedに復帰する
		if state, _ := c.State(); state != StateConnected {
			c.transition(StateConnected)
			log.Println("WiFi接続が回復しました")
		}
		return
	}

	if state, _ := c.State(); state != StateLost {
		c.transition(StateLost)
		log.Printf("WiFi接続が失われました (ステータス確認: connected=%v, err=%v)", connected, err)
	}

	c.requestReconnect()
}

// requestReconnect はバックグラウンドでの再接続を開始する
// 進行中の再接続がある場合は何もしない（単一飛行）
func (c *Connectivity) requestReconnect() {
	c.mu.Lock()
	if c.reconnecting {
		c.mu.Unlock()
		return
	}
	c.reconnecting = true
	c.mu.Unlock()

	c.reconnectWG.Add(1)
	go func() {
		defer c.reconnectWG.Done()
		defer func() {
			c.mu.Lock()
			c.reconnecting = false
			c.mu.Unlock()
		}()

		ctx, cancel := context.WithTimeout(context.Background(), c.config.ConnectTimeout)
		defer cancel()

		if err := c.backend.Reassociate(ctx); err != nil {
			log.Printf("WiFi再接続の開始に失敗: %v", err)
			return
		}
		log.Println("WiFi再接続を要求しました")
	}()
}

// State は現在の状態と最終遷移時刻のスナップショットを返す
func (c *Connectivity) State() (State, time.Time) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state, c.since
}

// Address は接続完了時に取得したIPv4アドレスを返す
func (c *Connectivity) Address() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.address
}

// Wait は進行中の再接続ゴルーチンの完了を待つ
func (c *Connectivity) Wait() {
	c.reconnectWG.Wait()
}

func (c *Connectivity) transition(s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == s {
		return
	}
	c.state = s
	c.since = c.now()
}

func (c *Connectivity) setAddress(addr string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.address = addr
}
