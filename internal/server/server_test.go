package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"ichimai/internal/config"
	"ichimai/internal/network"
	"ichimai/internal/sensor"
	"ichimai/internal/supervisor"
)

// testServerConfig はテスト用のサーバー設定を作成する
func testServerConfig(port int) *config.Config {
	netCfg := network.DefaultConfig()
	netCfg.SSID = "test-ap"
	netCfg.Password = "test-pass"

	return &config.Config{
		Server: config.ServerConfig{
			Host:         "127.0.0.1",
			Port:         port,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
		Sensor:     sensor.DefaultConfig(),
		Network:    netCfg,
		Supervisor: supervisor.DefaultConfig(),
	}
}

// TestServerStartAndShutdown はサーバーの起動とシャットダウンをテストする
func TestServerStartAndShutdown(t *testing.T) {
	cfg := testServerConfig(0) // ランダムポートを使用

	handler := NewCaptureHandler(
		sensor.NewAcquisition(cfg.Sensor, &sensor.MockDriver{}),
		supervisor.NewState(),
	)
	srv := New(cfg, handler)

	// テスト用のコンテキスト（タイムアウト付き）
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// サーバーを別ゴルーチンで起動
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	// サーバーが起動するまで少し待つ
	time.Sleep(100 * time.Millisecond)

	// コンテキストをキャンセルしてサーバーを停止
	cancel()

	// エラーチャンネルから結果を受信
	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("サーバーの起動/停止でエラーが発生しました: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("サーバーの停止がタイムアウトしました")
	}
}

// TestServerEndpoints は実サーバー経由でエンドポイントをテストする
func TestServerEndpoints(t *testing.T) {
	cfg := testServerConfig(18081) // 固定ポートでテスト
	cfg.Sensor.SettleDelay = 0
	cfg.Sensor.RetryBackoff = 0

	driver := &sensor.MockDriver{CapturePayload: []byte("jpeg-frame-bytes")}
	source := sensor.NewAcquisition(cfg.Sensor, driver)
	if err := source.Initialize(context.Background()); err != nil {
		t.Fatalf("センサー初期化に失敗: %v", err)
	}

	srv := New(cfg, NewCaptureHandler(source, supervisor.NewState()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	// サーバーが起動するまで少し待つ
	time.Sleep(100 * time.Millisecond)

	base := fmt.Sprintf("http://127.0.0.1:%d", cfg.Server.Port)

	// スナップショット取得
	resp, err := http.Get(base + "/capture")
	if err != nil {
		t.Fatalf("GET /capture に失敗: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("ステータスコード = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if string(body) != "jpeg-frame-bytes" {
		t.Errorf("ボディ = %q, want %q", body, "jpeg-frame-bytes")
	}
	if got := resp.Header.Get("Refresh"); got != "3" {
		t.Errorf("Refresh = %q, want %q", got, "3")
	}

	// 唯一のルート以外は404
	resp, err = http.Get(base + "/health")
	if err != nil {
		t.Fatalf("GET /health に失敗: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET /health のステータスコード = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}

	// 停止
	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("サーバーの停止でエラーが発生しました: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("サーバーの停止がタイムアウトしました")
	}
}
