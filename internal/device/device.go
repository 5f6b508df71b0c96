package device

import (
	"context"
	"log"
	"os"
	"sync"
	"time"

	"ichimai/internal/config"
	"ichimai/internal/network"
	"ichimai/internal/sensor"
	"ichimai/internal/server"
	"ichimai/internal/supervisor"
)

// Phase は起動シーケンス上の位置を表す
type Phase int

const (
	// PhaseBoot は起動直後を表す
	PhaseBoot Phase = iota
	// PhaseSensorInitializing はセンサー立ち上げ中を表す
	PhaseSensorInitializing
	// PhaseWiFiConnecting はネットワーク接続中を表す
	PhaseWiFiConnecting
	// PhaseServingReady は配信中を表す
	PhaseServingReady
	// PhaseRestarting は再起動待機中を表す
	PhaseRestarting
)

// String はPhaseの文字列表現を返す
func (p Phase) String() string {
	switch p {
	case PhaseBoot:
		return "boot"
	case PhaseSensorInitializing:
		return "sensor_initializing"
	case PhaseWiFiConnecting:
		return "wifi_connecting"
	case PhaseServingReady:
		return "serving_ready"
	case PhaseRestarting:
		return "restarting"
	default:
		return "unknown"
	}
}

// RestartDelay は致命失敗からプロセス終了までの待機時間
const RestartDelay = 1 * time.Second

// Device は起動から配信までのライフサイクルを駆動する
type Device struct {
	config *config.Config

	acquisition  *sensor.Acquisition
	connectivity *network.Connectivity
	state        *supervisor.State
	loop         *supervisor.Loop
	server       *server.Server

	mu    sync.RWMutex
	phase Phase

	sleep func(time.Duration)
	exit  func(int)
}

// New は実機構成のDeviceを組み立てる
func New(cfg *config.Config) *Device {
	return NewWithDrivers(cfg,
		sensor.NewV4L2Driver(cfg.Sensor.Device),
		network.NewNMCLIBackend(cfg.Network.Interface),
	)
}

// NewWithDrivers は低レベルアクセスの実装を差し替えてDeviceを組み立てる
func NewWithDrivers(cfg *config.Config, driver sensor.Driver, backend network.Backend) *Device {
	acquisition := sensor.NewAcquisition(cfg.Sensor, driver)
	connectivity := network.NewConnectivity(cfg.Network, backend)
	state := supervisor.NewState()

	var beacon supervisor.Beacon = supervisor.NullBeacon{}
	if cfg.Supervisor.LEDPath != "" {
		beacon = supervisor.NewLEDBeacon(cfg.Supervisor.LEDPath)
	}

	return &Device{
		config:       cfg,
		acquisition:  acquisition,
		connectivity: connectivity,
		state:        state,
		loop:         supervisor.NewLoop(cfg.Supervisor, connectivity, beacon, state),
		server:       server.New(cfg, server.NewCaptureHandler(acquisition, state)),
		phase:        PhaseBoot,
		sleep:        time.Sleep,
		exit:         os.Exit,
	}
}

// Run は起動シーケンスを実行し、配信状態に入ってから停止まで面倒を見る
// 初期化段階の失敗は致命であり、restart経由でプロセス再起動に委ねる
func (d *Device) Run(ctx context.Context) error {
	d.setPhase(PhaseBoot)
	log.Printf("起動セッション %s (解像度%s, 品質%d)",
		d.state.BootID(), d.config.Sensor.Resolution(), d.config.Sensor.Quality)

	d.setPhase(PhaseSensorInitializing)
	if err := d.acquisition.Initialize(ctx); err != nil {
		log.Printf("センサー初期化に失敗: %v", err)
		d.restart()
		return err
	}

	d.setPhase(PhaseWiFiConnecting)
	if err := d.connectivity.Connect(ctx); err != nil {
		log.Printf("ネットワーク接続に失敗: %v", err)
		d.restart()
		return err
	}

	d.setPhase(PhaseServingReady)
	log.Printf("配信準備完了: http://%s:%d/capture",
		d.connectivity.Address(), d.config.Server.Port)

	// 監視ループはサーバーと併走し、サーバー停止と同時に止める
	loopCtx, cancelLoop := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		d.loop.Run(loopCtx)
	}()

	err := d.server.Start(ctx)

	cancelLoop()
	wg.Wait()
	d.connectivity.Wait()

	return err
}

// Phase は現在のフェーズを返す
func (d *Device) Phase() Phase {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.phase
}

func (d *Device) setPhase(p Phase) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.phase = p
}

// restart は致命的な失敗からの回復として全体再起動に委ねる
// 自力修復はせず、短い待機の後にプロセスを終了する
func (d *Device) restart() {
	d.setPhase(PhaseRestarting)
	log.Printf("%v後にデバイスを再起動します", RestartDelay)
	d.sleep(RestartDelay)
	d.exit(1)
}
