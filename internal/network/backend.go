package network

import "context"

// Backend は無線スタックへの低レベルアクセスを抽象化する
// 実機環境ではNMCLIBackend、テストではMockBackendを使用する
type Backend interface {
	// Associate は指定SSIDへの接続を開始する。完了は待たない
	Associate(ctx context.Context, ssid, password string) error

	// Status は現在リンクが確立しているかを返す
	Status(ctx context.Context) (bool, error)

	// Address は現在のIPv4アドレスを返す
	Address(ctx context.Context) (string, error)

	// Reassociate は既存の接続プロファイルで再接続を開始する。完了は待たない
	Reassociate(ctx context.Context) error
}
