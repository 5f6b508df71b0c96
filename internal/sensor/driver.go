package sensor

import "context"

// Driver はセンサーへの低レベルアクセスを抽象化する
// 実機環境ではV4L2Driver、テストではMockDriverを使用する
type Driver interface {
	// PrepareBus は制御バスの2線に入力プルアップを設定する
	PrepareBus(ctx context.Context, profile HardwareProfile) error

	// Detect はセンサーの応答を確認する（立ち上げ1回分の試行）
	// 失敗時は可能ならStatusErrorでステータスコードを返す
	Detect(ctx context.Context) error

	// ApplyProfile はプロファイルと撮影設定をセンサーに適用する
	ApplyProfile(ctx context.Context, profile HardwareProfile, settings Settings) error

	// Capture は1フレームをJPEGとしてbufに書き込み、書き込んだバイト数を返す
	Capture(ctx context.Context, buf []byte) (int, error)
}
