// Package sensor は直結イメージセンサーのライフサイクルとフレーム取得を担う
//
// # 責務
// - センサーの立ち上げ（制御バス準備・セトリング待機・リトライ付き検出）
// - ハードウェアプロファイル（ピン配置・クロック・ピクセルフォーマット）の適用
// - フレームバッファプールの管理（チェックアウト／返却）
// - 取得失敗の分類（プール枯渇・センサー障害・フレーム未準備）
//
// # 使い分け
// このパッケージは以下の場合に使用する：
// - センサーを起動時に初期化したい（失敗時はリトライ、限度超過で致命扱い）
// - リクエスト毎に1枚のJPEGフレームを借り出したい
// - 借り出したフレームを確実に1回だけ返却したい
//
// # 仕様
// - Driver: 低レベルアクセスの抽象。実機はV4L2Driver、テストはMockDriver
// - Acquisition: 立ち上げリトライとプール管理の統合
// - FrameHandle: 単回返却が構造上保証される借用ハンドル
// - プールは固定深度。枯渇時は待たずにCaptureErrorを返す
//
// # 前提要件（V4L2Driver使用時）
//   - v4l-utils: センサー検出とレジスタ設定に使用
//     Ubuntu/Debian: sudo apt install v4l-utils
//   - ffmpeg: JPEGフレームのキャプチャに使用
//     Ubuntu/Debian: sudo apt install ffmpeg
//   - gpiod: 制御バスのプルアップ設定に使用（任意）
//     Ubuntu/Debian: sudo apt install gpiod
package sensor
