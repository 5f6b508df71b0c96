// Package supervisor は接続監視と死活表示を駆動する協調ループを担う
//
// # 責務
// - 一定間隔（既定5秒）でのネットワークヘルスチェックの起動
// - 一定間隔（既定1秒）での死活表示（LED）のトグル
// - 稼働状態（起動時刻・最終ハートビート・撮影統計）の一元保持
//
// # 仕様
// - Loop: 単一ゴルーチンの協調ループ。各周回で経過時間を判定して
//   短いイールドを挟む。どのステップも長くブロックしない
// - State: ループが所有する実行時状態。撮影側からは記録用メソッド
//   経由でのみ書き込まれる
// - Beacon: 死活表示の出力先。実機はsysfs LED、未配線環境はNullBeacon
package supervisor
