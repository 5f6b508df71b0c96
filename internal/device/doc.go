// Package device は起動から配信までのライフサイクル全体を駆動する
//
// # 責務
// - 起動シーケンス（センサー初期化 → ネットワーク接続 → 配信開始）の実行
// - 配信状態でのHTTPサーバーと監視ループの併走
// - 致命的な失敗からのクラッシュオンリー回復（プロセス再起動への委譲）
//
// # 仕様
// - 初期化時の失敗だけが致命となる。配信中の取得失敗は各リクエストに閉じる
// - 致命失敗時は短い待機の後にプロセスを終了し、プロセススーパーバイザ
//   （systemd等のRestart設定）による再起動で復帰する。部分修復はしない
package device
