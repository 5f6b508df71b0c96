// Package network は無線ネットワークへのアソシエーションと接続維持を担う
//
// # 責務
// - タイムアウト付きの初回接続（500ms間隔のステータスポーリング）
// - 接続状態（Disconnected/Connecting/Connected/Lost）の一元管理
// - 定期ヘルスチェックと切断検出時の非同期再接続
//
// # 使い分け
// このパッケージは以下の場合に使用する：
// - 起動時にアクセスポイントへ接続し、失敗を致命として呼び出し元へ返したい
// - 監視ループから呼び出し元をブロックせずに接続を点検したい
//
// # 仕様
// - Backend: 無線スタックへの低レベルアクセスの抽象。実機はNMCLIBackend
// - Connectivity: 状態セルの単一書き込み手。読み手はスナップショットを取得する
// - 再接続は単一飛行。進行中の再接続があれば新しい要求は無視される
//
// # 前提要件（NMCLIBackend使用時）
//   - NetworkManager (nmcli): 接続操作とステータス取得に使用
//     Ubuntu/Debian: sudo apt install network-manager
package network
