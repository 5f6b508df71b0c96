// Package server は、スナップショット配信のHTTPサーバーを管理します。
//
// このパッケージは、HTTPサーバーの起動、唯一のルート GET /capture の
// 処理、グレースフルシャットダウンを担当します。
//
// 責務:
//   - HTTPサーバーの起動と管理
//   - GET /capture リクエストの処理（フレーム借り出し→送信→返却）
//   - 取得失敗の500応答への変換
//   - シグナル受信時のグレースフルシャットダウン
//
// 仕様:
//   - ルーティングはgin + OpenAPI定義から生成したグルーコードを使用
//   - 提供するルートは GET /capture の1本のみ。他のパスは404
//   - 200応答には Refresh: 3 と Cache-Control: no-cache を付与
//   - フレームは送信完了後に必ず1回だけプールへ返却される
package server
