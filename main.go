package main

import (
	"context"
	"log"

	"ichimai/internal/config"
	"ichimai/internal/device"
)

func main() {
	// 設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// デバイスを組み立てる
	dev := device.New(cfg)

	// コンテキストを作成
	ctx := context.Background()

	// 起動シーケンスを実行し、配信状態で停止まで待つ
	if err := dev.Run(ctx); err != nil {
		log.Fatalf("デバイスの実行に失敗しました: %v", err)
	}
}
