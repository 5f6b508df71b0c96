// Package main はichimaiサーバーコマンドの実装です
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"ichimai/internal/config"
	"ichimai/internal/device"
)

func main() {
	// コマンドラインオプション
	var (
		host       = flag.String("host", "", "サーバーのホスト (デフォルト: 0.0.0.0)")
		port       = flag.Int("port", 0, "サーバーのポート (デフォルト: 8080)")
		configPath = flag.String("config", "", "設定ファイルのパス")
		help       = flag.Bool("help", false, "ヘルプを表示")
	)

	flag.Parse()

	// ヘルプ表示
	if *help {
		fmt.Println("Ichimai")
		fmt.Println()
		fmt.Println("使用方法:")
		fmt.Println("  server [オプション]")
		fmt.Println()
		fmt.Println("オプション:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	// -config は環境変数ICHIMAI_CONFIGより優先される
	if *configPath != "" {
		if err := os.Setenv("ICHIMAI_CONFIG", *configPath); err != nil {
			log.Fatalf("設定パスの指定に失敗しました: %v", err)
		}
	}

	// 設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// コマンドラインオプションで設定を上書き
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// デバイスを組み立てる
	dev := device.New(cfg)

	// コンテキストを作成
	ctx := context.Background()

	// 起動シーケンスを実行し、配信状態で停止まで待つ
	log.Printf("Ichimai サーバーを起動します: %s", cfg.ServerAddress())
	if err := dev.Run(ctx); err != nil {
		log.Fatalf("デバイスの実行に失敗しました: %v", err)
	}
}
