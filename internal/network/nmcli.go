package network

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// NMCLIBackend はnmcliコマンド経由で無線スタックを操作するBackend実装
type NMCLIBackend struct {
	iface string
}

// NewNMCLIBackend は新しいNMCLIBackendを作成する
func NewNMCLIBackend(iface string) *NMCLIBackend {
	if iface == "" {
		iface = "wlan0"
	}
	return &NMCLIBackend{iface: iface}
}

// Associate はアクセスポイントへの接続を開始する
// -w 0 で完了を待たずに戻り、進捗はStatusのポーリングで確認する
func (b *NMCLIBackend) Associate(ctx context.Context, ssid, password string) error {
	args := []string{"-w", "0", "device", "wifi", "connect", ssid, "ifname", b.iface}
	if password != "" {
		args = append(args, "password", password)
	}

	cmd := exec.CommandContext(ctx, "nmcli", args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("アソシエーション開始に失敗: %w (stderr: %s)", err, stderr.String())
	}

	return nil
}

// Status はインターフェースの接続状態を返す
func (b *NMCLIBackend) Status(ctx context.Context) (bool, error) {
	cmd := exec.CommandContext(ctx, "nmcli", "-t", "-f", "DEVICE,STATE", "device", "status")

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		return false, fmt.Errorf("ステータス取得に失敗: %w", err)
	}

	// 出力は "wlan0:connected" 形式の行
	for _, line := range strings.Split(stdout.String(), "\n") {
		parts := strings.SplitN(strings.TrimSpace(line), ":", 2)
		if len(parts) != 2 {
			continue
		}
		if parts[0] == b.iface {
			return parts[1] == "connected", nil
		}
	}

	return false, fmt.Errorf("インターフェースが見つかりません: %s", b.iface)
}

// Address はインターフェースのIPv4アドレスを返す
func (b *NMCLIBackend) Address(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, "nmcli", "-t", "-f", "IP4.ADDRESS", "device", "show", b.iface)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("アドレス取得に失敗: %w", err)
	}

	// 出力は "IP4.ADDRESS[1]:192.168.1.10/24" 形式の行
	for _, line := range strings.Split(stdout.String(), "\n") {
		parts := strings.SplitN(strings.TrimSpace(line), ":", 2)
		if len(parts) != 2 || parts[1] == "" {
			continue
		}
		addr := parts[1]
		if idx := strings.Index(addr, "/"); idx >= 0 {
			addr = addr[:idx]
		}
		return addr, nil
	}

	return "", fmt.Errorf("IPv4アドレスが割り当てられていません: %s", b.iface)
}

// Reassociate は既存プロファイルでの再接続を開始する
func (b *NMCLIBackend) Reassociate(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, "nmcli", "-w", "0", "device", "connect", b.iface)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("再接続開始に失敗: %w (stderr: %s)", err, stderr.String())
	}

	return nil
}
