package sensor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
)

// V4L2Driver はシェルコマンド経由で実センサーにアクセスするDriver実装
type V4L2Driver struct {
	devicePath string
	gpioChip   string
	quality    int
	width      int
	height     int
}

// NewV4L2Driver は新しいV4L2Driverを作成する
func NewV4L2Driver(devicePath string) *V4L2Driver {
	return &V4L2Driver{
		devicePath: devicePath,
		gpioChip:   "gpiochip0",
		quality:    4,
	}
}

// PrepareBus は制御バスの2線にプルアップを設定する
// gpiosetが存在しない環境ではカーネルドライバー側の配線に任せる
func (d *V4L2Driver) PrepareBus(ctx context.Context, profile HardwareProfile) error {
	if _, err := exec.LookPath("gpioset"); err != nil {
		return fmt.Errorf("gpiosetが見つかりません: %w", err)
	}

	cmd := exec.CommandContext(ctx,
		"gpioset",
		"--mode=exit",
		"--bias=pull-up",
		d.gpioChip,
		fmt.Sprintf("%d=1", profile.SDA),
		fmt.Sprintf("%d=1", profile.SCL),
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("制御バスのプルアップ設定に失敗: %w (stderr: %s)", err, stderr.String())
	}

	return nil
}

// Detect はv4l2-ctlでセンサーの応答を確認する
func (d *V4L2Driver) Detect(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, "v4l2-ctl", "--device", d.devicePath, "--info")

	if err := cmd.Run(); err != nil {
		// 終了コードをステータスコードとして保持する
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &StatusError{Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("センサー検出に失敗: %w", err)
	}

	return nil
}

// ApplyProfile は解像度とフォーマットをデバイスに適用する
// JPEG品質はキャプチャ時のエンコーダー引数として保持する
func (d *V4L2Driver) ApplyProfile(ctx context.Context, profile HardwareProfile, settings Settings) error {
	d.width = settings.Width
	d.height = settings.Height
	d.quality = settings.Quality

	cmd := exec.CommandContext(ctx,
		"v4l2-ctl",
		"--device", d.devicePath,
		"--set-fmt-video",
		fmt.Sprintf("width=%d,height=%d,pixelformat=MJPG", settings.Width, settings.Height),
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("フォーマット適用に失敗: %w (stderr: %s)", err, stderr.String())
	}

	return nil
}

// Capture は1フレームをJPEGとしてキャプチャしてbufに書き込む
func (d *V4L2Driver) Capture(ctx context.Context, buf []byte) (int, error) {
	cmd := exec.CommandContext(ctx,
		"ffmpeg",
		"-f", "v4l2",
		"-video_size", fmt.Sprintf("%dx%d", d.width, d.height),
		"-i", d.devicePath,
		"-vframes", "1",
		"-f", "image2",
		"-c:v", "mjpeg",
		"-q:v", strconv.Itoa(d.quality),
		"-",
	)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("JPEGフレームキャプチャに失敗: %w (stderr: %s)", err, stderr.String())
	}

	if stdout.Len() > len(buf) {
		return 0, ErrFrameTooLarge
	}

	return copy(buf, stdout.Bytes()), nil
}
