package server

import (
	"log"
	"net/http"
	"time"

	"ichimai/internal/sensor"
	"ichimai/internal/supervisor"

	"github.com/gin-gonic/gin"
)

// captureFailedBody は取得失敗時にクライアントへ返す固定メッセージ
const captureFailedBody = "Camera capture failed"

// CaptureHandler は生成されたServerInterfaceを実装する
type CaptureHandler struct {
	source sensor.Source
	state  *supervisor.State
}

// NewCaptureHandler は新しいCaptureHandlerを作成する
func NewCaptureHandler(source sensor.Source, state *supervisor.State) *CaptureHandler {
	return &CaptureHandler{
		source: source,
		state:  state,
	}
}

// GetCapture はスナップショット取得エンドポイントの実装
func (h *CaptureHandler) GetCapture(c *gin.Context) {
	start := time.Now()

	frame, err := h.source.Acquire(c.Request.Context())
	if err != nil {
		// 失敗はこのリクエストに閉じる。何も借りていないので返却も無い
		log.Printf("フレーム取得に失敗: %v", err)
		c.String(http.StatusInternalServerError, captureFailedBody)
		return
	}
	// 送信完了までバッファを保持し、どの経路でも必ず1回返却する
	defer frame.Release()

	// Refreshヘッダーで3秒後の再取得を指示する（ポーリング型の疑似ストリーミング）
	c.Header("Refresh", "3")
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "image/jpeg", frame.Data())

	h.state.RecordCapture(frame.Len())
	log.Printf("スナップショット送信: %dバイト (%v)", frame.Len(), time.Since(start))
}
