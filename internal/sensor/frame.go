package sensor

import "sync"

// FrameHandle はプールから借り出した1フレーム分のバッファへのハンドル
// 利用後は必ずRelease()を呼んでバッファをプールに返却する必要がある
type FrameHandle struct {
	buf     []byte
	n       int
	release func([]byte)
	once    sync.Once
}

// Data はJPEGデータ部分のスライスを返す
// Release()呼び出し後のアクセスは不正
func (f *FrameHandle) Data() []byte {
	return f.buf[:f.n]
}

// Len はJPEGデータのバイト数を返す
func (f *FrameHandle) Len() int {
	return f.n
}

// Release はバッファをプールに返却する
// 複数回呼んでも返却は一度だけ行われる
func (f *FrameHandle) Release() {
	f.once.Do(func() {
		if f.release != nil {
			f.release(f.buf)
		}
	})
}
