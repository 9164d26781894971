package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Interface compliance (compile-time assertions)
var _ Store = (*InMemoryStore)(nil)

func TestInMemoryStore_SaveGetIsolation(t *testing.T) {
	ctx := context.Background()
	svc := NewInMemoryStore()
	data := []byte("hello")
	require.NoError(t, svc.Save(ctx, "a1", data))

	// mutate original slice
	data[0] = 'H'
	out, err := svc.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out))

	// mutate returned slice
	out[0] = 'x'
	out2, _ := svc.Get(ctx, "a1")
	assert.Equal(t, "hello", string(out2))
}

func TestInMemoryStore_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := NewInMemoryStore()
	require.NoError(t, svc.Save(ctx, "run/b.jsonl", []byte("2")))
	require.NoError(t, svc.Save(ctx, "run/a.jsonl", []byte("1")))
	require.NoError(t, svc.Save(ctx, "other/c.jsonl", []byte("3")))

	ids, err := svc.List(ctx, "run/")
	require.NoError(t, err)
	assert.Equal(t, []string{"run/a.jsonl", "run/b.jsonl"}, ids)

	require.NoError(t, svc.Delete(ctx, "run/a.jsonl"))
	assert.ErrorIs(t, svc.Delete(ctx, "run/a.jsonl"), ErrNotFound)

	_, err = svc.Get(ctx, "run/a.jsonl")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInMemoryStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	svc := NewInMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = svc.Save(ctx, fmt.Sprintf("k%d", i), []byte("x"))
		}(i)
	}
	wg.Wait()
	ids, _ := svc.List(ctx, "")
	assert.Len(t, ids, 20)
}

func TestPublishDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "gpt-4o"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gpt-4o", "m.jsonl"), []byte("{}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "top.json"), []byte("[]"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "top.json.lock"), nil, 0o644))

	svc := NewInMemoryStore()
	keys, err := PublishDir(context.Background(), svc, dir, "bench/model_judgment")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"bench/model_judgment/gpt-4o/m.jsonl", "bench/model_judgment/top.json"}, keys)

	data, err := svc.Get(context.Background(), "bench/model_judgment/gpt-4o/m.jsonl")
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))
}

func TestPublishDir_MissingDir(t *testing.T) {
	_, err := PublishDir(context.Background(), NewInMemoryStore(), filepath.Join(t.TempDir(), "nope"), "x")
	assert.Error(t, err)
}
