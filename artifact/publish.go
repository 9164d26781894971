package artifact

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// PublishDir uploads every regular file below dir to store under
// prefix/<relative path> and returns the keys written. Lock files are skipped.
func PublishDir(ctx context.Context, store Store, dir, prefix string) ([]string, error) {
	var keys []string

	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(p) == ".lock" {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		key := path.Join(prefix, filepath.ToSlash(rel))

		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		if err := store.Save(ctx, key, data); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
		keys = append(keys, key)
		return nil
	})
	if err != nil {
		return keys, fmt.Errorf("publish %s: %w", dir, err)
	}
	return keys, nil
}
