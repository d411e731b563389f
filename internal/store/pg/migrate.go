package pg

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/dropDatabas3/storegate/internal/observability/logger"
)

// migrationLockID genera el ID para pg_advisory_lock a partir del nombre del set.
func migrationLockID(name string) int64 {
	h := sha256.Sum256([]byte("storegate_migration:" + name))
	return int64(binary.BigEndian.Uint64(h[:8]))
}

// Migrate ejecuta todos los *_up.sql de dir (orden lexicográfico) bajo un
// advisory lock, para que dos instancias no migren en paralelo.
// Los scripts deben ser idempotentes (IF NOT EXISTS). Devuelve cuántos se aplicaron.
func (s *Store) Migrate(ctx context.Context, fsys fs.FS, dir string) (int, error) {
	files, err := upScripts(fsys, dir)
	if err != nil {
		return 0, err
	}

	log := logger.Named("store.pg")
	lockID := migrationLockID(dir)

	// el lock es de sesión: hay que tomarlo y liberarlo en la misma conexión
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("pg: acquire conn: %w", err)
	}
	defer conn.Release()

	lockCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if _, err := conn.Exec(lockCtx, "SELECT pg_advisory_lock($1)", lockID); err != nil {
		return 0, fmt.Errorf("pg: acquire migration lock: %w", err)
	}
	defer func() {
		if _, err := conn.Exec(context.Background(), "SELECT pg_advisory_unlock($1)", lockID); err != nil {
			log.Warn("failed to release migration lock", logger.Err(err))
		}
	}()

	var applied int
	for _, f := range files {
		b, err := fs.ReadFile(fsys, f)
		if err != nil {
			return applied, err
		}
		if _, err := conn.Exec(ctx, string(b)); err != nil {
			return applied, fmt.Errorf("pg: exec %s: %w", f, err)
		}
		log.Info("migration applied", logger.String("file", f))
		applied++
	}
	return applied, nil
}

func upScripts(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(strings.ToLower(e.Name()), "_up.sql") {
			files = append(files, path.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
