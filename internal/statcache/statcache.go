// Package statcache persists file stat snapshots between scans in a SQLite
// database, keyed by path and modification time. Large render trees are
// slow to re-stat; a cache hit for an unchanged file skips the disk call.
package statcache

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/harrison/framescan/internal/sequence"
)

//go:embed schema.sql
var schemaSQL string

// Store manages the SQLite stat cache database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Open creates a Store and initializes the database schema. The parent
// directory is created for file-based databases; ":memory:" is accepted
// for tests.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// busy_timeout first so subsequent statements wait on locks instead
	// of failing while another invocation holds the cache.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("configure database: %w", err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

// Put stores a stat snapshot for path. The snapshot's mtime is the cache
// key alongside the path; a snapshot without an mtime is not cacheable and
// is rejected.
func (s *Store) Put(path string, stat *sequence.Stat) error {
	if stat == nil || stat.Mtime == nil {
		return fmt.Errorf("stat for %s has no mtime, cannot cache", path)
	}

	_, err := s.db.Exec(`
		INSERT INTO file_stats
			(path, mtime_ns, size, inode, nlink, dev, mode, uid, gid, atime_ns, ctime_ns, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			mtime_ns = excluded.mtime_ns,
			size = excluded.size,
			inode = excluded.inode,
			nlink = excluded.nlink,
			dev = excluded.dev,
			mode = excluded.mode,
			uid = excluded.uid,
			gid = excluded.gid,
			atime_ns = excluded.atime_ns,
			ctime_ns = excluded.ctime_ns,
			updated_at = excluded.updated_at`,
		path, stat.Mtime.UnixNano(),
		nullInt(stat.Size), nullInt(stat.Inode), nullInt(stat.Nlink),
		nullInt(stat.Dev), nullInt(stat.Mode), nullInt(stat.UID), nullInt(stat.GID),
		nullTime(stat.Atime), nullTime(stat.Ctime),
		time.Now().Unix())
	if err != nil {
		return fmt.Errorf("store stats for %s: %w", path, err)
	}
	return nil
}

// Get returns the cached stat snapshot for path if one exists with the
// given modification time. A missing or stale entry returns ok == false.
func (s *Store) Get(path string, mtime time.Time) (*sequence.Stat, bool, error) {
	row := s.db.QueryRow(`
		SELECT size, inode, nlink, dev, mode, uid, gid, atime_ns, ctime_ns
		FROM file_stats WHERE path = ? AND mtime_ns = ?`,
		path, mtime.UnixNano())

	var size, inode, nlink, dev, mode, uid, gid, atime, ctime sql.NullInt64
	err := row.Scan(&size, &inode, &nlink, &dev, &mode, &uid, &gid, &atime, &ctime)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load stats for %s: %w", path, err)
	}

	stat := &sequence.Stat{}
	mt := mtime
	stat.Mtime = &mt
	stat.Size = intPtr(size)
	stat.Inode = intPtr(inode)
	stat.Nlink = intPtr(nlink)
	stat.Dev = intPtr(dev)
	stat.Mode = intPtr(mode)
	stat.UID = intPtr(uid)
	stat.GID = intPtr(gid)
	stat.Atime = timePtr(atime)
	stat.Ctime = timePtr(ctime)
	return stat, true, nil
}

// Latest returns the most recent snapshot stored for path regardless of
// modification time. Manifest rows carry no mtime to key on, so they take
// whatever the last scan recorded.
func (s *Store) Latest(path string) (*sequence.Stat, bool, error) {
	row := s.db.QueryRow(`
		SELECT mtime_ns, size, inode, nlink, dev, mode, uid, gid, atime_ns, ctime_ns
		FROM file_stats WHERE path = ?`, path)

	var mtimeNS int64
	var size, inode, nlink, dev, mode, uid, gid, atime, ctime sql.NullInt64
	err := row.Scan(&mtimeNS, &size, &inode, &nlink, &dev, &mode, &uid, &gid, &atime, &ctime)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load stats for %s: %w", path, err)
	}

	mt := time.Unix(0, mtimeNS)
	stat := &sequence.Stat{Mtime: &mt}
	stat.Size = intPtr(size)
	stat.Inode = intPtr(inode)
	stat.Nlink = intPtr(nlink)
	stat.Dev = intPtr(dev)
	stat.Mode = intPtr(mode)
	stat.UID = intPtr(uid)
	stat.GID = intPtr(gid)
	stat.Atime = timePtr(atime)
	stat.Ctime = timePtr(ctime)
	return stat, true, nil
}

// Prune deletes cache entries last updated before the cutoff and returns
// how many were removed.
func (s *Store) Prune(before time.Time) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM file_stats WHERE updated_at < ?`, before.Unix())
	if err != nil {
		return 0, fmt.Errorf("prune stat cache: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune stat cache: %w", err)
	}
	return removed, nil
}

// Len returns the number of cached entries.
func (s *Store) Len() (int64, error) {
	var count int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM file_stats`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count stat cache: %w", err)
	}
	return count, nil
}

func nullInt(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UnixNano()
}

func intPtr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func timePtr(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.Unix(0, v.Int64)
	return &t
}
