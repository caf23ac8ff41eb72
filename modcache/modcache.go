// Package modcache implements the process-wide module cache spec
// section 5 describes: a durable store of compiled module interfaces
// keyed by canonical module name, backed by an embedded sqlite database
// so "serialized modules can be reloaded" across process runs, with
// in-flight request deduplication so two resolvers racing to load the
// same module only pay for one database round trip.
package modcache

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
	"golang.org/x/sync/singleflight"

	"github.com/gofortran/asr"
	"github.com/gofortran/asr/modcache/wire"
)

// Cache is a resolver.ModuleLoader backed by an on-disk sqlite database.
// The zero value is not usable; construct with Open.
type Cache struct {
	db    *sql.DB
	group singleflight.Group
}

// Open opens (creating if necessary) the sqlite database at path and
// ensures its schema exists.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("modcache: opening %s: %w", path, err)
	}
	const schema = `CREATE TABLE IF NOT EXISTS modules (
		name      TEXT PRIMARY KEY,
		blob      BLOB NOT NULL,
		loaded_at TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("modcache: creating schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Store persists mod's public interface under its own name, overwriting
// any previous entry (spec section 5: a later `use` of the same module
// name should see the most recently resolved version).
func (c *Cache) Store(mod *asr.Module) error {
	blob := wire.EncodeModule(mod)
	_, err := c.db.Exec(
		`INSERT INTO modules (name, blob, loaded_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET blob = excluded.blob, loaded_at = excluded.loaded_at`,
		mod.Name(), blob, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("modcache: storing module %q: %w", mod.Name(), err)
	}
	return nil
}

// LoadModule implements resolver.ModuleLoader: it answers a cache hit
// from the sqlite table, deduplicating concurrent requests for the same
// name through singleflight rather than issuing one query per caller.
func (c *Cache) LoadModule(name string) (*asr.Module, bool) {
	v, err, _ := c.group.Do(name, func() (any, error) {
		row := c.db.QueryRow(`SELECT blob FROM modules WHERE name = ?`, name)
		var blob []byte
		if err := row.Scan(&blob); err != nil {
			return nil, err
		}
		return wire.DecodeModule(name, blob)
	})
	if err != nil {
		return nil, false
	}
	return v.(*asr.Module), true
}
