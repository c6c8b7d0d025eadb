package driver

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"quill/internal/project"
	"quill/internal/source"
)

// Bump when DiskPayload changes shape.
const diskCacheSchemaVersion uint16 = 1

// DiskCache remembers fully clean check runs keyed by tree hash, so an
// unchanged project skips the pipeline entirely. Thread-safe.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload records one clean run over a source tree.
type DiskPayload struct {
	Schema uint16

	Package string

	// Units in discovery order with their content hashes.
	UnitPaths  []string
	UnitHashes []project.Digest

	TreeHash project.Digest

	// Clean marks a run that produced zero diagnostics. Only clean runs
	// are stored, but the flag stays explicit for future payloads that
	// cache more than the verdict.
	Clean bool
}

// OpenDiskCache initializes the cache at the standard user location,
// $XDG_CACHE_HOME/<app> or ~/.cache/<app>.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt points the cache at an explicit directory; tests use it.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// отдельный подкаталог, чтобы чистка была тривиальной
	return filepath.Join(c.dir, "trees", hexKey+".mp")
}

// Put serializes and writes a payload, replacing atomically.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if removeErr := os.Remove(f.Name()); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "failed to remove temp file: %v\n", removeErr)
		}
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload; ok is false on a miss or schema mismatch.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() { _ = f.Close() }()

	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// treeKey folds the schema version, the manifest and every unit hash
// into one digest. Unit order is the discovery order, already stable.
func treeKey(fs *source.FileSet, files []source.FileID, manifest *project.Manifest) project.Digest {
	var schema [8]byte
	binary.LittleEndian.PutUint16(schema[:], diskCacheSchemaVersion)
	key := project.HashBytes(schema[:])

	if manifest != nil {
		if data, err := os.ReadFile(manifest.Path); err == nil {
			key = project.Combine(key, project.HashBytes(data))
		}
	}
	for _, id := range files {
		if f := fs.Get(id); f != nil {
			key = project.Combine(key, f.Hash)
		}
	}
	return key
}

func hitCachedClean(cache *DiskCache, fs *source.FileSet, files []source.FileID, manifest *project.Manifest) bool {
	var payload DiskPayload
	ok, err := cache.Get(treeKey(fs, files, manifest), &payload)
	if err != nil || !ok {
		return false
	}
	return payload.Clean && len(payload.UnitPaths) == len(files)
}

func storeCleanRun(cache *DiskCache, fs *source.FileSet, files []source.FileID, manifest *project.Manifest) {
	key := treeKey(fs, files, manifest)
	payload := DiskPayload{
		Schema:     diskCacheSchemaVersion,
		TreeHash:   key,
		Clean:      true,
		UnitPaths:  make([]string, 0, len(files)),
		UnitHashes: make([]project.Digest, 0, len(files)),
	}
	if manifest != nil {
		payload.Package = manifest.Package.Name
	}
	for _, id := range files {
		if f := fs.Get(id); f != nil {
			payload.UnitPaths = append(payload.UnitPaths, f.Path)
			payload.UnitHashes = append(payload.UnitHashes, f.Hash)
		}
	}
	// cache write failure is not a check failure
	_ = cache.Put(key, &payload)
}
