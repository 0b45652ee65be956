package artifact

import (
	"context"
	"errors"
	"fmt"
	"path"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/hupe1980/labeltransform/blobstore"
	"github.com/hupe1980/labeltransform/resource"
)

const (
	// CurrentFileName is the pointer blob naming the live version of a model.
	CurrentFileName = "CURRENT"
	// FileExt is the extension of version blobs.
	FileExt = ".ltm"
)

var (
	// ErrNoModel is returned by Load when a model has never been saved.
	ErrNoModel = errors.New("no saved model")

	// ErrInvalidKeep is returned by Prune for a negative keep count.
	ErrInvalidKeep = errors.New("invalid keep count")
)

// Store manages versioned model artifacts on a blob store.
//
// Each save writes "<name>/v<N>.ltm" and then repoints "<name>/CURRENT" at
// it, so readers never observe a half-written version.
type Store struct {
	blobs blobstore.Store
	opts  []Option
	ctrl  *resource.Controller
	mu    sync.Mutex
}

// NewStore creates a model store. Options are passed to Marshal on save.
func NewStore(blobs blobstore.Store, opts ...Option) *Store {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	return &Store{
		blobs: blobs,
		opts:  opts,
		ctrl:  o.controller,
	}
}

func versionFile(v uint64) string {
	return fmt.Sprintf("v%06d%s", v, FileExt)
}

func parseVersionFile(base string) (uint64, bool) {
	if !strings.HasPrefix(base, "v") || !strings.HasSuffix(base, FileExt) {
		return 0, false
	}
	v, err := strconv.ParseUint(strings.TrimSuffix(base[1:], FileExt), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Versions returns the saved versions of a model in ascending order.
func (s *Store) Versions(ctx context.Context, name string) ([]uint64, error) {
	names, err := s.blobs.List(ctx, name+"/")
	if err != nil {
		return nil, err
	}

	var versions []uint64
	for _, n := range names {
		if path.Dir(n) != name {
			continue
		}
		if v, ok := parseVersionFile(path.Base(n)); ok {
			versions = append(versions, v)
		}
	}
	slices.Sort(versions)
	return versions, nil
}

// Save writes a new version of a model and makes it current.
func (s *Store) Save(ctx context.Context, name string, b Bundle) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := Marshal(b, s.opts...)
	if err != nil {
		return 0, err
	}

	versions, err := s.Versions(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("list versions of %q: %w", name, err)
	}
	var next uint64 = 1
	if len(versions) > 0 {
		next = versions[len(versions)-1] + 1
	}

	if err := s.ctrl.AcquireIO(ctx, len(data)); err != nil {
		return 0, err
	}

	// 1. Write the version blob
	file := versionFile(next)
	if err := s.blobs.Put(ctx, path.Join(name, file), data); err != nil {
		return 0, fmt.Errorf("write %s/%s: %w", name, file, err)
	}

	// 2. Update CURRENT pointer
	if err := s.blobs.Put(ctx, path.Join(name, CurrentFileName), []byte(file)); err != nil {
		return 0, fmt.Errorf("update %s/%s: %w", name, CurrentFileName, err)
	}
	return next, nil
}

// Current returns the live version of a model.
func (s *Store) Current(ctx context.Context, name string) (uint64, error) {
	content, err := s.blobs.Get(ctx, path.Join(name, CurrentFileName))
	if errors.Is(err, blobstore.ErrNotFound) {
		return 0, fmt.Errorf("%w: %q", ErrNoModel, name)
	}
	if err != nil {
		return 0, err
	}

	v, ok := parseVersionFile(strings.TrimSpace(string(content)))
	if !ok {
		return 0, fmt.Errorf("%w: bad %s pointer %q", ErrCorrupt, CurrentFileName, content)
	}
	return v, nil
}

// Load reads the current version of a model.
func (s *Store) Load(ctx context.Context, name string) (Bundle, uint64, error) {
	v, err := s.Current(ctx, name)
	if err != nil {
		return Bundle{}, 0, err
	}
	b, err := s.LoadVersion(ctx, name, v)
	if err != nil {
		return Bundle{}, 0, err
	}
	return b, v, nil
}

// LoadVersion reads a specific version of a model.
func (s *Store) LoadVersion(ctx context.Context, name string, version uint64) (Bundle, error) {
	key := path.Join(name, versionFile(version))
	data, err := s.blobs.Get(ctx, key)
	if err != nil {
		return Bundle{}, fmt.Errorf("read %s: %w", key, err)
	}
	if err := s.ctrl.AcquireIO(ctx, len(data)); err != nil {
		return Bundle{}, err
	}

	b, err := Unmarshal(data)
	if err != nil {
		return Bundle{}, fmt.Errorf("read %s: %w", key, err)
	}
	return b, nil
}

// Prune deletes all but the newest keep versions. The current version is
// never deleted. A negative keep fails with ErrInvalidKeep.
func (s *Store) Prune(ctx context.Context, name string, keep int) error {
	if keep < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidKeep, keep)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	versions, err := s.Versions(ctx, name)
	if err != nil {
		return err
	}
	if len(versions) <= keep {
		return nil
	}

	current, err := s.Current(ctx, name)
	if err != nil && !errors.Is(err, ErrNoModel) {
		return err
	}

	for _, v := range versions[:len(versions)-keep] {
		if v == current {
			continue
		}
		if err := s.blobs.Delete(ctx, path.Join(name, versionFile(v))); err != nil {
			return err
		}
	}
	return nil
}
