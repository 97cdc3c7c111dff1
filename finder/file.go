package finder

import (
	"fmt"

	"github.com/ic-timon/gapscan/finder/store"
)

// FindInFile resolves the dataset stored at path, mapping its values instead of
// reading them onto the heap. The header's N is the domain size.
func FindInFile(path string, cfg *Config) ([]int64, error) {
	ds, err := store.OpenMmap(path)
	if err != nil {
		return nil, err
	}
	defer ds.Close()

	out, err := New(cfg).Find(ds.Header().N, ds.Values())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}
