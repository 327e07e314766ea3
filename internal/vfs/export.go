package vfs

import (
	"fmt"
	"path/filepath"

	"termfolio/internal/logging"

	"github.com/spf13/afero"
)

// Export writes every directory and file of f under root on fsys.
// Existing files are overwritten.
func Export(fsys afero.Fs, f *Filesystem, root string) (int, error) {
	if err := fsys.MkdirAll(root, 0755); err != nil {
		return 0, fmt.Errorf("failed to create export root: %w", err)
	}

	written := 0
	for _, p := range f.Paths() {
		n := f.nodes[p]
		target := filepath.Join(root, filepath.FromSlash(p))
		switch n.Kind {
		case KindDir:
			if err := fsys.MkdirAll(target, 0755); err != nil {
				return written, fmt.Errorf("failed to create %s: %w", p, err)
			}
		case KindFile:
			if err := fsys.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return written, fmt.Errorf("failed to create parent of %s: %w", p, err)
			}
			if err := afero.WriteFile(fsys, target, []byte(n.Content), 0644); err != nil {
				return written, fmt.Errorf("failed to write %s: %w", p, err)
			}
			written++
		}
	}

	logging.VFS("exported %d files to %s", written, root)
	return written, nil
}
