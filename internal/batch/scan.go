// Package batch enumerates candidate databases under a root directory and
// decrypts them through a bounded worker pool, mirroring the input tree
// under the output root.
package batch

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wxforge/wxkit/pkg/types"
)

// Scan walks root and returns every regular file whose name ends in ".db"
// (case-insensitive), ordered by lexicographic relative path. Relative paths
// use forward slashes regardless of platform, so repeated scans over an
// unchanged tree return identical lists.
func Scan(root string) ([]types.DbFileEntry, error) {
	var entries []types.DbFileEntry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(d.Name()), ".db") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		entries = append(entries, types.DbFileEntry{
			RelPath:   filepath.ToSlash(rel),
			SizeBytes: info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, &types.Error{Kind: types.ErrKindIO, Msg: "scan root", Err: err}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].RelPath < entries[j].RelPath })
	return entries, nil
}
