package toolchain

import (
	"os"
	"path/filepath"
)

// cacheRoot resolves the artifact cache directory, creating it if needed.
// An empty override uses the platform user cache directory.
func cacheRoot(override string) (string, error) {
	dir := override
	if dir == "" {
		userCacheDir, err := os.UserCacheDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(userCacheDir, "hostcall")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	return dir, nil
}
