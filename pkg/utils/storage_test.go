//go:build !android

package utils

import "testing"

func TestEnsureStorageDirDesktop(t *testing.T) {
	if err := EnsureStorageDir(); err != nil {
		t.Errorf("EnsureStorageDir() = %v, want nil on desktop", err)
	}
	if got := GetStoragePath(); got != "" {
		t.Errorf("GetStoragePath() = %q, want empty on desktop", got)
	}
}
