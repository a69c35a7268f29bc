//go:build !android

package utils

// EnsureStorageDir 确保设置存储目录可用（非 Android 平台无需处理）
// gdata 在桌面平台上会自动创建存储目录
func EnsureStorageDir() error {
	return nil
}

// GetStoragePath 返回设置存储路径，非 Android 平台由 gdata 决定，返回空字符串
func GetStoragePath() string {
	return ""
}
