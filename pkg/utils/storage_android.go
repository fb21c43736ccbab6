//go:build android

package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 在打开 gdata 之前创建 /data/data/{package}/saves
// gdata 在 Android 上不会预先创建这个目录
func EnsureStorageDir() error {
	root, err := androidDataDir()
	if err != nil {
		return err
	}
	saves := filepath.Join(root, "saves")
	if err := os.MkdirAll(saves, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", saves, err)
	}
	return nil
}

// GetStoragePath 返回应用的数据目录，无法识别包名时返回空字符串
func GetStoragePath() string {
	root, err := androidDataDir()
	if err != nil {
		return ""
	}
	return root
}

// androidDataDir 从 /proc/self/cmdline 读取包名
func androidDataDir() (string, error) {
	raw, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", fmt.Errorf("failed to read package name: %w", err)
	}
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	pkg := string(bytes.TrimSpace(raw))
	if pkg == "" {
		return "", fmt.Errorf("empty package name in /proc/self/cmdline")
	}
	return filepath.Join("/data/data", pkg), nil
}
