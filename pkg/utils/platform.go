//go:build !mobile

package utils

import "os"

// MobileEmulateEnv 桌面端模拟移动模式的环境变量
const MobileEmulateEnv = "SPRINGBOX_MOBILE_EMULATE"

// IsMobile 桌面端返回 false，设置 SPRINGBOX_MOBILE_EMULATE=1 时返回 true
func IsMobile() bool {
	return os.Getenv(MobileEmulateEnv) == "1"
}
