//go:build !mobile

// Package mobile 在普通构建下只有这个占位文件，
// 真正的入口在 mobile.go，需要 -tags mobile。
package mobile

// Dummy 让 go build ./... 和 go vet ./... 在桌面端也能处理此包
func Dummy() {}
