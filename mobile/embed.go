//go:build mobile

// embed.go - 移动端资源嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// Makefile 的 prepare-mobile 目标会先把 data/demo.yaml 复制到此目录。
package mobile

import "embed"

//go:embed data/demo.yaml
var dataFS embed.FS
