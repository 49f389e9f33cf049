//go:build !mobile

// Package mobile 是 gomobile/ebitenmobile 的绑定入口
//
// 实际代码仅在 -tags mobile 时编译（mobile.go、embed.go），
// 桌面端构建只保留本文件，使 ./... 下的包列表保持一致。
package mobile
