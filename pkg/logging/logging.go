// Package logging 日志输出配置
// 终端界面占用标准输出，日志只能写入文件
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Setup 配置标准库日志
// filename 为空时丢弃日志（log.Fatal/panic 除外），否则追加写入该文件
func Setup(filename string) (cleanup func(), err error) {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if filename == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("无法打开日志文件 %s: %w", filename, err)
	}
	log.SetOutput(f)

	return func() {
		log.SetOutput(io.Discard)
		f.Close()
	}, nil
}
