// finctl 离线财务报表工具: 读取 JSON 快照, 输出与 HTTP 接口相同的 JSON
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}
