// Command craftrec 运行手工艺品推荐服务。
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "craftrec:", err)
		os.Exit(1)
	}
}
