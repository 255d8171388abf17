package main

import (
	"os"
	"runtime/debug"

	"github.com/mezonai/crowdfund/cmd"
	"github.com/mezonai/crowdfund/logx"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			_ = logx.Errorf("CROWDFUND CRASHED: %v\n%s", r, debug.Stack())
			os.Exit(1)
		}
	}()

	cmd.Execute()
}
