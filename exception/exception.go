package exception

import (
	"fmt"
	"runtime/debug"

	"github.com/mezonai/crowdfund/logx"
	"github.com/mezonai/crowdfund/monitoring"
)

// SafeGo runs fn on its own goroutine; a panic is logged and counted instead of
// taking the process down. done, when non-nil, is closed once fn returns or panics.
func SafeGo(name string, fn func(), done chan<- struct{}) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				monitoring.IncreasePanicCount()
				logx.Error("PANIC", fmt.Sprintf("Panic in %s: %v\n%s", name, r, debug.Stack()))
			}
			if done != nil {
				close(done)
			}
		}()
		fn()
	}()
}
