// Package callerkit locates call sites on the active call stack.
//
// Frames are walked with the frameless runtimekit,
// so frames hidden through runtimekit.RegisterFrameException are not counted as a level.
package callerkit

import (
	"runtime"
	"strings"

	"go.llib.dev/frameless/pkg/runtimekit"
)

const pkgPath = "go.llib.dev/spread/pkg/callerkit"

var _ = runtimekit.RegisterFrameException(func(f runtime.Frame) bool {
	return strings.HasPrefix(f.Function, pkgPath+".")
})

// Caller returns the frame that is height levels above the function which calls Caller.
//
// A height of 0 refers to the calling function itself, 1 to its caller, and so on.
// When the stack is shallower than the requested height, Caller reports false.
func Caller(height int) (runtime.Frame, bool) {
	if height < 0 {
		return runtime.Frame{}, false
	}
	var level int
	for frame := range runtimekit.OverStack() {
		if level == height {
			return frame, true
		}
		level++
	}
	return runtime.Frame{}, false
}
