//go:build windows

package dispatch

import "os"

// Console Ctrl-C reaches the child through the shared console; catching it
// here keeps the parent alive until the child exits.
var forwardedSignals = []os.Signal{os.Interrupt}
