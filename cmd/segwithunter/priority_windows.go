//go:build windows

package main

import "golang.org/x/sys/windows"

// raisePriority moves the process to HIGH_PRIORITY_CLASS, falling back to
// ABOVE_NORMAL. REALTIME can freeze the system.
func raisePriority() error {
	process := windows.CurrentProcess()
	if err := windows.SetPriorityClass(process, windows.HIGH_PRIORITY_CLASS); err != nil {
		return windows.SetPriorityClass(process, windows.ABOVE_NORMAL_PRIORITY_CLASS)
	}
	return nil
}
