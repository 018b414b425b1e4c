//go:build !windows

package main

// raisePriority is a no-op here. Use "nice -n -10 segwithunter" for a boost.
func raisePriority() error {
	return nil
}
