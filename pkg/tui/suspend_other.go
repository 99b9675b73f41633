//go:build !unix

package tui

// stopProcess is a no-op on platforms without job control
func stopProcess() error {
	return nil
}
