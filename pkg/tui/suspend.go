package tui

// stopSelf stops the current process until it is continued. Tests replace
// it to avoid stopping the test binary.
var stopSelf = stopProcess
