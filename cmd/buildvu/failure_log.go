package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var failureLogMu sync.Mutex

// logFailure appends one tab-separated line per failed conversion to path.
func logFailure(path, uuid, target string, err error) error {
	if path == "" {
		return nil
	}

	if uuid == "" {
		uuid = "unknown"
	}
	timestamp := time.Now().Format(time.RFC3339)
	line := fmt.Sprintf("%s\tlevel=ERROR\tuuid=%s\ttarget=%s\tmessage=%v\n", timestamp, uuid, target, err)

	failureLogMu.Lock()
	defer failureLogMu.Unlock()

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
			return mkErr
		}
	}

	f, openErr := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if openErr != nil {
		return openErr
	}
	defer f.Close()

	_, writeErr := f.WriteString(line)
	return writeErr
}

// recordFailure writes err to the fail log and returns it, noting a fail log
// write error alongside.
func recordFailure(opts *cliOptions, uuid, target string, err error) error {
	if logErr := logFailure(opts.failLogPath, uuid, target, err); logErr != nil {
		return fmt.Errorf("%w; also failed to write fail log: %v", err, logErr)
	}
	return err
}
