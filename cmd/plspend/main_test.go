package main

import (
	"os"
	"os/exec"
	"testing"
)

// Runs main in a subprocess so os.Exit does not end the test binary.
func TestMainExitsWithUsageCode(t *testing.T) {
	if os.Getenv("PLSPEND_RUN_MAIN") == "1" {
		os.Args = []string{"plspend"}
		main()
		return
	}
	cmd := exec.Command(os.Args[0], "-test.run=TestMainExitsWithUsageCode")
	cmd.Env = append(os.Environ(), "PLSPEND_RUN_MAIN=1")
	err := cmd.Run()
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("expected exit error, got %v", err)
	}
	if code := exitErr.ExitCode(); code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}
}
