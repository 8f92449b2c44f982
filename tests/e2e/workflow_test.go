package e2e

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const (
	TEST_DEVICE_TIMEOUT = 30 * time.Second
	TEST_CARD_UID       = "AABBCCDD"
)

func TestEndToEndWorkflow(t *testing.T) {
	// 1. Setup Environment
	// Allow overriding bin dir via env var, default to ../../bin (relative to tests/e2e)
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get cwd: %v", err)
	}

	binDir := os.Getenv("COUNTDOWNCTL_BIN_DIR")
	if binDir == "" {
		binDir = filepath.Join(cwd, "..", "..", "bin")
	}
	binDir, _ = filepath.Abs(binDir)
	t.Logf("Using bin dir: %s", binDir)

	cliPath := filepath.Join(binDir, "countdownctl")
	if _, err := os.Stat(cliPath); os.IsNotExist(err) {
		t.Skipf("CLI binary not found at %s. Build it with 'go build -o bin/countdownctl ./cmd/countdownctl'.", cliPath)
	}

	// Create temp home for isolation
	tempDir := t.TempDir()
	t.Logf("Running test in temp dir: %s", tempDir)

	var cleanEnv []string
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, "HOME=") && !strings.HasPrefix(e, "COUNTDOWNCTL_") {
			cleanEnv = append(cleanEnv, e)
		}
	}
	cleanEnv = append(cleanEnv,
		fmt.Sprintf("HOME=%s", tempDir),
		fmt.Sprintf("COUNTDOWNCTL_CONFIG=%s", filepath.Join(tempDir, "countdownctl", "config.yaml")),
	)

	addr := freeAddr(t)
	deviceURL := "http://" + addr
	storePath := filepath.Join(tempDir, "countdownctl", "emulator.db")

	// 2. Write config and emulator store
	t.Log("Initializing CLI...")
	runCmd(t, cliPath, cleanEnv, "init", "--device", deviceURL, "--emulator", "--store", storePath)

	// 3. Start Emulator (Background) with a card on the reader
	t.Log("Starting emulator...")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	emuCmd := exec.CommandContext(ctx, cliPath, "emulate", "--listen", addr, "--card", TEST_CARD_UID)
	emuCmd.Env = cleanEnv
	emuCmd.Dir = tempDir

	var stderrBuf bytes.Buffer
	emuCmd.Stderr = &stderrBuf

	if err := emuCmd.Start(); err != nil {
		t.Fatalf("Failed to start emulator: %v", err)
	}
	defer func() {
		cancel()
		_ = emuCmd.Wait()
		if t.Failed() {
			t.Logf("Emulator Stderr: %s", stderrBuf.String())
		}
	}()

	// 4. Wait for the device API
	waitForDevice(t, deviceURL, TEST_DEVICE_TIMEOUT)
	t.Log("Emulator is ready")

	// 5. Add a countdown for the scanned card
	out := runCmd(t, cliPath, cleanEnv, "add", "--scan", "--name", "Urlaub", "--date", "2030-07-01")
	if !strings.Contains(out, "Karte gescannt: "+TEST_CARD_UID) {
		t.Errorf("Expected scan notice, got: %s", out)
	}

	out = runCmd(t, cliPath, cleanEnv, "list")
	if !strings.Contains(out, "Urlaub") || !strings.Contains(out, TEST_CARD_UID) {
		t.Errorf("Expected countdown in list, got: %s", out)
	}

	// 6. Rename it
	runCmd(t, cliPath, cleanEnv, "edit", strings.ToLower(TEST_CARD_UID), "--name", "Sommerurlaub")
	out = runCmd(t, cliPath, cleanEnv, "list")
	if !strings.Contains(out, "Sommerurlaub") {
		t.Errorf("Expected renamed countdown, got: %s", out)
	}

	// 7. Status and diagnostics
	out = runCmd(t, cliPath, cleanEnv, "status")
	if !strings.Contains(out, "Access Point") {
		t.Errorf("Expected access point mode, got: %s", out)
	}
	runCmd(t, cliPath, cleanEnv, "doctor")

	// 8. Delete it
	runCmd(t, cliPath, cleanEnv, "delete", TEST_CARD_UID, "--yes")
	out = runCmd(t, cliPath, cleanEnv, "list")
	if !strings.Contains(out, "Keine Countdowns konfiguriert") {
		t.Errorf("Expected empty list, got: %s", out)
	}
}

func runCmd(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(path, args...)
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Command %s %v failed: %v\nOutput: %s", path, args, err, out)
	}
	return string(out)
}

// freeAddr returns a loopback address nothing is listening on.
func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to reserve a port: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()
	return addr
}

func waitForDevice(t *testing.T, baseURL string, timeout time.Duration) {
	t.Helper()
	start := time.Now()
	for {
		resp, err := http.Get(baseURL + "/api/status")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		if time.Since(start) > timeout {
			t.Fatalf("Timed out waiting for device at %s", baseURL)
		}
		time.Sleep(100 * time.Millisecond)
	}
}
