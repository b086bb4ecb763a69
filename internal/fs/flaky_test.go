package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestFlakyPassesThroughByDefault(t *testing.T) {
	t.Parallel()

	flaky := &Flaky{FS: NewReal()}
	path := filepath.Join(t.TempDir(), "data.json")

	err := flaky.WriteFileAtomic(path, []byte("ok"), 0o600)
	if err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}

	data, err := flaky.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	if string(data) != "ok" {
		t.Errorf("content = %q, want %q", data, "ok")
	}

	if flaky.WriteFails != 0 {
		t.Errorf("WriteFails = %d, want 0", flaky.WriteFails)
	}
}

func TestFlakyFailWritesSimulatesCrashBeforeRename(t *testing.T) {
	t.Parallel()

	real := NewReal()
	path := filepath.Join(t.TempDir(), "data.json")

	err := real.WriteFileAtomic(path, []byte("before"), 0o600)
	if err != nil {
		t.Fatalf("seed write failed: %v", err)
	}

	flaky := &Flaky{FS: real, FailWrites: true}

	err = flaky.WriteFileAtomic(path, []byte("after"), 0o600)
	if err == nil {
		t.Fatal("expected injected failure")
	}

	if !IsInjected(err) {
		t.Errorf("error should be marked as injected: %v", err)
	}

	data, readErr := os.ReadFile(path)
	if readErr != nil {
		t.Fatalf("read back: %v", readErr)
	}

	if string(data) != "before" {
		t.Errorf("target file changed across a simulated crash: %q", data)
	}

	partial, readErr := os.ReadFile(path + PartialSuffix)
	if readErr != nil {
		t.Fatalf("partial file missing: %v", readErr)
	}

	if string(partial) != "after" {
		t.Errorf("partial content = %q, want %q", partial, "after")
	}

	if flaky.WriteFails != 1 {
		t.Errorf("WriteFails = %d, want 1", flaky.WriteFails)
	}
}

func TestFlakyFailReadsReturnsPermissionError(t *testing.T) {
	t.Parallel()

	flaky := &Flaky{FS: NewReal(), FailReads: true}

	_, err := flaky.ReadFile(filepath.Join(t.TempDir(), "any"))
	if err == nil {
		t.Fatal("expected injected failure")
	}

	if !errors.Is(err, iofs.ErrPermission) {
		t.Errorf("error should behave like a permission error: %v", err)
	}

	if !IsInjected(err) {
		t.Errorf("error should be marked as injected: %v", err)
	}
}

func TestIsInjected(t *testing.T) {
	t.Parallel()

	if IsInjected(nil) {
		t.Error("nil is not injected")
	}

	if IsInjected(errors.New("plain")) {
		t.Error("plain errors are not injected")
	}

	wrapped := &InjectedError{Err: errors.New("boom")}
	if !IsInjected(wrapped) {
		t.Error("InjectedError should be detected")
	}

	if wrapped.Error() != "boom" {
		t.Errorf("Error() = %q, want %q", wrapped.Error(), "boom")
	}
}
