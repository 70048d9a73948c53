package manager

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetectDevice_Explicit(t *testing.T) {
	if DetectDevice("CPU") != DeviceCPU || DetectDevice("cuda") != DeviceCUDA {
		t.Fatalf("explicit preferences must be honoured")
	}
}

func TestDetectDevice_Auto(t *testing.T) {
	dir := t.TempDir()
	probe := filepath.Join(dir, "nvidia0")
	old := cudaProbePaths
	t.Cleanup(func() { cudaProbePaths = old })
	cudaProbePaths = []string{probe}

	if got := DetectDevice("auto"); got != DeviceCPU {
		t.Fatalf("no probe file: got %s", got)
	}
	if err := os.WriteFile(probe, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CUDA_VISIBLE_DEVICES", "0")
	if got := DetectDevice("auto"); got != DeviceCUDA {
		t.Fatalf("probe present: got %s", got)
	}
	t.Setenv("CUDA_VISIBLE_DEVICES", "-1")
	if got := DetectDevice(""); got != DeviceCPU {
		t.Fatalf("hidden devices: got %s", got)
	}
}
