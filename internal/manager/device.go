package manager

import (
	"os"
	"strings"

	"mailgen/internal/common/fsutil"
)

// cudaProbePaths are checked to decide whether an NVIDIA device is visible.
var cudaProbePaths = []string{"/proc/driver/nvidia/version", "/dev/nvidia0"}

// DetectDevice resolves a device preference. "cpu" and "cuda" are returned as is;
// anything else picks cuda when a GPU is visible, else cpu.
func DetectDevice(pref string) string {
	switch strings.ToLower(strings.TrimSpace(pref)) {
	case DeviceCPU:
		return DeviceCPU
	case DeviceCUDA:
		return DeviceCUDA
	}
	if v, ok := os.LookupEnv("CUDA_VISIBLE_DEVICES"); ok && (v == "" || v == "-1") {
		return DeviceCPU
	}
	for _, p := range cudaProbePaths {
		if fsutil.PathExists(p) {
			return DeviceCUDA
		}
	}
	return DeviceCPU
}
