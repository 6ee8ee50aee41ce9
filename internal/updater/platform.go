package updater

import "runtime"

// Platform is the repository folder for the running OS.
func Platform() string {
	return platformFor(runtime.GOOS)
}

func platformFor(goos string) string {
	switch goos {
	case "darwin":
		return "mac"
	case "linux":
		return "linux"
	default:
		return "other"
	}
}
