package browser

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Open launches url in the user's default browser. The BROWSER
// environment variable, when set, takes precedence over the
// platform default.
func Open(url string) error {
	if cmd := os.Getenv("BROWSER"); cmd != "" {
		return exec.Command(cmd, url).Start()
	}
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "linux":
		return exec.Command("xdg-open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
}
