package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// openBrowser opens the provider's hosted sign-in page. The URL is also
// printed so the user can follow it by hand when no opener is available.
func openBrowser(url string) error {
	fmt.Fprintf(os.Stderr, "Opening sign-in page:\n  %s\n", url)

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	if err := cmd.Start(); err != nil {
		// Not fatal: the printed URL still works.
		return nil
	}
	return nil
}
