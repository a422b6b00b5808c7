// Container healthcheck: probes the version endpoint and exits non-zero
// when the server is unreachable or failing.
package main

import (
	"net/http"
	"os"
	"time"

	"github.com/mingu600/tapu-simu/internal/constants"
)

func main() {
	addr := os.Getenv(constants.EnvAddr)
	if addr == "" {
		addr = ":3001"
	}
	if addr[0] == ':' {
		addr = "127.0.0.1" + addr
	}
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + addr + constants.RouteAPIPrefix + constants.RouteVersion)
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		os.Exit(1)
	}
	os.Exit(0)
}
