// Command healthcheck probes the local /health endpoint. It is meant for a
// container HEALTHCHECK where no shell or curl is available.
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/aescanero/kubedemo/internal/config"
)

func main() {
	port := 8080
	// Only the port matters here; a bad value elsewhere must not fail the probe.
	if cfg, err := config.Load(); err == nil {
		port = cfg.HTTPPort
	}

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(fmt.Sprintf("http://127.0.0.1:%d/health", port))
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
	os.Exit(0)
}
