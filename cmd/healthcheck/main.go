package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Razgrits/Suno-Battler/internal/constants"
)

// Probes the version endpoint of a server on this host, at SUNO_BATTLER_ADDR
// or the default :8080.
func main() {
	addr := os.Getenv(constants.EnvAddress)
	if addr == "" {
		addr = ":8080"
	}
	if strings.HasPrefix(addr, ":") {
		addr = "127.0.0.1" + addr
	}
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + addr + constants.RouteAPIPrefix + constants.RouteVersion)
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
	os.Exit(0)
}
