// Package main provides a standalone health check probe for Platewise.
// It is meant for Docker HEALTHCHECK directives and monitoring scripts.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/platewise/v1/pkg/healthcheck"
)

const (
	exitCodeSuccess = 0
	exitCodeFailure = 1
	exitCodeError   = 2
)

func main() {
	var (
		url     = flag.String("url", "http://localhost:8080/health", "Health endpoint URL")
		timeout = flag.Duration("timeout", 10*time.Second, "Request timeout")
		verbose = flag.Bool("verbose", false, "Print the full health response")
	)
	flag.Parse()

	os.Exit(probe(*url, *timeout, *verbose))
}

func probe(url string, timeout time.Duration, verbose bool) int {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "health-check: %v\n", err)
		return exitCodeError
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "health-check: %v\n", err)
		return exitCodeError
	}
	defer resp.Body.Close()

	var response healthcheck.Response
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		fmt.Fprintf(os.Stderr, "health-check: decoding response: %v\n", err)
		return exitCodeError
	}

	if verbose {
		encoded, _ := json.MarshalIndent(response, "", "  ")
		fmt.Println(string(encoded))
	} else {
		fmt.Printf("status=%s version=%s checks=%d\n", response.Status, response.Version, len(response.Checks))
	}

	if resp.StatusCode != http.StatusOK || response.Status == healthcheck.StatusUnhealthy {
		return exitCodeFailure
	}
	return exitCodeSuccess
}
