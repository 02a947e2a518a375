// Command fetchtest probes the three-stage image fetch chain for a URL and
// reports which stage succeeded and whether the result would taint.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"ninegrid/internal/acquire"
	"ninegrid/internal/grid"
)

func main() {
	rawURL := flag.String("url", "", "Image URL to probe")
	proxy := flag.String("proxy", acquire.DefaultProxyBase, "Image proxy base URL")
	timeout := flag.Duration("timeout", 30*time.Second, "Per-probe timeout (the app itself uses none)")
	flag.Parse()

	if *rawURL == "" {
		fmt.Println("Usage: fetchtest -url <image-url> [-proxy <base>] [-timeout 30s]")
		os.Exit(1)
	}

	loader := acquire.NewLoader(grid.NewSession())
	loader.SetProxyBase(*proxy)
	loader.SetClient(&http.Client{Timeout: *timeout})

	fmt.Printf("Probing %s\n", *rawURL)
	start := time.Now()
	stage, tainted, err := loader.Probe(context.Background(), *rawURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "All stages failed after %v: %v\n", time.Since(start).Round(time.Millisecond), err)
		os.Exit(1)
	}

	fmt.Printf("Stage:   %s\n", stage)
	fmt.Printf("Tainted: %v\n", tainted)
	fmt.Printf("Elapsed: %v\n", time.Since(start).Round(time.Millisecond))
	if tainted {
		fmt.Println("Export would be blocked until this image is re-added as a local file.")
	}
}
