// Command hostcall-demo exercises the whole native boundary: it compiles
// the demo module with the local C toolchain, loads the artifact, and
// calls each exported function once.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/hostcall/hostcall"
)

func run() error {
	configPath := flag.String("config", "", "path to a toolchain config file (YAML)")
	cacheDir := flag.String("cache-dir", "", "override the artifact cache directory")
	verbose := flag.BoolP("verbose", "v", false, "log build steps")
	flag.Parse()

	var log *zap.Logger
	if *verbose {
		var err error
		log, err = zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer log.Sync()
	}

	var opts []hostcall.Option
	if *configPath != "" {
		opts = append(opts, hostcall.WithConfigFile(*configPath))
	}
	if *cacheDir != "" {
		opts = append(opts, hostcall.WithCacheDir(*cacheDir))
	}
	if log != nil {
		opts = append(opts, hostcall.WithLogger(log))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	lib, err := hostcall.Open(ctx, opts...)
	if err != nil {
		return err
	}

	fmt.Printf("--- native boundary check (ABI %s) ---\n", hostcall.ABIVersion)
	fmt.Printf("library: %s\n", lib.Path())

	lib.Ping()

	const input int32 = 15
	fmt.Printf("transform(%d) = %d\n", input, lib.Transform(input))

	text := "Olá, host!"
	n, err := lib.StringLength(text)
	if err != nil {
		return err
	}
	fmt.Printf("byteLength(%q) = %d\n", text, n)

	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
