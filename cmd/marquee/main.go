package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/BrandonKowalski/marquee/pkg/marquee"
	"github.com/BrandonKowalski/marquee/pkg/marquee/constants"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// SDL calls must stay on the main thread.
func init() {
	runtime.LockOSThread()
}

func defaultRoot() string {
	if root := os.Getenv(constants.RootPathEnvVar); root != "" {
		return root
	}
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

func main() {
	root := flag.String("root", defaultRoot(), "frontend root holding settings.conf")
	logLevel := flag.String("log-level", os.Getenv(constants.LogLevelEnvVar), "debug, info, warn or error")
	showVersion := flag.Bool("version", false, "print the version and exit")
	createCollection := flag.String("createcollection", "", "create an empty collection and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("marquee", version)
		return
	}

	if *createCollection != "" {
		if err := marquee.CreateCollection(*root, *createCollection); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("Created collection %q in %s\n", *createCollection, filepath.Join(*root, "collections"))
		return
	}

	marquee.SetLogPath(filepath.Join(*root, "log.txt"))
	if *logLevel != "" {
		marquee.SetRawLogLevel(*logLevel)
	}
	logger := marquee.GetLogger()
	logger.Info("Starting marquee", "version", version, "root", *root)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for {
		reboot, err := run(ctx, *root, *logLevel)
		if err != nil {
			logger.Error("Frontend failed", "error", err)
			stop()
			marquee.CloseLogger()
			os.Exit(1)
		}
		if !reboot || ctx.Err() != nil {
			marquee.CloseLogger()
			return
		}
		logger.Info("Restarting frontend")
	}
}

func run(ctx context.Context, root, logLevel string) (bool, error) {
	fe, err := marquee.New(marquee.Options{Root: root, LogLevel: logLevel})
	if err != nil {
		return false, err
	}
	defer fe.Close()
	return fe.Run(ctx)
}
