package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/vinwatch/vinwatch"
)

//go:embed assets/banner_color.ansi
var bannerColor string

//go:embed assets/banner_plain.txt
var bannerPlain string

func main() {
	fmt.Print(selectBanner())
	fmt.Println()
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	var err error

	switch cmd {
	case "run":
		err = runCommand(os.Args[2:])
	case "validate":
		err = validateCommand(os.Args[2:])
	case "status":
		err = statusCommand(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		printUsage()
		err = fmt.Errorf("unknown command %q", cmd)
	}

	if err != nil {
		log.Fatalf("vinwatch-node %s: %v", cmd, err)
	}
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	cfgPath := fs.String("config", "./config.yaml", "Path to node configuration file")
	sim := fs.Bool("sim", false, "Force the simulated sensor regardless of config")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := vinwatch.LoadConfig(*cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *sim {
		cfg.Sensor.Backend = "sim"
	}

	node, err := vinwatch.NewNodeRuntime(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return node.Run(ctx)
}

func validateCommand(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	cfgPath := fs.String("config", "./config.yaml", "Path to configuration file to validate")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := vinwatch.LoadConfig(*cfgPath)
	if err != nil {
		return err
	}
	fmt.Printf("config %s looks good ✅ (vin=%s broker=%s)\n", *cfgPath, cfg.Vehicle.VIN, cfg.MQTT.BrokerURL())
	return nil
}

func selectBanner() string {
	if os.Getenv("NO_COLOR") != "" {
		return bannerPlain
	}
	return bannerColor
}

func printUsage() {
	fmt.Printf(`VinWatch CLI

Usage:
  vinwatch-node <command> [flags]

Commands:
  run        Start the monitoring node using the provided config
  validate   Load and validate a config file without starting the node
  status     Attach a live dashboard to a running node's metrics endpoint

Examples:
  vinwatch-node run -config ./config.yaml
  vinwatch-node run -config ./config.yaml -sim
  vinwatch-node validate -config ./config.yaml
  vinwatch-node status -url http://localhost:9100/metrics -interval 1s
`)
}
