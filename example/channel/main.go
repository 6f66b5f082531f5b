package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/vinwatch/vinwatch"
)

func main() {
	cfg, err := vinwatch.LoadConfig("../../config.example.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	cfg.Sensor.Backend = "sim"

	publisher, messages, closeMessages := vinwatch.NewChannelPublisher("fanout", 32)
	defer closeMessages()

	go fanoutWorker("fleet-gateway", messages)

	node, err := vinwatch.NewNodeRuntime(cfg, vinwatch.WithPublisher(publisher))
	if err != nil {
		log.Fatalf("build node: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := node.Run(ctx); err != nil {
		log.Fatalf("runtime error: %v", err)
	}
}

func fanoutWorker(name string, messages <-chan vinwatch.OutboundMessage) {
	for m := range messages {
		switch m.Kind {
		case vinwatch.KindStateChange:
			fmt.Printf("[%s] %s transition %s -> %s\n", name, time.Now().Format(time.RFC3339), m.StateChange.From, m.StateChange.To)
		default:
			fmt.Printf("[%s] %s forwarding telemetry vin=%s temp=%.2f\n", name, time.Now().Format(time.RFC3339), m.Telemetry.VIN, m.Telemetry.Temperature)
		}
	}
}
