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

	publisher := vinwatch.NewCallbackPublisher("stdout", func(m vinwatch.OutboundMessage) error {
		switch m.Kind {
		case vinwatch.KindStateChange:
			fmt.Printf("%s state %s -> %s at %.2f °C\n",
				m.StateChange.Timestamp.Format(time.RFC3339),
				m.StateChange.From,
				m.StateChange.To,
				m.StateChange.Temperature,
			)
		default:
			fmt.Printf("%s vin=%s temp=%.2f state=%s\n",
				m.Telemetry.Timestamp.Format(time.RFC3339),
				m.Telemetry.VIN,
				m.Telemetry.Temperature,
				m.Telemetry.State,
			)
		}
		return nil
	})

	node, err := vinwatch.NewNodeRuntime(cfg, vinwatch.WithPublisher(publisher))
	if err != nil {
		log.Fatalf("build node: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := node.Run(ctx); err != nil {
		log.Fatalf("runtime error: %v", err)
	}
}
