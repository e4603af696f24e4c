//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	streamResolve  = "stream:zone:resolve"
	streamResolved = "stream:zone:resolved"
)

type ZoneResolveEvent struct {
	OrderID   uuid.UUID `json:"order_id"`
	Address   *string   `json:"address,omitempty"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	CartTotal *int64    `json:"cart_total,omitempty"`
}

func ptr[T any](v T) *T {
	return &v
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	address := flag.String("address", "", "address to resolve (used when -lat/-lon are not set)")
	lat := flag.Float64("lat", 55.7558, "latitude")
	lon := flag.Float64("lon", 37.6173, "longitude")
	cart := flag.Int64("cart", 1200, "cart total, minor units")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	event := ZoneResolveEvent{
		OrderID:   uuid.New(),
		CartTotal: cart,
	}
	if *address != "" {
		event.Address = address
	} else {
		event.Latitude = ptr(*lat)
		event.Longitude = ptr(*lon)
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// Запоминаем хвост стрима ответов до публикации
	lastID := "$"
	if last, err := client.XRevRangeN(ctx, streamResolved, "+", "-", 1).Result(); err == nil && len(last) > 0 {
		lastID = last[0].ID
	}

	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: streamResolve,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: %s\n", streamResolve)
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Order ID: %s\n", event.OrderID)
	fmt.Printf("   Payload: %s\n", data)

	fmt.Printf("\nWaiting for response in %s...\n", streamResolved)

	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		streams, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{streamResolved, lastID},
			Count:   10,
			Block:   time.Second,
		}).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			log.Fatalf("Failed to read responses: %v", err)
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				lastID = msg.ID

				dataStr, ok := msg.Values["data"].(string)
				if !ok {
					continue
				}

				var response map[string]interface{}
				if err := json.Unmarshal([]byte(dataStr), &response); err != nil {
					continue
				}

				if orderID, ok := response["order_id"].(string); ok && orderID == event.OrderID.String() {
					fmt.Printf("\nResponse received\n")
					pretty, _ := json.MarshalIndent(response, "", "  ")
					fmt.Printf("%s\n", pretty)
					return
				}
			}
		}
	}

	fmt.Println("Timeout waiting for response")
}
