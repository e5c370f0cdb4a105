// The warehouse binary simulates the upstream inventory system: it
// learns about new products from the creation-control topic and emits
// periodic inventory-status snapshots for every id it tracks.
package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/dawid-splk/task1-store/internal/infrastructure/kafka"
)

type tracker struct {
	mu  sync.Mutex
	ids []int64
}

func (t *tracker) add(id int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ids = append(t.ids, id)
}

func (t *tracker) snapshot() []int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]int64(nil), t.ids...)
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	kafkaBrokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	controlTopic := getEnv("CONTROL_TOPIC", "creation-control")
	statusTopic := getEnv("STATUS_TOPIC", "inventory-status")
	consumerGroup := getEnv("CONSUMER_GROUP", "warehouse-simulator")
	interval := time.Duration(atoienv("STATUS_INTERVAL_SEC", 10)) * time.Second

	log.Println("[Warehouse] ========================================")
	log.Println("[Warehouse] Warehouse Simulator")
	log.Println("[Warehouse] ========================================")
	log.Printf("[Warehouse] Kafka: %v", kafkaBrokers)
	log.Printf("[Warehouse] Control topic: %s", controlTopic)
	log.Printf("[Warehouse] Status topic:  %s", statusTopic)
	log.Printf("[Warehouse] Interval: %s", interval)

	producer := kafka.NewProducer(kafkaBrokers, statusTopic)
	defer producer.Close()

	consumer := kafka.NewConsumer(kafkaBrokers, controlTopic, consumerGroup)
	defer consumer.Close()

	tracked := &tracker{}

	go func() {
		log.Println("[Warehouse] Listening for new products...")
		err := consumer.Consume(ctx, func(ctx context.Context, key, value []byte) error {
			id, err := strconv.ParseInt(string(key), 10, 64)
			if err != nil {
				log.Printf("[Warehouse] Ignoring control event with malformed key %q", key)
				return nil
			}
			tracked.add(id)
			log.Printf("[Warehouse] Now tracking product %d", id)
			return nil
		})
		if err != nil && ctx.Err() == nil {
			log.Printf("[Warehouse] Consumer error: %v", err)
		}
	}()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				for _, id := range tracked.snapshot() {
					quantity := float64(rand.Intn(500)) / 10
					key := strconv.FormatInt(id, 10)
					value := strconv.FormatFloat(quantity, 'f', -1, 64)
					if err := producer.Publish(ctx, key, []byte(value)); err != nil {
						log.Printf("[Warehouse] Failed to publish status for product %s: %v", key, err)
						continue
					}
					log.Printf("[Warehouse] Published status %s for product %s", value, key)
				}
			}
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[Warehouse] Shutting down...")
	cancel()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func atoienv(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}
