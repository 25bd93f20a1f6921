package kafka

import "time"

// Config holds Kafka connection parameters for the event producer.
type Config struct {
	Brokers []string

	// BatchTimeout bounds how long the writer buffers before flushing.
	// Zero means the default of 10ms.
	BatchTimeout time.Duration
}
