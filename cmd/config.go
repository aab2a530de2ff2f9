package cmd

import (
	"fmt"
	"time"
)

// Config carries every externally supplied setting, loaded from the
// environment at process start.
type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	MatchingServiceURL     string
	KafkaHost              string
	KafkaOrderChangedTopic string
	JWTSecret              string
	DeliveryEstimationTime time.Duration
	BucketTTL              time.Duration
}

// PostgresDSN renders the GORM connection string.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}
