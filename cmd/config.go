package cmd

import "time"

// Config carries everything the service reads from the environment.
type Config struct {
	HTTPPort          string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	RedisAddr         string
	JWTSecret         string
	PaymentGatewayURL string
	PendingTimeout    time.Duration
}
