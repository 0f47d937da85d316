// Package config loads GraphIO SDK configuration via Viper.
//
// Precedence: explicit file > environment variables (GRAPHIO_ prefix) > defaults.
package config

// Config is the root SDK configuration
type Config struct {
	Service ServiceConfig `mapstructure:"service"`
	MQ      MQConfig      `mapstructure:"mq"`
}

// ServiceConfig configures the ontology service HTTP transport
type ServiceConfig struct {
	BaseURL               string `mapstructure:"base_url"`
	ConnectTimeoutSeconds int    `mapstructure:"connect_timeout_seconds"`
	ReadTimeoutSeconds    int    `mapstructure:"read_timeout_seconds"`
	MaxRequestsPerMinute  int    `mapstructure:"max_requests_per_minute"` // 0 = unlimited
}

// MQConfig configures the RabbitMQ submit transport
type MQConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Exchange string `mapstructure:"exchange"`
}
