package config

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Ontology service defaults
	v.SetDefault("service.base_url", "http://ontology-svc:8080")
	v.SetDefault("service.connect_timeout_seconds", 5) // fail fast when the server is down
	v.SetDefault("service.read_timeout_seconds", 30)
	v.SetDefault("service.max_requests_per_minute", 0) // 0 disables the client-side limiter

	// RabbitMQ defaults
	v.SetDefault("mq.host", "rabbitmq-svc")
	v.SetDefault("mq.port", 5672)
	v.SetDefault("mq.user", "admin")
	v.SetDefault("mq.exchange", "ontology.workflow")
}

// BindSensitiveEnvVars explicitly binds sensitive configuration to environment variables
func BindSensitiveEnvVars(v *viper.Viper) {
	v.BindEnv("service.base_url", "ONTOLOGY_SERVICE", "GRAPHIO_SERVICE_BASE_URL")
	v.BindEnv("mq.host", "RABBITMQ_HOST", "GRAPHIO_MQ_HOST")
	v.BindEnv("mq.port", "RABBITMQ_PORT", "GRAPHIO_MQ_PORT")
	v.BindEnv("mq.user", "RABBITMQ_USER", "GRAPHIO_MQ_USER")
	v.BindEnv("mq.password", "RABBITMQ_PASSWORD", "GRAPHIO_MQ_PASSWORD")
	v.BindEnv("mq.exchange", "RABBITMQ_EXCHANGE", "GRAPHIO_MQ_EXCHANGE")
}
