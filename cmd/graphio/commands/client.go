package commands

import (
	graphio "github.com/graphio/graphio-go"
	"github.com/graphio/graphio-go/logger"
)

// newClient builds a client from the ambient configuration for one command
// invocation
func newClient() (*graphio.Client, error) {
	return graphio.New(graphio.WithLogger(logger.Logger))
}
