package mq

import (
	"context"
	"time"
)

// LogEvent is one workflow execution log entry
type LogEvent struct {
	AutomationID string `json:"automationId"`
	Step         string `json:"step"`
	Message      string `json:"message"`
	Status       string `json:"status"`
	Timestamp    string `json:"timestamp"` // RFC3339, stamped at publish if empty
}

// routeForStep maps a workflow step to its queue and routing key.
// Automation step executions go to the automation queue, everything else is
// an observation.
func routeForStep(step string) (queue, key string) {
	if step == "automation" {
		return AutomationQueue, KeyAutomation
	}
	return ObservationQueue, KeyObservation
}

// PublishLogEvent publishes one workflow log entry to the queue its step
// routes to
func (p *Publisher) PublishLogEvent(ctx context.Context, event LogEvent) error {
	if event.Timestamp == "" {
		event.Timestamp = time.Now().Format(time.RFC3339)
	}
	queue, key := routeForStep(event.Step)
	return p.publishJSON(ctx, queue, key, event)
}
