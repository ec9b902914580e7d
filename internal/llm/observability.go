package llm

import "github.com/sirupsen/logrus"

// CallEvent records metadata about a single chat completion invocation.
type CallEvent struct {
	Type      GenerationType
	Model     string
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about LLM calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes LLM call events through a structured logger.
type LogObserver struct {
	log logrus.FieldLogger
}

// NewLogObserver creates an Observer that logs events.
func NewLogObserver(log logrus.FieldLogger) *LogObserver {
	return &LogObserver{log: log}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	entry := o.log.WithFields(logrus.Fields{
		"type":       event.Type,
		"model":      event.Model,
		"latency_ms": event.LatencyMs,
	})
	if event.Success {
		entry.Info("llm call complete")
		return
	}
	entry.WithField("error_code", event.ErrorCode).Warn("llm call failed")
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
