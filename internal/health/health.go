// Package health reports composite readiness of the external integrations.
// It is a pure read of configuration presence; no live calls are made.
package health

import "time"

type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// Service exposes whether a backend client holds the credentials it needs.
type Service interface {
	Configured() bool
}

// Report is the aggregate health of all backends.
type Report struct {
	Status    Status            `json:"status"`
	Services  map[string]string `json:"services"`
	Timestamp time.Time         `json:"timestamp"`
}

type Aggregator struct {
	services map[string]Service
}

// New creates an Aggregator over the transcription and summarization
// backends.
func New(transcription, summarization Service) *Aggregator {
	return &Aggregator{
		services: map[string]Service{
			"transcription": transcription,
			"summarization": summarization,
		},
	}
}

// Check aggregates per-service readiness. One unhealthy backend degrades the
// report; only when every backend is down does the aggregate turn unhealthy.
func (a *Aggregator) Check() Report {
	report := Report{
		Services:  make(map[string]string, len(a.services)),
		Timestamp: time.Now(),
	}

	unhealthy := 0
	for name, svc := range a.services {
		if svc != nil && svc.Configured() {
			report.Services[name] = "healthy"
		} else {
			report.Services[name] = "unhealthy - credentials missing"
			unhealthy++
		}
	}

	switch unhealthy {
	case 0:
		report.Status = StatusHealthy
	case len(a.services):
		report.Status = StatusUnhealthy
	default:
		report.Status = StatusDegraded
	}

	return report
}
