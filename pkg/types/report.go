package types

import "time"

type Endpoint struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Note string `json:"note,omitempty"`
}

type Report struct {
	RunID      string     `json:"run_id"`
	Stack      string     `json:"stack"`
	Monitoring bool       `json:"monitoring"`
	StartedAt  time.Time  `json:"started_at"`
	WaitedFor  string     `json:"waited_for"`
	Endpoints  []Endpoint `json:"endpoints"`
	Hints      []string   `json:"hints,omitempty"`
}

type ServiceInfo struct {
	Name        string   `json:"name"`
	Image       string   `json:"image"`
	Status      string   `json:"status"`
	ContainerID string   `json:"container_id,omitempty"`
	Ports       []string `json:"ports,omitempty"`
}

type StackStatus struct {
	Name         string        `json:"name"`
	Status       string        `json:"status"`
	ServiceCount int           `json:"service_count"`
	RunningCount int           `json:"running_count"`
	Services     []ServiceInfo `json:"services"`
}
