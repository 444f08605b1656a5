package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/stellarweave/galaxysim/pkg/galaxy"
	"github.com/stellarweave/galaxysim/pkg/space"
)

// HealthResponse reports server liveness.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Mode      string    `json:"mode"`
	Settled   bool      `json:"settled"`
	Nodes     int       `json:"nodes"`
	Uptime    string    `json:"uptime"`
}

// ConfigResponse is the current physics configuration plus layout policy.
type ConfigResponse struct {
	Physics  galaxy.PhysicsConfig `json:"physics"`
	Mode     string               `json:"mode"`
	Strategy string               `json:"strategy"`
}

// ConfigRequest updates the physics configuration and optionally the
// layout mode.
type ConfigRequest struct {
	Physics galaxy.PhysicsConfig `json:"physics"`
	Mode    string               `json:"mode,omitempty"`
}

// PreferencesRequest replaces the central preference vector.
type PreferencesRequest struct {
	Preferences []float64 `json:"preferences"`
}

// CentralRequest promotes a node to central.
type CentralRequest struct {
	NodeID uuid.UUID `json:"nodeId"`
}

// TraitsRequest replaces one node's trait values.
type TraitsRequest struct {
	NodeID uuid.UUID `json:"nodeId"`
	Traits []float64 `json:"traits"`
}

// Drag actions.
const (
	DragBegin = "begin"
	DragMove  = "move"
	DragEnd   = "end"
)

// DragRequest drives the interactive drag lifecycle.
type DragRequest struct {
	NodeID   uuid.UUID  `json:"nodeId"`
	Action   string     `json:"action"`
	Position space.Vec3 `json:"position"`
}

// StatusResponse acknowledges a state-changing request.
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
