// internal/handlers/golf_server.go
package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/fairway/fairway/internal/analysis"
	"github.com/fairway/fairway/internal/golf"
)

// GolfServer bundles the process-wide session state: the connection hub,
// the group registry, and the coordinator that binds them.
type GolfServer struct {
	Hub         *golf.Hub
	Registry    *golf.Registry
	Coordinator *golf.Coordinator
}

// NewGolfServer constructs the hub, registry, and coordinator with the Go
// complexity scorer.
func NewGolfServer(logger *logrus.Logger) *GolfServer {
	hub := golf.NewHub()
	reg := golf.NewRegistry()
	return &GolfServer{
		Hub:         hub,
		Registry:    reg,
		Coordinator: golf.NewCoordinator(reg, hub, analysis.NewScorer(), logger),
	}
}
