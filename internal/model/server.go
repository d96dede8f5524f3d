package model

import (
	"errors"
	"time"
)

// Server represents a standalone server record. Servers carry their own
// lifecycle and are not part of the asset assignment model.
type Server struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	IPAddress    string    `json:"ip_address"`
	Role         string    `json:"role,omitempty"`
	Environment  string    `json:"environment"`
	Status       string    `json:"status"`
	OS           string    `json:"os,omitempty"`
	Location     string    `json:"location,omitempty"`
	Owner        string    `json:"owner,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	SerialNumber string    `json:"serial_number,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Server environments.
var ServerEnvironments = []string{"Production", "Staging", "Development", "Lab"}

// Server statuses.
const (
	ServerStatusOnline         = "online"
	ServerStatusMaintenance    = "maintenance"
	ServerStatusOffline        = "offline"
	ServerStatusDecommissioned = "decommissioned"
)

// ServerStatuses lists the accepted server statuses.
var ServerStatuses = []string{
	ServerStatusOnline, ServerStatusMaintenance, ServerStatusOffline, ServerStatusDecommissioned,
}

// Validate applies defaults and returns the first violation found.
func (s *Server) Validate() error {
	if s.Name == "" {
		return errors.New("Server name is required")
	}
	if s.IPAddress == "" {
		return errors.New("IP address is required")
	}
	if s.Environment == "" {
		s.Environment = "Production"
	}
	if !oneOf(s.Environment, ServerEnvironments) {
		return errors.New("Invalid environment")
	}
	if s.Status == "" {
		s.Status = ServerStatusOnline
	}
	if !oneOf(s.Status, ServerStatuses) {
		return errors.New("Invalid status")
	}
	return nil
}
