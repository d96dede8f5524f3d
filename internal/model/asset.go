package model

import (
	"errors"
	"time"
)

// CustomProperty is a single user-defined key/value pair on an asset.
// Order is preserved as entered.
type CustomProperty struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Asset represents a piece of tracked IT equipment.
type Asset struct {
	ID               int64            `json:"id"`
	Name             string           `json:"name"`
	Type             string           `json:"type"`
	Location         string           `json:"location"`
	Brand            string           `json:"brand,omitempty"`
	Model            string           `json:"model,omitempty"`
	SerialNumber     string           `json:"serial_number,omitempty"`
	Status           string           `json:"status"`
	AssignedTo       *int64           `json:"assigned_to"`
	PurchaseDate     string           `json:"purchase_date,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	Department       string           `json:"department,omitempty"`
	CustomProperties []CustomProperty `json:"custom_properties"`
	PhotoMime        string           `json:"photo_mime,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`

	// Resolved at read time (not stored). AssignedToStale marks an
	// assignee id that no longer resolves to a user record.
	AssignedToName  string `json:"assigned_to_name,omitempty"`
	AssignedToStale bool   `json:"assigned_to_stale,omitempty"`
}

// Asset statuses.
const (
	AssetStatusAvailable   = "available"
	AssetStatusAssigned    = "assigned"
	AssetStatusMaintenance = "maintenance"
	AssetStatusRetired     = "retired"
	AssetStatusGeneralUse  = "GeneralUse"
)

// AssetTypes lists the accepted equipment types.
var AssetTypes = []string{
	"Desktop", "Laptop", "Monitor", "Keyboard", "Phone", "Printer", "Tablet", "Server", "Other",
}

// AssetLocations lists the accepted office locations.
var AssetLocations = []string{"SSF", "MP", "LA", "Home"}

// AssetStatuses lists the accepted asset statuses.
var AssetStatuses = []string{
	AssetStatusAvailable, AssetStatusAssigned, AssetStatusMaintenance,
	AssetStatusRetired, AssetStatusGeneralUse,
}

func oneOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

// Validate applies defaults and returns the first violation found.
func (a *Asset) Validate() error {
	if a.Name == "" {
		return errors.New("Asset name is required")
	}
	if !oneOf(a.Type, AssetTypes) {
		return errors.New("Invalid asset type")
	}
	if !oneOf(a.Location, AssetLocations) {
		return errors.New("Invalid location")
	}
	if a.Status == "" {
		a.Status = AssetStatusAvailable
	}
	if !oneOf(a.Status, AssetStatuses) {
		return errors.New("Invalid status")
	}
	for _, p := range a.CustomProperties {
		if p.Key == "" {
			return errors.New("Custom property key is required")
		}
	}
	return nil
}
