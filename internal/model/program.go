package model

import (
	"errors"
	"strings"
	"time"
)

// Program owner kinds. Assets and servers both carry program inventories;
// OwnerKind disambiguates which table AssetID refers to.
const (
	ProgramOwnerAsset  = "asset"
	ProgramOwnerServer = "server"
)

// Program represents a piece of software installed on an asset or server.
type Program struct {
	ID        int64     `json:"id"`
	OwnerKind string    `json:"owner_kind"`
	AssetID   int64     `json:"asset_id"`
	Name      string    `json:"name"`
	Version   string    `json:"version,omitempty"`
	Vendor    string    `json:"vendor,omitempty"`
	LogoURL   string    `json:"logo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProgramNameKey normalizes a program name into the key used for
// per-asset duplicate detection.
func ProgramNameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// GuessLogoURL derives a logo URL when the caller supplies none:
// vendor domain first, icon-service slug otherwise.
func (p *Program) GuessLogoURL() string {
	if p.Vendor != "" {
		domain := strings.ReplaceAll(strings.ToLower(p.Vendor), " ", "") + ".com"
		return "https://logo.clearbit.com/" + domain
	}
	slug := strings.ReplaceAll(strings.ToLower(p.Name), " ", "-")
	return "https://api.iconify.design/logos/" + slug + ".svg"
}

// Validate returns the first violation found.
func (p *Program) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("Program name is required")
	}
	return nil
}
