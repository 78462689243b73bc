package deviceprofile

import "encoding/json"

type CreateDeviceProfileDTO struct {
	Name     string          `json:"name" yaml:"name" binding:"required"`
	Document json.RawMessage `json:"document" yaml:"-" binding:"required"`
}

// UpdateDeviceProfileDTO carries an administrative edit. Nil fields are left unchanged.
type UpdateDeviceProfileDTO struct {
	Name     *string         `json:"name,omitempty"`
	Document json.RawMessage `json:"document,omitempty"`
}

// SeedEntry is one profile in the startup seed file. The document is
// written as a JSON string so it is stored exactly as given.
type SeedEntry struct {
	Name     string `yaml:"name"`
	Document string `yaml:"document"`
}
