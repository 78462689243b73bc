package deviceprofile

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DeviceProfile is a named, reusable description of an accelerator
// configuration. The document is stored verbatim.
type DeviceProfile struct {
	ID        uint           `gorm:"primaryKey;column:id" json:"id"`
	UUID      string         `gorm:"type:varchar(36);uniqueIndex;not null;column:uuid" json:"uuid"`
	Name      string         `gorm:"size:255;uniqueIndex;not null;column:name" json:"name"`
	Document  datatypes.JSON `gorm:"type:jsonb;not null;column:document" json:"document"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (DeviceProfile) TableName() string {
	return "device_profiles"
}

func (dp *DeviceProfile) BeforeCreate(tx *gorm.DB) error {
	if dp.UUID == "" {
		dp.UUID = uuid.NewString()
	}
	return nil
}
