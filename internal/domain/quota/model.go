package quota

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Usage tracks committed and pending consumption of one resource kind by a project.
type Usage struct {
	ID           uint      `gorm:"primaryKey;column:id" json:"-"`
	ProjectID    string    `gorm:"size:255;not null;uniqueIndex:idx_quota_usages_project_resource,priority:1;column:project_id" json:"project_id"`
	Resource     string    `gorm:"size:255;not null;uniqueIndex:idx_quota_usages_project_resource,priority:2;column:resource" json:"resource"`
	InUse        int       `gorm:"not null;default:0;column:in_use" json:"in_use"`
	Reserved     int       `gorm:"not null;default:0;column:reserved" json:"reserved"`
	UntilRefresh *int      `gorm:"column:until_refresh" json:"until_refresh,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Usage) TableName() string {
	return "quota_usages"
}

// Reservation is a pending delta against a Usage row.
type Reservation struct {
	ID        uint      `gorm:"primaryKey;column:id" json:"-"`
	UUID      string    `gorm:"type:varchar(36);uniqueIndex;not null;column:uuid" json:"uuid"`
	UsageID   uint      `gorm:"not null;index;column:usage_id" json:"-"`
	Usage     *Usage    `gorm:"foreignKey:UsageID;constraint:OnDelete:CASCADE" json:"-"`
	ProjectID string    `gorm:"size:255;not null;index;column:project_id" json:"project_id"`
	Resource  string    `gorm:"size:255;not null;column:resource" json:"resource"`
	Delta     int       `gorm:"not null;column:delta" json:"delta"`
	Expire    time.Time `gorm:"not null;index;column:expire" json:"expire"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Reservation) TableName() string {
	return "reservations"
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.UUID == "" {
		r.UUID = uuid.NewString()
	}
	return nil
}
