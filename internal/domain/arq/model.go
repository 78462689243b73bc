package arq

import (
	"time"

	"github.com/google/uuid"
	"github.com/linskybing/accel-platform/internal/domain/attach"
	"github.com/linskybing/accel-platform/internal/domain/deviceprofile"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// State is the binding state of an accelerator request.
type State string

const (
	StateInitial    State = "Initial"    // Created, never bound
	StateBound      State = "Bound"      // Attached to host, device RP and instance
	StateUnbound    State = "Unbound"    // Released after a bind
	StateBindFailed State = "BindFailed" // Last bind handshake failed
)

// StateFilterResolved selects requests whose binding has been decided.
const StateFilterResolved = "resolved"

// ARQ is an accelerator request.
type ARQ struct {
	ID              uint                              `gorm:"primaryKey;column:id" json:"-"`
	UUID            string                            `gorm:"type:varchar(36);uniqueIndex;not null;column:uuid" json:"uuid"`
	ProjectID       string                            `gorm:"size:255;index;not null;column:project_id" json:"project_id"`
	DeviceProfileID uint                              `gorm:"not null;index;column:device_profile_id" json:"-"`
	DeviceProfile   *deviceprofile.DeviceProfile      `gorm:"foreignKey:DeviceProfileID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	State           State                             `gorm:"type:arq_state;not null;default:'Initial';column:state" json:"state"`
	HostName        string                            `gorm:"size:255;not null;default:'';column:host_name" json:"host_name"`
	DeviceRPUUID    string                            `gorm:"size:255;not null;default:'';column:device_rp_uuid" json:"device_rp_uuid"`
	InstanceUUID    string                            `gorm:"size:255;not null;default:'';index;column:instance_uuid" json:"instance_uuid"`
	AttachHandle    datatypes.JSONType[attach.Handle] `gorm:"type:jsonb;not null;default:'{}';column:attach_handle" json:"attach_handle"`
	Version         int                               `gorm:"not null;default:0;column:version" json:"-"`
	CreatedAt       time.Time                         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time                         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// DeviceProfileName is derived from the joined profile on every read.
	DeviceProfileName string `gorm:"-" json:"device_profile_name"`
}

func (ARQ) TableName() string {
	return "arqs"
}

func (a *ARQ) BeforeCreate(tx *gorm.DB) error {
	if a.UUID == "" {
		a.UUID = uuid.NewString()
	}
	return nil
}

// AfterFind recomputes the derived profile name when the profile was loaded.
func (a *ARQ) AfterFind(tx *gorm.DB) error {
	a.Hydrate()
	return nil
}

func (a *ARQ) Hydrate() {
	if a.DeviceProfile != nil {
		a.DeviceProfileName = a.DeviceProfile.Name
	}
}

func (a *ARQ) Handle() attach.Handle {
	return a.AttachHandle.Data()
}

// ListFilter narrows a listing. Empty fields match everything.
type ListFilter struct {
	State    string
	Instance string
}
