package arq

type CreateARQDTO struct {
	ProjectID         string `json:"project_id" binding:"required"`
	DeviceProfileName string `json:"device_profile_name" binding:"required"`
}

// BindingDTO names the host, device resource provider and instance a
// request is bound to.
type BindingDTO struct {
	ARQUUID      string `json:"arq_uuid" binding:"required"`
	HostName     string `json:"host_name" binding:"required"`
	DeviceRPUUID string `json:"device_rp_uuid" binding:"required"`
	InstanceUUID string `json:"instance_uuid" binding:"required"`
}

type BindingsDTO struct {
	Bindings []BindingDTO `json:"bindings" binding:"required,len=1,dive"`
}
