package module

import (
	listsdom "audiencehub/internal/services/lists/domain"
	memdom "audiencehub/internal/services/membership/domain"
	tenancydom "audiencehub/internal/services/tenancy/domain"
)

// Ports are the cross-vertical services this module mounts routes over
type Ports struct {
	Lists   listsdom.ServicePort
	Members memdom.ServicePort
	Tenancy tenancydom.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
