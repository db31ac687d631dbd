package api

type Handlers struct {
	svc GovernanceService
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		svc: deps.Services.Governance,
	}
}

// NewHandlersWithService builds handlers over svc alone.
func NewHandlersWithService(svc GovernanceService) *Handlers {
	return &Handlers{svc: svc}
}
