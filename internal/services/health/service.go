package health

// ServiceName is reported by the legacy health payload.
const ServiceName = "Broken Conductor Detection"

// Service encapsulates health-related checks.
type Service struct {
	name string
}

// NewService constructs a new health service.
func NewService() *Service {
	return &Service{name: ServiceName}
}

// Status returns the /api/health payload.
func (s *Service) Status() map[string]bool {
	return map[string]bool{"ok": true}
}

// Detailed returns the /health payload.
func (s *Service) Detailed() map[string]string {
	return map[string]string{"status": "healthy", "service": s.name}
}
