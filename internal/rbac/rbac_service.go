package rbac

import (
	"sync"

	"github.com/casbin/casbin/v2"
)

const (
	RoleEmployee   = "employee"
	RoleSupervisor = "supervisor"
	RoleAdmin      = "admin"
)

type EnforceRequest struct {
	Role     string
	Resource string
	Action   string
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req EnforceRequest) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

func NewService(enforcer *casbin.Enforcer) (Service, error) {
	s := &service{enforcer: enforcer}
	if err := s.loadDefaultPolicy(); err != nil {
		return nil, err
	}
	return s, nil
}

// loadDefaultPolicy installs the static role model. Roles form a chain:
// admin inherits supervisor, supervisor inherits employee.
func (s *service) loadDefaultPolicy() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enforcer.ClearPolicy()

	policies := [][]string{
		{RoleEmployee, "sessions", "read"},
		{RoleEmployee, "sessions", "write"},
		{RoleEmployee, "checkins", "read"},
		{RoleEmployee, "checkins", "write"},
		{RoleEmployee, "paircodes", "read"},
		{RoleEmployee, "paircodes", "write"},
		{RoleEmployee, "sites", "read"},

		{RoleSupervisor, "alerts", "read"},
		{RoleSupervisor, "alerts", "resolve"},
		{RoleSupervisor, "employees", "read"},
		{RoleSupervisor, "pairs", "read"},

		{RoleAdmin, "sites", "write"},
		{RoleAdmin, "pairs", "write"},
		{RoleAdmin, "employees", "write"},
	}

	for _, p := range policies {
		if _, err := s.enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return err
		}
	}

	groupings := [][]string{
		{RoleSupervisor, RoleEmployee},
		{RoleAdmin, RoleSupervisor},
	}

	for _, g := range groupings {
		if _, err := s.enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return err
		}
	}

	return nil
}

func (s *service) Enforce(req EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enforcer.Enforce(req.Role, req.Resource, req.Action)
}
