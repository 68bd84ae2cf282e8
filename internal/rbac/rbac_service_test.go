package rbac

import (
	"testing"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

func newTestService(t *testing.T) Service {
	t.Helper()

	m, err := model.NewModelFromString(testModel)
	require.NoError(t, err)

	enforcer, err := casbin.NewEnforcer(m)
	require.NoError(t, err)

	svc, err := NewService(enforcer)
	require.NoError(t, err)

	return svc
}

func TestEnforceEmployeePermissions(t *testing.T) {
	svc := newTestService(t)

	allowed, err := svc.Enforce(EnforceRequest{Role: RoleEmployee, Resource: "sessions", Action: "write"})
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.Enforce(EnforceRequest{Role: RoleEmployee, Resource: "alerts", Action: "resolve"})
	assert.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = svc.Enforce(EnforceRequest{Role: RoleEmployee, Resource: "sites", Action: "write"})
	assert.NoError(t, err)
	assert.False(t, allowed)
}

func TestEnforceSupervisorInheritsEmployee(t *testing.T) {
	svc := newTestService(t)

	allowed, err := svc.Enforce(EnforceRequest{Role: RoleSupervisor, Resource: "alerts", Action: "resolve"})
	assert.NoError(t, err)
	assert.True(t, allowed)

	// inherited from employee
	allowed, err = svc.Enforce(EnforceRequest{Role: RoleSupervisor, Resource: "checkins", Action: "write"})
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.Enforce(EnforceRequest{Role: RoleSupervisor, Resource: "sites", Action: "write"})
	assert.NoError(t, err)
	assert.False(t, allowed)
}

func TestEnforceAdminHasFullChain(t *testing.T) {
	svc := newTestService(t)

	for _, tc := range []struct {
		resource string
		action   string
	}{
		{"sites", "write"},
		{"alerts", "resolve"},
		{"sessions", "write"},
		{"employees", "write"},
	} {
		allowed, err := svc.Enforce(EnforceRequest{Role: RoleAdmin, Resource: tc.resource, Action: tc.action})
		assert.NoError(t, err)
		assert.True(t, allowed, "admin should be allowed %s:%s", tc.resource, tc.action)
	}
}

func TestEnforceUnknownRoleDenied(t *testing.T) {
	svc := newTestService(t)

	allowed, err := svc.Enforce(EnforceRequest{Role: "contractor", Resource: "sessions", Action: "write"})
	assert.NoError(t, err)
	assert.False(t, allowed)
}
