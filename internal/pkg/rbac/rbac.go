package rbac

import (
	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

// Objects and actions known to the permission matrix.
const (
	ObjectBalance  = "balance"
	ObjectTransfer = "transfer"
	ObjectAccounts = "accounts"
	ObjectPending  = "pending"

	ActionRead   = "read"
	ActionCreate = "create"
	ActionDecide = "decide"
)

// Enforcer answers "may this role perform this action on this object".
type Enforcer struct {
	e *casbin.Enforcer
}

// New builds an in-memory Casbin enforcer seeded with the role permission
// matrix: customers may read their balance and create transfers, admins may
// read all accounts and read/decide pending transfers.
func New() (*Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	policies := [][]string{
		{"customer", ObjectBalance, ActionRead},
		{"customer", ObjectTransfer, ActionCreate},
		{"admin", ObjectAccounts, ActionRead},
		{"admin", ObjectPending, ActionRead},
		{"admin", ObjectPending, ActionDecide},
	}
	if _, err := e.AddPolicies(policies); err != nil {
		return nil, err
	}

	return &Enforcer{e: e}, nil
}

// Allowed reports whether the role may perform the action on the object.
//
// Enforcement errors deny access; there is no failure mode where a broken
// policy grants more than it should.
func (en *Enforcer) Allowed(role, object, action string) bool {
	ok, err := en.e.Enforce(role, object, action)
	return ok && err == nil
}
