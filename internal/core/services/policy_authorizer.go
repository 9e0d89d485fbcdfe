package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/restaurant_supply_app/internal/apperrors"
	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
	portssvc "github.com/SscSPs/restaurant_supply_app/internal/core/ports/services"
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const policyModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

func roleSubject(kind domain.RoleKind) string {
	return "role:" + string(kind)
}

// defaultPolicies is the role -> object/action table. Restaurants are read-only on the catalog.
func defaultPolicies() [][]string {
	restaurant := roleSubject(domain.RoleRestaurant)
	supplier := roleSubject(domain.RoleSupplier)
	admin := roleSubject(domain.RoleAdmin)

	policies := [][]string{
		{restaurant, domain.ObjectProduct, domain.ActionView},
		{restaurant, domain.ObjectProvider, domain.ActionView},
		{restaurant, domain.ObjectStock, domain.ActionView},
		{restaurant, domain.ObjectOrder, domain.ActionView},
		{restaurant, domain.ObjectOrder, domain.ActionCreate},
		{restaurant, domain.ObjectOrderHistory, domain.ActionView},
		{restaurant, domain.ObjectSettings, domain.ActionView},

		{supplier, domain.ObjectProduct, domain.ActionView},
		{supplier, domain.ObjectProvider, domain.ActionView},
		{supplier, domain.ObjectProvider, domain.ActionUpdate},
		{supplier, domain.ObjectProvider, domain.ActionToggle},
		{supplier, domain.ObjectStock, domain.ActionView},
		{supplier, domain.ObjectStock, domain.ActionRecord},
		{supplier, domain.ObjectOrder, domain.ActionView},
		{supplier, domain.ObjectOrder, domain.ActionAdvance},
		{supplier, domain.ObjectFulfillment, domain.ActionView},
		{supplier, domain.ObjectFulfillment, domain.ActionUpdate},
		{supplier, domain.ObjectSettings, domain.ActionView},
	}

	adminGrants := map[string][]string{
		domain.ObjectProduct:      {domain.ActionView, domain.ActionCreate, domain.ActionUpdate, domain.ActionDelete, domain.ActionToggle},
		domain.ObjectProvider:     {domain.ActionView, domain.ActionCreate, domain.ActionUpdate, domain.ActionDelete, domain.ActionToggle},
		domain.ObjectStock:        {domain.ActionView, domain.ActionRecord},
		domain.ObjectOrder:        {domain.ActionView, domain.ActionCreate, domain.ActionAdvance},
		domain.ObjectOrderHistory: {domain.ActionView},
		domain.ObjectFulfillment:  {domain.ActionView, domain.ActionUpdate},
		domain.ObjectUser:         {domain.ActionManage},
		domain.ObjectInviteCode:   {domain.ActionManage},
		domain.ObjectSettings:     {domain.ActionView, domain.ActionUpdate},
		domain.ObjectDashboard:    {domain.ActionView},
	}
	for obj, acts := range adminGrants {
		for _, act := range acts {
			policies = append(policies, []string{admin, obj, act})
		}
	}
	return policies
}

// PolicyAuthorizer enforces the role policy table with casbin.
type PolicyAuthorizer struct {
	enforcer *casbin.SyncedEnforcer
}

// NewPolicyAuthorizer builds an in-memory enforcer seeded with the default policies.
// It panics if the embedded model is invalid, which is a programming error.
func NewPolicyAuthorizer() *PolicyAuthorizer {
	a, err := NewPolicyAuthorizerWithPolicies(defaultPolicies())
	if err != nil {
		panic(fmt.Sprintf("policy authorizer: %v", err))
	}
	return a
}

// NewPolicyAuthorizerWithPolicies builds an enforcer with an explicit policy table.
func NewPolicyAuthorizerWithPolicies(policies [][]string) (*PolicyAuthorizer, error) {
	m, err := model.NewModelFromString(policyModel)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, err
	}
	if len(policies) > 0 {
		if _, err := enforcer.AddPolicies(policies); err != nil {
			return nil, err
		}
	}
	return &PolicyAuthorizer{enforcer: enforcer}, nil
}

var _ portssvc.AuthorizerSvc = (*PolicyAuthorizer)(nil)

// Authorize checks the actor's resolved role. Admin capability grants the admin row
// regardless of the nominal role.
func (a *PolicyAuthorizer) Authorize(ctx context.Context, actor domain.Actor, object, action string) error {
	if actor.UserID == "" || actor.OrganizationID == "" {
		return fmt.Errorf("%w: missing actor", apperrors.ErrUnauthorized)
	}
	if !actor.Active {
		return fmt.Errorf("%w: user is inactive", apperrors.ErrForbidden)
	}

	subjects := []string{roleSubject(actor.Role.Kind)}
	if actor.Role.CanAdmin && actor.Role.Kind != domain.RoleAdmin {
		subjects = append(subjects, roleSubject(domain.RoleAdmin))
	}
	for _, sub := range subjects {
		ok, err := a.enforcer.Enforce(sub, object, action)
		if err != nil {
			return fmt.Errorf("%w: policy evaluation failed: %v", apperrors.ErrInternal, err)
		}
		if ok {
			return nil
		}
	}
	return fmt.Errorf("%w: %s may not %s %s", apperrors.ErrForbidden, actor.Role.Kind, action, object)
}
