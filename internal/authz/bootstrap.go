package authz

import (
	"fmt"

	"github.com/Kerimcan19/InfluencerAgency/internal/constants"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Policies []Policy
}

// BuiltinRoleSeeds 平台三类角色的路由权限矩阵
// 资源级归属校验（公司只看自己的数据等）仍由 service 层负责
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.RoleAdmin,
			Policies: []Policy{
				{Object: "/*", Action: "*"},
			},
		},
		{
			Role: constants.RoleCompany,
			Policies: []Policy{
				{Object: "/users/me", Action: "GET"},
				{Object: "/affiliate/generate-link", Action: "PUT"},
				{Object: "/affiliate/reports", Action: "GET"},
				{Object: "/affiliate/campaigns", Action: "GET"},
				{Object: "/affiliate/campaigns/:id", Action: "GET"},
				{Object: "/influencers", Action: "GET"},
				{Object: "/dashboard", Action: "GET"},
				{Object: "/mlink/campaigns", Action: "GET"},
				{Object: "/mlink/reports", Action: "GET"},
				{Object: "/mlink/generate-link", Action: "PUT"},
				{Object: "/admin/influencers", Action: "*"},
				{Object: "/admin/influencers/:id", Action: "*"},
				{Object: "/admin/campaigns", Action: "POST"},
				{Object: "/admin/campaigns/import", Action: "POST"},
			},
		},
		{
			Role: constants.RoleInfluencer,
			Policies: []Policy{
				{Object: "/users/me", Action: "GET"},
				{Object: "/affiliate/reports", Action: "GET"},
				{Object: "/affiliate/campaigns", Action: "GET"},
				{Object: "/affiliate/campaigns/:id", Action: "GET"},
				{Object: "/reports", Action: "POST"},
				{Object: "/dashboard", Action: "GET"},
				{Object: "/mlink/generate-link", Action: "PUT"},
			},
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return err
		}

		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}

	return nil
}
