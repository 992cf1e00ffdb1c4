package entities

import (
	d "datatable-backend/internal/descriptor"
	"datatable-backend/internal/i18n"
	"datatable-backend/internal/permission"
)

var userStatuses = []d.Option{
	opt("ACTIVE", i18n.CommonStatesActive, "success"),
	opt("INACTIVE", i18n.CommonStatesInactive, "secondary"),
	opt("SUSPENDED", i18n.CommonStatesSuspended, "warning"),
	opt("BANNED", i18n.CommonStatesBanned, "danger"),
}

// User is the CRM user list.
func User() *d.Bundle {
	b := newBundle("admin/crm", "user", "user", permission.ResourceUser, i18n.CrmUserTitle, i18n.CrmUserDescription)
	b.Columns = []d.ColumnDefinition{
		idColumn(),
		{
			Key:        "user",
			Title:      i18n.CommonUser,
			Type:       d.ColumnCompound,
			Icon:       "user",
			Sortable:   true,
			Searchable: true,
			Priority:   1,
			Render: &d.Render{Type: d.RenderCompound, Compound: &d.Compound{
				Image:     &d.CompoundPart{Keys: []string{"avatar"}, Title: i18n.CrmUserAvatar, Type: d.ColumnImage},
				Primary:   &d.CompoundPart{Keys: []string{"firstName", "lastName"}, Title: i18n.CommonName},
				Secondary: &d.CompoundPart{Keys: []string{"email"}, Title: i18n.CommonEmail},
			}},
		},
		{
			Key:         "roleId",
			Title:       i18n.CrmUserRole,
			Type:        d.ColumnSelect,
			Icon:        "shield",
			Filterable:  true,
			Priority:    2,
			Render:      &d.Render{Type: d.RenderBadge},
			APIEndpoint: "/api/admin/crm/role/options",
		},
		{
			Key:        "emailVerified",
			Title:      i18n.CrmUserEmailVerified,
			Type:       d.ColumnBoolean,
			Icon:       "mail-check",
			Filterable: true,
			Priority:   2,
			Render: &d.Render{Type: d.RenderBadge, Variants: map[string]string{
				"true": "success", "false": "secondary",
			}},
		},
		{
			Key:        "status",
			Title:      i18n.CommonStatus,
			Type:       d.ColumnSelect,
			Icon:       "activity",
			Sortable:   true,
			Filterable: true,
			Priority:   1,
			Render:     &d.Render{Type: d.RenderBadge},
			Options:    userStatuses,
		},
		createdAtColumn(),
	}
	b.Form = d.FormConfig{
		Create: &d.FormSection{Title: i18n.CrmUserTitle, Description: i18n.CrmUserDescription, Groups: userGroups()},
		Edit:   &d.FormSection{Title: i18n.CrmUserTitle, Description: i18n.CrmUserDescription, Groups: userGroups()},
	}
	b.Analytics = d.AnalyticsConfig{
		{Type: d.GroupKPI, Items: []d.AnalyticsItem{
			kpi("total", i18n.CommonAnalyticsTotal, "user", "users", nil),
			kpi("active", i18n.CommonAnalyticsActive, "user", "user-check", eq("status", "ACTIVE")),
			kpi("verified", i18n.CrmUserEmailVerified, "user", "mail-check", eq("emailVerified", true)),
		}},
		{Type: d.GroupChart, Items: []d.AnalyticsItem{
			growthChart("user"),
			pie("user", "status", userStatuses),
		}},
	}
	return b
}

func userGroups() []d.FormGroup {
	return []d.FormGroup{
		{ID: "basic", Title: i18n.CommonGroupsBasic, Icon: "user", Priority: 1, Fields: []d.FieldDescriptor{
			{
				Key: "firstName", Label: i18n.CrmUserFirstName, Type: d.FieldText, Required: true,
				Rules:   []d.Rule{{Kind: d.RuleMinLength, Value: 2}, {Kind: d.RuleMaxLength, Value: 50}},
				Example: "Jane",
			},
			{
				Key: "lastName", Label: i18n.CrmUserLastName, Type: d.FieldText, Required: true,
				Rules:   []d.Rule{{Kind: d.RuleMinLength, Value: 2}, {Kind: d.RuleMaxLength, Value: 50}},
				Example: "Doe",
			},
			{Key: "email", Label: i18n.CommonEmail, Type: d.FieldEmail, Required: true, Example: "jane.doe@example.com"},
			{Key: "avatar", Label: i18n.CrmUserAvatar, Type: d.FieldImage},
		}},
		{ID: "profile", Title: i18n.CrmUserProfile, Icon: "id-card", Priority: 2, Fields: []d.FieldDescriptor{
			{Key: "profile.bio", Label: i18n.CrmUserBio, Type: d.FieldTextarea, Rules: []d.Rule{{Kind: d.RuleMaxLength, Value: 500}}},
			{Key: "profile.location.country", Label: i18n.CrmUserCountry, Type: d.FieldText},
		}},
		{ID: "status", Title: i18n.CommonGroupsStatus, Icon: "shield", Priority: 3, Fields: []d.FieldDescriptor{
			{
				Key: "roleId", Label: i18n.CrmUserRole, Type: d.FieldSelect, Required: true,
				APIEndpoint: "/api/admin/crm/role/options", Example: 2,
			},
			{Key: "status", Label: i18n.CommonStatus, Type: d.FieldSelect, Required: true, Options: userStatuses, Default: "ACTIVE", Example: "ACTIVE"},
			{Key: "emailVerified", Label: i18n.CrmUserEmailVerified, Type: d.FieldToggle, Default: false},
		}},
	}
}

// Role lists roles with the permissions they grant. The permission list is a
// relation, so its column can be neither sorted, searched nor filtered.
func Role() *d.Bundle {
	b := newBundle("admin/crm", "role", "role", permission.ResourceRole, i18n.CrmRoleTitle, i18n.CrmRoleDescription)
	b.VirtualKeys = []string{"permissions"}
	b.Columns = []d.ColumnDefinition{
		{Key: "id", Title: i18n.CommonID, Type: d.ColumnNumber, Icon: "hash", Sortable: true, Priority: 3},
		{Key: "name", Title: i18n.CommonName, Type: d.ColumnText, Icon: "shield", Sortable: true, Searchable: true, Priority: 1},
		{
			Key:         "permissions",
			Title:       i18n.CrmRolePermissions,
			Type:        d.ColumnTags,
			Icon:        "key",
			Priority:    2,
			Render:      &d.Render{Type: d.RenderTags},
			APIEndpoint: "/api/admin/crm/permission/options",
		},
	}
	b.Form = d.FormConfig{
		Create: &d.FormSection{Title: i18n.CrmRoleTitle, Description: i18n.CrmRoleDescription, Groups: roleGroups()},
		Edit:   &d.FormSection{Title: i18n.CrmRoleTitle, Description: i18n.CrmRoleDescription, Groups: roleGroups()},
	}
	return b
}

func roleGroups() []d.FormGroup {
	return []d.FormGroup{
		{ID: "basic", Title: i18n.CommonGroupsBasic, Icon: "shield", Priority: 1, Fields: []d.FieldDescriptor{
			{
				Key: "name", Label: i18n.CommonName, Type: d.FieldText, Required: true,
				Rules:   []d.Rule{{Kind: d.RuleMinLength, Value: 2}, {Kind: d.RuleMaxLength, Value: 64}},
				Example: "Support Agent",
			},
		}},
		{ID: "permissions", Title: i18n.CrmRolePermissions, Icon: "key", Priority: 2, Fields: []d.FieldDescriptor{
			{
				Key: "permissions", Label: i18n.CrmRolePermissions, Type: d.FieldMultiselect,
				APIEndpoint: "/api/admin/crm/permission/options",
				Example:     []any{"access.user", "view.user"},
			},
		}},
	}
}
