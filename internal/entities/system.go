package entities

import (
	d "datatable-backend/internal/descriptor"
	"datatable-backend/internal/i18n"
	"datatable-backend/internal/permission"
)

// NotificationTemplate edits the seeded email, SMS and push templates. A body
// is only shown while its channel is enabled.
func NotificationTemplate() *d.Bundle {
	b := newBundle("admin/system/notification", "template", "notificationTemplate", permission.ResourceTemplate,
		i18n.SystemTemplateTitle, i18n.SystemTemplateDescription)
	channel := func(key string, title i18n.Key, icon string) d.ColumnDefinition {
		return d.ColumnDefinition{Key: key, Title: title, Type: d.ColumnBoolean, Icon: icon, Filterable: true, Priority: 2,
			Render: &d.Render{Type: d.RenderBadge, Variants: map[string]string{"true": "success", "false": "secondary"}}}
	}
	b.Columns = []d.ColumnDefinition{
		{Key: "id", Title: i18n.CommonID, Type: d.ColumnNumber, Sortable: true, Priority: 4, ExpandedOnly: true},
		{Key: "name", Title: i18n.CommonName, Type: d.ColumnText, Icon: "file-text", Sortable: true, Searchable: true, Priority: 1},
		{Key: "subject", Title: i18n.SystemTemplateSubject, Type: d.ColumnText, Searchable: true, Priority: 1},
		channel("email", i18n.SystemTemplateEmailChannel, "mail"),
		channel("sms", i18n.SystemTemplateSMSChannel, "message-square"),
		channel("push", i18n.SystemTemplatePushChannel, "bell"),
	}
	b.Form = d.FormConfig{
		Edit: &d.FormSection{Title: i18n.SystemTemplateTitle, Description: i18n.SystemTemplateDescription, Groups: []d.FormGroup{
			{ID: "basic", Title: i18n.CommonGroupsBasic, Icon: "file-text", Priority: 1, Fields: []d.FieldDescriptor{
				{
					Key: "subject", Label: i18n.SystemTemplateSubject, Type: d.FieldText, Required: true,
					Rules:   []d.Rule{{Kind: d.RuleMaxLength, Value: 255}},
					Example: "Welcome to %SITE_NAME%",
				},
			}},
			{ID: "channels", Title: i18n.CommonGroupsChannels, Icon: "radio", Priority: 2, Fields: []d.FieldDescriptor{
				{Key: "email", Label: i18n.SystemTemplateEmailChannel, Type: d.FieldToggle, Default: true},
				{Key: "sms", Label: i18n.SystemTemplateSMSChannel, Type: d.FieldToggle, Default: false},
				{Key: "push", Label: i18n.SystemTemplatePushChannel, Type: d.FieldToggle, Default: false},
			}},
			{ID: "content", Title: i18n.CommonGroupsContent, Icon: "align-left", Priority: 3, Fields: []d.FieldDescriptor{
				{
					Key: "emailBody", Label: i18n.SystemTemplateEmailBody, Type: d.FieldTextarea, Required: true,
					VisibleWhen: "record.email == true",
					Example:     "<p>Hello %FIRSTNAME%, welcome aboard.</p>",
				},
				{
					Key: "smsBody", Label: i18n.SystemTemplateSMSBody, Type: d.FieldTextarea, Required: true,
					VisibleWhen: "record.sms == true",
					Rules:       []d.Rule{{Kind: d.RuleMaxLength, Value: 160}},
					Example:     "Welcome %FIRSTNAME%!",
				},
				{
					Key: "pushBody", Label: i18n.SystemTemplatePushBody, Type: d.FieldTextarea, Required: true,
					VisibleWhen: "record.push == true",
					Rules:       []d.Rule{{Kind: d.RuleMaxLength, Value: 255}},
					Example:     "Welcome %FIRSTNAME%!",
				},
			}},
		}},
	}
	return b
}

var logActions = []d.Option{
	opt("CREATE", i18n.CommonStatesCreate, "success"),
	opt("UPDATE", i18n.CommonStatesUpdate, "info"),
	opt("DELETE", i18n.CommonStatesDelete, "danger"),
	opt("LOGIN", i18n.CommonStatesLogin, "secondary"),
}

// AuditLog is read-only: no forms are declared, and the create/edit/delete
// keys exist only so the permission set stays complete.
func AuditLog() *d.Bundle {
	b := newBundle("admin/system", "log", "adminActivity", permission.ResourceAuditLog, i18n.SystemLogTitle, i18n.SystemLogDescription)
	b.VirtualKeys = []string{"user"}
	b.Columns = []d.ColumnDefinition{
		idColumn(),
		userCompound("user", i18n.CommonUser),
		{Key: "action", Title: i18n.SystemLogAction, Type: d.ColumnSelect, Icon: "zap", Sortable: true, Filterable: true, Priority: 1,
			Render: &d.Render{Type: d.RenderBadge}, Options: logActions},
		{Key: "entity", Title: i18n.SystemLogEntity, Type: d.ColumnText, Icon: "database", Searchable: true, Filterable: true, Priority: 1},
		{Key: "ip", Title: i18n.SystemLogIP, Type: d.ColumnText, Icon: "globe", Searchable: true, Priority: 3, ExpandedOnly: true},
		createdAtColumn(),
	}
	b.Analytics = d.AnalyticsConfig{
		{Type: d.GroupKPI, Items: []d.AnalyticsItem{
			kpi("total", i18n.CommonAnalyticsTotal, "adminActivity", "activity", nil),
			kpi("logins", i18n.CommonStatesLogin, "adminActivity", "log-in", eq("action", "LOGIN")),
		}},
		{Type: d.GroupChart, Items: []d.AnalyticsItem{
			{
				ID: "activity", Title: i18n.SystemLogActivity, Model: "adminActivity", Metric: "activity",
				ChartType:  d.ChartBar,
				Timeframes: []d.Timeframe{d.Timeframe24h, d.Timeframe7d, d.Timeframe30d},
			},
			pie("adminActivity", "action", logActions),
		}},
	}
	return b
}
