package entities

import (
	d "datatable-backend/internal/descriptor"
	"datatable-backend/internal/i18n"
	"datatable-backend/internal/permission"
)

var referralStatuses = []d.Option{
	opt("PENDING", i18n.CommonStatesPending, "warning"),
	opt("ACTIVE", i18n.CommonStatesActive, "success"),
	opt("REJECTED", i18n.CommonStatesRejected, "danger"),
}

// Referral links a referrer to the user they brought in.
func Referral() *d.Bundle {
	b := newBundle("admin/ext/affiliate", "referral", "mlmReferral", permission.ResourceReferral,
		i18n.AffiliateReferralTitle, i18n.AffiliateReferralDescription)
	b.VirtualKeys = []string{"referrer", "referred"}
	b.Columns = []d.ColumnDefinition{
		idColumn(),
		userCompound("referrer", i18n.AffiliateReferralReferrer),
		userCompound("referred", i18n.AffiliateReferralReferred),
		{Key: "status", Title: i18n.CommonStatus, Type: d.ColumnSelect, Icon: "activity", Sortable: true, Filterable: true, Priority: 1,
			Render: &d.Render{Type: d.RenderBadge}, Options: referralStatuses},
		createdAtColumn(),
	}
	status := d.FieldDescriptor{Key: "status", Label: i18n.CommonStatus, Type: d.FieldSelect, Required: true, Options: referralStatuses, Default: "PENDING", Example: "PENDING"}
	referred := userSelect("referredId", i18n.AffiliateReferralReferred)
	referred.Example = "9a7c2e55-3f0d-4e8b-b6a1-2d4c8e0f1a93"
	referred.Rules = []d.Rule{{
		Kind:       d.RuleExpression,
		Expression: "record.referrerId != nil && value == record.referrerId",
		Message:    i18n.AffiliateReferralSelfReferral,
	}}
	b.Form = d.FormConfig{
		Create: &d.FormSection{Title: i18n.AffiliateReferralTitle, Description: i18n.AffiliateReferralDescription, Groups: []d.FormGroup{
			{ID: "relations", Title: i18n.CommonGroupsRelations, Icon: "users", Priority: 1, Fields: []d.FieldDescriptor{
				userSelect("referrerId", i18n.AffiliateReferralReferrer),
				referred,
			}},
			{ID: "status", Title: i18n.CommonGroupsStatus, Priority: 2, Fields: []d.FieldDescriptor{status}},
		}},
		Edit: &d.FormSection{Title: i18n.AffiliateReferralTitle, Description: i18n.AffiliateReferralDescription, Groups: []d.FormGroup{
			{ID: "status", Title: i18n.CommonGroupsStatus, Priority: 1, Fields: []d.FieldDescriptor{status}},
		}},
	}
	b.Analytics = d.AnalyticsConfig{
		{Type: d.GroupKPI, Items: []d.AnalyticsItem{
			kpi("total", i18n.CommonAnalyticsTotal, "mlmReferral", "share-2", nil),
			kpi("active", i18n.CommonAnalyticsActive, "mlmReferral", "check-circle", eq("status", "ACTIVE")),
			kpi("pending", i18n.CommonAnalyticsPending, "mlmReferral", "hourglass", eq("status", "PENDING")),
		}},
		{Type: d.GroupChart, Items: []d.AnalyticsItem{
			growthChart("mlmReferral"),
			pie("mlmReferral", "status", referralStatuses),
		}},
	}
	return b
}
