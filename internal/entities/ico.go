package entities

import (
	d "datatable-backend/internal/descriptor"
	"datatable-backend/internal/i18n"
	"datatable-backend/internal/permission"
)

var icoStatuses = []d.Option{
	opt("ACTIVE", i18n.CommonStatesActive, "success"),
	opt("SUCCESS", i18n.CommonStatesSuccess, "primary"),
	opt("FAILED", i18n.CommonStatesFailed, "danger"),
	opt("UPCOMING", i18n.CommonStatesUpcoming, "info"),
	opt("PENDING", i18n.CommonStatesPending, "warning"),
	opt("REJECTED", i18n.CommonStatesRejected, "danger"),
	opt("DISABLED", i18n.CommonStatesDisabled, "secondary"),
}

// ICOOffer lists launchpad token offerings.
func ICOOffer() *d.Bundle {
	b := newBundle("admin/ext/ico", "offer", "icoTokenOffering", permission.ResourceICOOffer, i18n.ICOOfferTitle, i18n.ICOOfferDescription)
	b.Columns = []d.ColumnDefinition{
		idColumn(),
		{
			Key: "token", Title: i18n.ICOOfferToken, Type: d.ColumnCompound, Icon: "rocket",
			Sortable: true, Searchable: true, Priority: 1,
			Render: &d.Render{Type: d.RenderCompound, Compound: &d.Compound{
				Image:     &d.CompoundPart{Keys: []string{"icon"}, Title: i18n.CommonImage, Type: d.ColumnImage},
				Primary:   &d.CompoundPart{Keys: []string{"name"}, Title: i18n.CommonName},
				Secondary: &d.CompoundPart{Keys: []string{"symbol"}, Title: i18n.ICOOfferSymbol},
			}},
		},
		{Key: "status", Title: i18n.CommonStatus, Type: d.ColumnSelect, Icon: "activity", Sortable: true, Filterable: true, Priority: 1,
			Render: &d.Render{Type: d.RenderBadge}, Options: icoStatuses},
		{Key: "tokenPrice", Title: i18n.ICOOfferTokenPrice, Type: d.ColumnNumber, Sortable: true, Priority: 2, Render: &d.Render{Type: d.RenderCurrency}},
		{Key: "targetAmount", Title: i18n.ICOOfferTargetAmount, Type: d.ColumnNumber, Sortable: true, Priority: 2, Render: &d.Render{Type: d.RenderCurrency}},
		{Key: "participants", Title: i18n.ICOOfferParticipants, Type: d.ColumnNumber, Icon: "users", Sortable: true, Priority: 2},
		{Key: "startDate", Title: i18n.ICOOfferStartDate, Type: d.ColumnDate, Sortable: true, Priority: 3, ExpandedOnly: true},
		{Key: "endDate", Title: i18n.ICOOfferEndDate, Type: d.ColumnDate, Sortable: true, Priority: 2},
	}
	b.Form = d.FormConfig{
		Create: &d.FormSection{Title: i18n.ICOOfferTitle, Description: i18n.ICOOfferDescription, Groups: icoGroups()},
		Edit:   &d.FormSection{Title: i18n.ICOOfferTitle, Description: i18n.ICOOfferDescription, Groups: icoGroups()},
	}
	b.Analytics = d.AnalyticsConfig{
		{Type: d.GroupKPI, Items: []d.AnalyticsItem{
			kpi("total", i18n.CommonAnalyticsTotal, "icoTokenOffering", "rocket", nil),
			kpi("active", i18n.CommonAnalyticsActive, "icoTokenOffering", "play", eq("status", "ACTIVE")),
			kpi("pending", i18n.CommonAnalyticsPending, "icoTokenOffering", "hourglass", eq("status", "PENDING")),
			{ID: "participants", Title: i18n.ICOOfferParticipants, Model: "icoTokenOffering", Metric: "participants", Sum: "participants", Icon: "users"},
		}},
		{Type: d.GroupChart, Items: []d.AnalyticsItem{
			growthChart("icoTokenOffering", d.Timeframe30d, d.Timeframe3m, d.Timeframe6m, d.Timeframe1y),
			pie("icoTokenOffering", "status", icoStatuses[:4]),
		}},
	}
	return b
}

func icoGroups() []d.FormGroup {
	return []d.FormGroup{
		{ID: "basic", Title: i18n.CommonGroupsBasic, Icon: "rocket", Priority: 1, Fields: []d.FieldDescriptor{
			{
				Key: "name", Label: i18n.CommonName, Type: d.FieldText, Required: true,
				Rules:   []d.Rule{{Kind: d.RuleMinLength, Value: 2}, {Kind: d.RuleMaxLength, Value: 100}},
				Example: "Rocket Token",
			},
			{
				Key: "symbol", Label: i18n.ICOOfferSymbol, Type: d.FieldText, Required: true,
				Rules:   []d.Rule{{Kind: d.RulePattern, Value: `^[A-Z0-9]{2,10}$`, Message: i18n.ICOOfferSymbolFormat}},
				Example: "RKT",
			},
			{Key: "icon", Label: i18n.CommonImage, Type: d.FieldImage},
		}},
		{ID: "pricing", Title: i18n.CommonGroupsPricing, Icon: "dollar-sign", Priority: 2, Fields: []d.FieldDescriptor{
			{Key: "tokenPrice", Label: i18n.ICOOfferTokenPrice, Type: d.FieldNumber, Required: true, Rules: []d.Rule{{Kind: d.RuleMin, Value: "0.00000001"}}, Example: 0.05},
			{Key: "targetAmount", Label: i18n.ICOOfferTargetAmount, Type: d.FieldNumber, Required: true, Rules: []d.Rule{{Kind: d.RuleMin, Value: 1}}, Example: 500000},
		}},
		{ID: "schedule", Title: i18n.CommonGroupsSettings, Icon: "calendar", Priority: 3, Fields: []d.FieldDescriptor{
			{Key: "startDate", Label: i18n.ICOOfferStartDate, Type: d.FieldDatetime, Required: true, Example: "2025-01-01T00:00:00Z"},
			{
				Key: "endDate", Label: i18n.ICOOfferEndDate, Type: d.FieldDatetime, Required: true,
				Rules: []d.Rule{{
					Kind:       d.RuleExpression,
					Expression: "record.startDate != nil && value <= record.startDate",
					Message:    i18n.ICOOfferEndBeforeStart,
				}},
				Example: "2025-03-01T00:00:00Z",
			},
		}},
		{ID: "status", Title: i18n.CommonGroupsStatus, Priority: 4, Fields: []d.FieldDescriptor{
			{Key: "status", Label: i18n.CommonStatus, Type: d.FieldSelect, Required: true, Options: icoStatuses, Default: "PENDING", Example: "UPCOMING"},
		}},
	}
}
