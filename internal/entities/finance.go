package entities

import (
	d "datatable-backend/internal/descriptor"
	"datatable-backend/internal/i18n"
	"datatable-backend/internal/permission"
)

// Currency lists fiat currencies. Currencies are seeded, so only the edit
// form exists.
func Currency() *d.Bundle {
	b := newBundle("admin/finance", "currency", "currency", permission.ResourceCurrency, i18n.FinanceCurrencyTitle, i18n.FinanceCurrencyDescription)
	b.Columns = []d.ColumnDefinition{
		{Key: "id", Title: i18n.FinanceCurrencyCode, Type: d.ColumnText, Icon: "hash", Sortable: true, Searchable: true, Priority: 1},
		{Key: "name", Title: i18n.CommonName, Type: d.ColumnText, Icon: "type", Sortable: true, Searchable: true, Priority: 1},
		{Key: "symbol", Title: i18n.FinanceCurrencySymbol, Type: d.ColumnText, Priority: 2},
		{Key: "precision", Title: i18n.FinanceCurrencyPrecision, Type: d.ColumnNumber, Sortable: true, Priority: 3, ExpandedOnly: true},
		{
			Key: "price", Title: i18n.CommonPrice, Type: d.ColumnNumber, Icon: "dollar-sign", Sortable: true, Priority: 2,
			Render: &d.Render{Type: d.RenderCurrency, Format: "USD"},
		},
		statusToggleColumn(),
	}
	b.Form = d.FormConfig{
		Edit: &d.FormSection{Title: i18n.FinanceCurrencyTitle, Description: i18n.FinanceCurrencyDescription, Groups: []d.FormGroup{
			{ID: "pricing", Title: i18n.CommonGroupsPricing, Icon: "dollar-sign", Priority: 1, Fields: []d.FieldDescriptor{
				{
					Key: "price", Label: i18n.CommonPrice, Type: d.FieldNumber, Required: true,
					Rules:   []d.Rule{{Kind: d.RuleMin, Value: 0}},
					Example: 1.08,
				},
				{
					Key: "precision", Label: i18n.FinanceCurrencyPrecision, Type: d.FieldNumber, Required: true,
					Rules:   []d.Rule{{Kind: d.RuleMin, Value: 0}, {Kind: d.RuleMax, Value: 8}},
					Default: 2, Example: 2,
				},
			}},
			{ID: "status", Title: i18n.CommonGroupsStatus, Icon: "toggle-right", Priority: 2, Fields: []d.FieldDescriptor{
				statusToggleField(),
			}},
		}},
	}
	b.Analytics = d.AnalyticsConfig{
		{Type: d.GroupKPI, Items: []d.AnalyticsItem{
			kpi("total", i18n.CommonAnalyticsTotal, "currency", "coins", nil),
			kpi("active", i18n.CommonAnalyticsActive, "currency", "check-circle", eq("status", true)),
		}},
	}
	return b
}

func BinaryDuration() *d.Bundle {
	b := newBundle("admin/finance/binary", "duration", "binaryDuration", permission.ResourceBinaryDuration,
		i18n.BinaryDurationTitle, i18n.BinaryDurationDescription)
	b.Columns = []d.ColumnDefinition{
		idColumn(),
		{Key: "duration", Title: i18n.BinaryDurationDuration, Type: d.ColumnNumber, Icon: "clock", Sortable: true, Priority: 1},
		{
			Key: "profitPercentage", Title: i18n.BinaryDurationProfitPercentage, Type: d.ColumnNumber, Icon: "percent",
			Sortable: true, Priority: 1, Render: &d.Render{Type: d.RenderProgress},
		},
		statusToggleColumn(),
		createdAtColumn(),
	}
	section := func() *d.FormSection {
		return &d.FormSection{Title: i18n.BinaryDurationTitle, Description: i18n.BinaryDurationDescription, Groups: []d.FormGroup{
			{ID: "basic", Title: i18n.CommonGroupsBasic, Icon: "clock", Priority: 1, Fields: []d.FieldDescriptor{
				{
					Key: "duration", Label: i18n.BinaryDurationDuration, Type: d.FieldNumber, Required: true,
					Rules:   []d.Rule{{Kind: d.RuleMin, Value: 1}, {Kind: d.RuleMax, Value: 1440}},
					Example: 5,
				},
				{
					Key: "profitPercentage", Label: i18n.BinaryDurationProfitPercentage, Type: d.FieldNumber, Required: true,
					Rules:   []d.Rule{{Kind: d.RuleMin, Value: 0}, {Kind: d.RuleMax, Value: 100}},
					Example: 85,
				},
			}},
			{ID: "status", Title: i18n.CommonGroupsStatus, Priority: 2, Fields: []d.FieldDescriptor{statusToggleField()}},
		}}
	}
	b.Form = d.FormConfig{Create: section(), Edit: section()}
	b.Analytics = d.AnalyticsConfig{
		{Type: d.GroupKPI, Items: []d.AnalyticsItem{
			kpi("total", i18n.CommonAnalyticsTotal, "binaryDuration", "clock", nil),
			kpi("active", i18n.CommonAnalyticsActive, "binaryDuration", "check-circle", eq("status", true)),
		}},
	}
	return b
}
