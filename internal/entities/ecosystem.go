package entities

import (
	d "datatable-backend/internal/descriptor"
	"datatable-backend/internal/i18n"
	"datatable-backend/internal/permission"
)

// Market lists ecosystem trading pairs. Fees and precisions live in the
// metadata document of the market row.
func Market() *d.Bundle {
	b := newBundle("admin/ecosystem", "market", "ecosystemMarket", permission.ResourceMarket,
		i18n.EcosystemMarketTitle, i18n.EcosystemMarketDescription)
	b.Columns = []d.ColumnDefinition{
		idColumn(),
		{
			Key: "market", Title: i18n.EcosystemMarketPair, Type: d.ColumnCompound, Icon: "candlestick-chart",
			Sortable: true, Searchable: true, Priority: 1,
			Render: &d.Render{Type: d.RenderCompound, Compound: &d.Compound{
				Primary:   &d.CompoundPart{Keys: []string{"currency", "pair"}, Title: i18n.EcosystemMarketPair},
				Secondary: &d.CompoundPart{Keys: []string{"metadata.precision.price"}, Title: i18n.EcosystemMarketPricePrecision},
			}},
		},
		{
			Key: "isTrending", Title: i18n.EcosystemMarketIsTrending, Type: d.ColumnBoolean, Icon: "trending-up",
			Filterable: true, Priority: 2, Render: &d.Render{Type: d.RenderBadge},
		},
		{
			Key: "isHot", Title: i18n.EcosystemMarketIsHot, Type: d.ColumnBoolean, Icon: "flame",
			Filterable: true, Priority: 2, Render: &d.Render{Type: d.RenderBadge},
		},
		{Key: "metadata.taker", Title: i18n.EcosystemMarketTakerFee, Type: d.ColumnNumber, Priority: 3, ExpandedOnly: true},
		{Key: "metadata.maker", Title: i18n.EcosystemMarketMakerFee, Type: d.ColumnNumber, Priority: 3, ExpandedOnly: true},
		statusToggleColumn(),
	}
	b.Form = d.FormConfig{
		Create: &d.FormSection{Title: i18n.EcosystemMarketTitle, Description: i18n.EcosystemMarketDescription, Groups: marketGroups()},
		Edit:   &d.FormSection{Title: i18n.EcosystemMarketTitle, Description: i18n.EcosystemMarketDescription, Groups: marketGroups()},
	}
	b.Analytics = d.AnalyticsConfig{
		{Type: d.GroupKPI, Items: []d.AnalyticsItem{
			kpi("total", i18n.CommonAnalyticsTotal, "ecosystemMarket", "candlestick-chart", nil),
			kpi("active", i18n.CommonAnalyticsActive, "ecosystemMarket", "check-circle", eq("status", true)),
			kpi("trending", i18n.EcosystemMarketIsTrending, "ecosystemMarket", "trending-up", eq("isTrending", true)),
			kpi("hot", i18n.EcosystemMarketIsHot, "ecosystemMarket", "flame", eq("isHot", true)),
		}},
		{Type: d.GroupChart, Items: []d.AnalyticsItem{growthChart("ecosystemMarket")}},
	}
	return b
}

func marketGroups() []d.FormGroup {
	symbol := []d.Rule{{Kind: d.RulePattern, Value: `^[A-Z0-9]{2,10}$`}}
	fee := []d.Rule{{Kind: d.RuleMin, Value: 0}, {Kind: d.RuleMax, Value: 100}}
	precision := []d.Rule{{Kind: d.RuleMin, Value: 0}, {Kind: d.RuleMax, Value: 18}}
	return []d.FormGroup{
		{ID: "basic", Title: i18n.CommonGroupsBasic, Icon: "candlestick-chart", Priority: 1, Fields: []d.FieldDescriptor{
			{Key: "currency", Label: i18n.CommonCurrency, Type: d.FieldText, Required: true, Rules: symbol, Example: "BTC"},
			{Key: "pair", Label: i18n.EcosystemMarketPair, Type: d.FieldText, Required: true, Rules: symbol, Example: "USDT"},
			{Key: "isTrending", Label: i18n.EcosystemMarketIsTrending, Type: d.FieldToggle, Default: false},
			{Key: "isHot", Label: i18n.EcosystemMarketIsHot, Type: d.FieldToggle, Default: false},
		}},
		{ID: "pricing", Title: i18n.CommonGroupsPricing, Icon: "percent", Priority: 2, Fields: []d.FieldDescriptor{
			{Key: "metadata.taker", Label: i18n.EcosystemMarketTakerFee, Type: d.FieldNumber, Required: true, Rules: fee, Example: 0.1},
			{Key: "metadata.maker", Label: i18n.EcosystemMarketMakerFee, Type: d.FieldNumber, Required: true, Rules: fee, Example: 0.1},
			{Key: "metadata.precision.price", Label: i18n.EcosystemMarketPricePrecision, Type: d.FieldNumber, Required: true, Rules: precision, Example: 2},
			{Key: "metadata.precision.amount", Label: i18n.EcosystemMarketAmountPrecision, Type: d.FieldNumber, Required: true, Rules: precision, Example: 6},
		}},
		{ID: "status", Title: i18n.CommonGroupsStatus, Priority: 3, Fields: []d.FieldDescriptor{statusToggleField()}},
	}
}

// Ledger reconciles off-chain balances per wallet. Rows are written by the
// ledger service; admins only correct the difference.
func Ledger() *d.Bundle {
	b := newBundle("admin/ecosystem", "ledger", "ecosystemPrivateLedger", permission.ResourceLedger,
		i18n.EcosystemLedgerTitle, i18n.EcosystemLedgerDescription)
	b.Columns = []d.ColumnDefinition{
		idColumn(),
		{Key: "currency", Title: i18n.CommonCurrency, Type: d.ColumnText, Icon: "coins", Sortable: true, Searchable: true, Filterable: true, Priority: 1},
		{Key: "chain", Title: i18n.EcosystemLedgerChain, Type: d.ColumnText, Icon: "link", Sortable: true, Filterable: true, Priority: 1,
			Render: &d.Render{Type: d.RenderBadge}},
		{Key: "network", Title: i18n.EcosystemLedgerNetwork, Type: d.ColumnText, Filterable: true, Priority: 2},
		{
			Key: "offchainDifference", Title: i18n.EcosystemLedgerOffchainDifference, Type: d.ColumnNumber, Icon: "scale",
			Sortable: true, Priority: 1, Render: &d.Render{Type: d.RenderCurrency},
		},
		createdAtColumn(),
	}
	b.Form = d.FormConfig{
		Edit: &d.FormSection{Title: i18n.EcosystemLedgerTitle, Description: i18n.EcosystemLedgerDescription, Groups: []d.FormGroup{
			{ID: "basic", Title: i18n.CommonGroupsBasic, Icon: "scale", Priority: 1, Fields: []d.FieldDescriptor{
				{Key: "offchainDifference", Label: i18n.EcosystemLedgerOffchainDifference, Type: d.FieldNumber, Required: true, Example: "-0.00042"},
			}},
		}},
	}
	b.Analytics = d.AnalyticsConfig{
		{Type: d.GroupKPI, Items: []d.AnalyticsItem{
			kpi("total", i18n.CommonAnalyticsTotal, "ecosystemPrivateLedger", "book", nil),
			{
				ID: "totalDifference", Title: i18n.EcosystemLedgerTotalDifference, Model: "ecosystemPrivateLedger",
				Metric: "totalDifference", Sum: "offchainDifference", Icon: "scale",
			},
		}},
		{Type: d.GroupChart, Items: []d.AnalyticsItem{growthChart("ecosystemPrivateLedger")}},
	}
	return b
}
