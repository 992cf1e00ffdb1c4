package entities

import (
	d "datatable-backend/internal/descriptor"
	"datatable-backend/internal/i18n"
	"datatable-backend/internal/permission"
)

func ForexSignal() *d.Bundle {
	b := newBundle("admin/ext/forex", "signal", "forexSignal", permission.ResourceForexSignal,
		i18n.ForexSignalTitle, i18n.ForexSignalDescription)
	b.Columns = []d.ColumnDefinition{
		idColumn(),
		{Key: "image", Title: i18n.CommonImage, Type: d.ColumnImage, Priority: 2},
		{Key: "title", Title: i18n.CommonTitle, Type: d.ColumnText, Icon: "signal", Sortable: true, Searchable: true, Priority: 1},
		statusToggleColumn(),
		createdAtColumn(),
	}
	section := func() *d.FormSection {
		return &d.FormSection{Title: i18n.ForexSignalTitle, Description: i18n.ForexSignalDescription, Groups: []d.FormGroup{
			{ID: "basic", Title: i18n.CommonGroupsBasic, Icon: "signal", Priority: 1, Fields: []d.FieldDescriptor{
				{
					Key: "title", Label: i18n.CommonTitle, Type: d.FieldText, Required: true,
					Rules:   []d.Rule{{Kind: d.RuleMaxLength, Value: 191}},
					Example: "EUR/USD breakout",
				},
				{Key: "image", Label: i18n.CommonImage, Type: d.FieldImage},
				statusToggleField(),
			}},
		}}
	}
	b.Form = d.FormConfig{Create: section(), Edit: section()}
	b.Analytics = d.AnalyticsConfig{
		{Type: d.GroupKPI, Items: []d.AnalyticsItem{
			kpi("total", i18n.CommonAnalyticsTotal, "forexSignal", "signal", nil),
			kpi("active", i18n.CommonAnalyticsActive, "forexSignal", "check-circle", eq("status", true)),
		}},
	}
	return b
}

var (
	offerTypes = []d.Option{
		opt("BUY", i18n.CommonStatesBuy, "success"),
		opt("SELL", i18n.CommonStatesSell, "danger"),
	}
	priceModels = []d.Option{
		opt("FIXED", i18n.CommonStatesFixed, "primary"),
		opt("MARGIN", i18n.CommonStatesMargin, "info"),
	}
	offerStatuses = []d.Option{
		opt("DRAFT", i18n.CommonStatesDraft, "secondary"),
		opt("PENDING_APPROVAL", i18n.CommonStatesPendingApproval, "warning"),
		opt("ACTIVE", i18n.CommonStatesActive, "success"),
		opt("PAUSED", i18n.CommonStatesPaused, "secondary"),
		opt("COMPLETED", i18n.CommonStatesCompleted, "info"),
		opt("CANCELLED", i18n.CommonStatesCancelled, "secondary"),
		opt("REJECTED", i18n.CommonStatesRejected, "danger"),
		opt("EXPIRED", i18n.CommonStatesExpired, "secondary"),
	}
)

// P2POffer lists peer-to-peer offers. A fixed offer states its price, a margin
// offer floats against the market.
func P2POffer() *d.Bundle {
	b := newBundle("admin/ext/p2p", "offer", "p2pOffer", permission.ResourceP2POffer, i18n.P2POfferTitle, i18n.P2POfferDescription)
	b.VirtualKeys = []string{"user"}
	b.Columns = []d.ColumnDefinition{
		idColumn(),
		userCompound("user", i18n.CommonUser),
		{Key: "type", Title: i18n.CommonType, Type: d.ColumnSelect, Icon: "arrow-left-right", Sortable: true, Filterable: true, Priority: 1,
			Render: &d.Render{Type: d.RenderBadge}, Options: offerTypes},
		{Key: "currency", Title: i18n.CommonCurrency, Type: d.ColumnText, Icon: "coins", Sortable: true, Searchable: true, Filterable: true, Priority: 1},
		{Key: "walletType", Title: i18n.CommonWalletType, Type: d.ColumnSelect, Filterable: true, Priority: 3, ExpandedOnly: true,
			Render: &d.Render{Type: d.RenderBadge}, Options: walletTypes},
		{Key: "priceModel", Title: i18n.P2POfferPriceModel, Type: d.ColumnSelect, Filterable: true, Priority: 2,
			Render: &d.Render{Type: d.RenderBadge}, Options: priceModels},
		{Key: "price", Title: i18n.CommonPrice, Type: d.ColumnNumber, Sortable: true, Priority: 1, Render: &d.Render{Type: d.RenderCurrency}},
		{Key: "minLimit", Title: i18n.P2POfferMinLimit, Type: d.ColumnNumber, Sortable: true, Priority: 3, ExpandedOnly: true},
		{Key: "maxLimit", Title: i18n.P2POfferMaxLimit, Type: d.ColumnNumber, Sortable: true, Priority: 3, ExpandedOnly: true},
		{Key: "status", Title: i18n.CommonStatus, Type: d.ColumnSelect, Icon: "activity", Sortable: true, Filterable: true, Priority: 1,
			Render: &d.Render{Type: d.RenderBadge}, Options: offerStatuses},
		createdAtColumn(),
	}
	b.Form = d.FormConfig{
		Create: &d.FormSection{Title: i18n.P2POfferTitle, Description: i18n.P2POfferDescription, Groups: offerGroups()},
		Edit:   &d.FormSection{Title: i18n.P2POfferTitle, Description: i18n.P2POfferDescription, Groups: offerGroups()},
	}
	b.Analytics = d.AnalyticsConfig{
		{Type: d.GroupKPI, Items: []d.AnalyticsItem{
			kpi("total", i18n.CommonAnalyticsTotal, "p2pOffer", "arrow-left-right", nil),
			kpi("active", i18n.CommonAnalyticsActive, "p2pOffer", "check-circle", eq("status", "ACTIVE")),
			kpi("pending", i18n.CommonAnalyticsPending, "p2pOffer", "hourglass", eq("status", "PENDING_APPROVAL")),
		}},
		{Type: d.GroupChart, Items: []d.AnalyticsItem{
			growthChart("p2pOffer"),
			pie("p2pOffer", "status", offerStatuses),
		}},
	}
	return b
}

func offerGroups() []d.FormGroup {
	return []d.FormGroup{
		{ID: "basic", Title: i18n.CommonGroupsBasic, Icon: "arrow-left-right", Priority: 1, Fields: []d.FieldDescriptor{
			{Key: "type", Label: i18n.CommonType, Type: d.FieldSelect, Required: true, Options: offerTypes, Example: "BUY"},
			{Key: "currency", Label: i18n.CommonCurrency, Type: d.FieldText, Required: true, Example: "USDT"},
			{Key: "walletType", Label: i18n.CommonWalletType, Type: d.FieldSelect, Required: true, Options: walletTypes, Example: "SPOT"},
		}},
		{ID: "pricing", Title: i18n.CommonGroupsPricing, Icon: "dollar-sign", Priority: 2, Fields: []d.FieldDescriptor{
			{Key: "priceModel", Label: i18n.P2POfferPriceModel, Type: d.FieldSelect, Required: true, Options: priceModels, Default: "FIXED", Example: "FIXED"},
			{
				Key: "price", Label: i18n.CommonPrice, Type: d.FieldNumber, Required: true,
				VisibleWhen: `record.priceModel == "FIXED"`,
				Rules:       []d.Rule{{Kind: d.RuleMin, Value: 0}},
				Example:     1.02,
			},
			{
				Key: "margin", Label: i18n.P2POfferMargin, Type: d.FieldNumber, Required: true,
				VisibleWhen: `record.priceModel == "MARGIN"`,
				Rules:       []d.Rule{{Kind: d.RuleMin, Value: -100}, {Kind: d.RuleMax, Value: 100}},
				Example:     2.5,
			},
		}},
		{ID: "limits", Title: i18n.CommonGroupsLimits, Icon: "sliders", Priority: 3, Fields: []d.FieldDescriptor{
			{Key: "amount", Label: i18n.CommonAmount, Type: d.FieldNumber, Required: true, Rules: []d.Rule{{Kind: d.RuleMin, Value: 0}}, Example: 5000},
			{Key: "minLimit", Label: i18n.P2POfferMinLimit, Type: d.FieldNumber, Required: true, Rules: []d.Rule{{Kind: d.RuleMin, Value: 0}}, Example: 10},
			{
				Key: "maxLimit", Label: i18n.P2POfferMaxLimit, Type: d.FieldNumber, Required: true,
				Rules: []d.Rule{
					{Kind: d.RuleMin, Value: 0},
					{Kind: d.RuleExpression, Expression: "record.minLimit != nil && value < record.minLimit", Message: i18n.P2POfferMaxBelowMin},
				},
				Example: 1000,
			},
		}},
		{ID: "content", Title: i18n.CommonGroupsContent, Icon: "file-text", Priority: 4, Fields: []d.FieldDescriptor{
			{Key: "terms", Label: i18n.P2POfferTerms, Type: d.FieldTextarea, Rules: []d.Rule{{Kind: d.RuleMaxLength, Value: 2000}}},
		}},
		{ID: "status", Title: i18n.CommonGroupsStatus, Priority: 5, Fields: []d.FieldDescriptor{
			{Key: "status", Label: i18n.CommonStatus, Type: d.FieldSelect, Required: true, Options: offerStatuses, Default: "PENDING_APPROVAL", Example: "ACTIVE"},
		}},
	}
}

var (
	tradingStyles = []d.Option{
		opt("SCALPING", i18n.CopyTradingLeaderStylesScalping, "danger"),
		opt("DAY", i18n.CopyTradingLeaderStylesDay, "warning"),
		opt("SWING", i18n.CopyTradingLeaderStylesSwing, "info"),
		opt("POSITION", i18n.CopyTradingLeaderStylesPosition, "primary"),
	}
	riskLevels = []d.Option{
		opt("LOW", i18n.CommonStatesLow, "success"),
		opt("MEDIUM", i18n.CommonStatesMedium, "warning"),
		opt("HIGH", i18n.CommonStatesHigh, "danger"),
	}
	leaderStatuses = []d.Option{
		opt("ACTIVE", i18n.CommonStatesActive, "success"),
		opt("INACTIVE", i18n.CommonStatesInactive, "secondary"),
		opt("SUSPENDED", i18n.CommonStatesSuspended, "danger"),
	}
)

// CopyTradingLeader lists traders others can follow. Leaders apply from the
// user side, so admins only get the edit form.
func CopyTradingLeader() *d.Bundle {
	b := newBundle("admin/ext/copy-trading", "leader", "copyTradingLeader", permission.ResourceCopyTradingLeader,
		i18n.CopyTradingLeaderTitle, i18n.CopyTradingLeaderDescription)
	b.Columns = []d.ColumnDefinition{
		idColumn(),
		{
			Key: "leader", Title: i18n.CopyTradingLeaderDisplayName, Type: d.ColumnCompound, Icon: "crown",
			Sortable: true, Searchable: true, Priority: 1,
			Render: &d.Render{Type: d.RenderCompound, Compound: &d.Compound{
				Image:   &d.CompoundPart{Keys: []string{"avatar"}, Title: i18n.CrmUserAvatar, Type: d.ColumnImage},
				Primary: &d.CompoundPart{Keys: []string{"displayName"}, Title: i18n.CopyTradingLeaderDisplayName},
				Metadata: []d.CompoundPart{
					{Keys: []string{"totalFollowers"}, Title: i18n.CopyTradingLeaderTotalFollowers, Type: d.ColumnNumber},
				},
			}},
		},
		{Key: "tradingStyle", Title: i18n.CopyTradingLeaderTradingStyle, Type: d.ColumnSelect, Filterable: true, Priority: 2,
			Render: &d.Render{Type: d.RenderBadge}, Options: tradingStyles},
		{Key: "riskLevel", Title: i18n.CopyTradingLeaderRiskLevel, Type: d.ColumnSelect, Icon: "gauge", Sortable: true, Filterable: true, Priority: 1,
			Render: &d.Render{Type: d.RenderBadge}, Options: riskLevels},
		{Key: "winRate", Title: i18n.CopyTradingLeaderWinRate, Type: d.ColumnRating, Icon: "target", Sortable: true, Priority: 1},
		{Key: "profitSharePercent", Title: i18n.CopyTradingLeaderProfitShare, Type: d.ColumnNumber, Sortable: true, Priority: 2},
		{Key: "totalFollowers", Title: i18n.CopyTradingLeaderTotalFollowers, Type: d.ColumnNumber, Icon: "users", Sortable: true, Priority: 2},
		{Key: "status", Title: i18n.CommonStatus, Type: d.ColumnSelect, Sortable: true, Filterable: true, Priority: 1,
			Render: &d.Render{Type: d.RenderBadge}, Options: leaderStatuses},
		createdAtColumn(),
	}
	b.Form = d.FormConfig{
		Edit: &d.FormSection{Title: i18n.CopyTradingLeaderTitle, Description: i18n.CopyTradingLeaderDescription, Groups: []d.FormGroup{
			{ID: "basic", Title: i18n.CommonGroupsBasic, Icon: "crown", Priority: 1, Fields: []d.FieldDescriptor{
				{
					Key: "displayName", Label: i18n.CopyTradingLeaderDisplayName, Type: d.FieldText, Required: true,
					Rules:   []d.Rule{{Kind: d.RuleMinLength, Value: 2}, {Kind: d.RuleMaxLength, Value: 50}},
					Example: "AlphaTrader",
				},
				{Key: "bio", Label: i18n.CopyTradingLeaderBio, Type: d.FieldTextarea, Rules: []d.Rule{{Kind: d.RuleMaxLength, Value: 1000}}},
				{Key: "avatar", Label: i18n.CrmUserAvatar, Type: d.FieldImage},
			}},
			{ID: "settings", Title: i18n.CommonGroupsSettings, Icon: "settings", Priority: 2, Fields: []d.FieldDescriptor{
				{Key: "tradingStyle", Label: i18n.CopyTradingLeaderTradingStyle, Type: d.FieldSelect, Required: true, Options: tradingStyles, Example: "SWING"},
				{Key: "riskLevel", Label: i18n.CopyTradingLeaderRiskLevel, Type: d.FieldSelect, Required: true, Options: riskLevels, Example: "MEDIUM"},
				{
					Key: "profitSharePercent", Label: i18n.CopyTradingLeaderProfitShare, Type: d.FieldNumber, Required: true,
					Rules:   []d.Rule{{Kind: d.RuleMin, Value: 0}, {Kind: d.RuleMax, Value: 50}},
					Example: 20,
				},
				{
					Key: "minFollowAmount", Label: i18n.CopyTradingLeaderMinFollowAmount, Type: d.FieldNumber,
					Rules: []d.Rule{{Kind: d.RuleMin, Value: 0}}, Default: 100,
				},
			}},
			{ID: "status", Title: i18n.CommonGroupsStatus, Priority: 3, Fields: []d.FieldDescriptor{
				{Key: "status", Label: i18n.CommonStatus, Type: d.FieldSelect, Required: true, Options: leaderStatuses, Example: "ACTIVE"},
			}},
		}},
	}
	b.Analytics = d.AnalyticsConfig{
		{Type: d.GroupKPI, Items: []d.AnalyticsItem{
			kpi("total", i18n.CommonAnalyticsTotal, "copyTradingLeader", "crown", nil),
			kpi("active", i18n.CommonAnalyticsActive, "copyTradingLeader", "check-circle", eq("status", "ACTIVE")),
			{ID: "followers", Title: i18n.CopyTradingLeaderTotalFollowers, Model: "copyTradingLeader", Metric: "followers", Sum: "totalFollowers", Icon: "users"},
		}},
		{Type: d.GroupChart, Items: []d.AnalyticsItem{
			growthChart("copyTradingLeader"),
			pie("copyTradingLeader", "riskLevel", riskLevels),
		}},
	}
	return b
}
