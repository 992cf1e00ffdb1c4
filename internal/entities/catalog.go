// Package entities builds the descriptor bundle of every admin and extension
// list page. Builders are pure: each call returns fresh values and reads
// nothing but compile-time keys.
package entities

import (
	"datatable-backend/internal/descriptor"
	"datatable-backend/internal/i18n"
	"datatable-backend/internal/permission"
)

// All builds every bundle.
func All() []*descriptor.Bundle {
	return []*descriptor.Bundle{
		User(),
		Role(),
		Currency(),
		Market(),
		NotificationTemplate(),
		Wishlist(),
		Ledger(),
		ForexSignal(),
		BinaryDuration(),
		AuditLog(),
		P2POffer(),
		ICOOffer(),
		CopyTradingLeader(),
		Product(),
		Referral(),
	}
}

func newBundle(scope, entity, model string, res permission.Resource, title, desc i18n.Key) *descriptor.Bundle {
	return &descriptor.Bundle{
		Scope:       scope,
		Entity:      entity,
		Model:       model,
		Title:       title,
		Description: desc,
		Endpoint:    descriptor.EndpointFor(scope, entity),
		Permissions: permission.For(res),
	}
}

func opt(value string, label i18n.Key, color string) descriptor.Option {
	return descriptor.Option{Value: value, Label: label, Color: color}
}

func idColumn() descriptor.ColumnDefinition {
	return descriptor.ColumnDefinition{
		Key:          "id",
		Title:        i18n.CommonID,
		Type:         descriptor.ColumnText,
		Icon:         "hash",
		Sortable:     true,
		Searchable:   true,
		Priority:     4,
		ExpandedOnly: true,
	}
}

func createdAtColumn() descriptor.ColumnDefinition {
	return descriptor.ColumnDefinition{
		Key:      "createdAt",
		Title:    i18n.CommonCreatedAt,
		Type:     descriptor.ColumnDate,
		Icon:     "calendar",
		Sortable: true,
		Priority: 3,
		Render:   &descriptor.Render{Type: descriptor.RenderDate, Format: "MMM dd, yyyy"},
	}
}

func statusToggleColumn() descriptor.ColumnDefinition {
	return descriptor.ColumnDefinition{
		Key:        "status",
		Title:      i18n.CommonStatus,
		Type:       descriptor.ColumnBoolean,
		Icon:       "toggle-right",
		Sortable:   true,
		Filterable: true,
		Priority:   1,
		Render:     &descriptor.Render{Type: descriptor.RenderToggle},
	}
}

func statusToggleField() descriptor.FieldDescriptor {
	return descriptor.FieldDescriptor{
		Key:     "status",
		Label:   i18n.CommonStatus,
		Type:    descriptor.FieldToggle,
		Default: true,
	}
}

// userCompound renders a related user (avatar, name, email) under prefix.
func userCompound(prefix string, title i18n.Key) descriptor.ColumnDefinition {
	return descriptor.ColumnDefinition{
		Key:        prefix,
		Title:      title,
		Type:       descriptor.ColumnCompound,
		Icon:       "user",
		Sortable:   true,
		Searchable: true,
		Priority:   1,
		Render: &descriptor.Render{Type: descriptor.RenderCompound, Compound: &descriptor.Compound{
			Image:     &descriptor.CompoundPart{Keys: []string{prefix + ".avatar"}, Title: i18n.CrmUserAvatar, Type: descriptor.ColumnImage},
			Primary:   &descriptor.CompoundPart{Keys: []string{prefix + ".firstName", prefix + ".lastName"}, Title: i18n.CommonName},
			Secondary: &descriptor.CompoundPart{Keys: []string{prefix + ".email"}, Title: i18n.CommonEmail},
		}},
	}
}

func userSelect(key string, label i18n.Key) descriptor.FieldDescriptor {
	return descriptor.FieldDescriptor{
		Key:         key,
		Label:       label,
		Type:        descriptor.FieldSelect,
		Required:    true,
		APIEndpoint: "/api/admin/crm/user/options",
		Example:     "5b0e8f1c-9c1a-4a51-a2a5-0f7c3d0b9e11",
	}
}

func kpi(id string, title i18n.Key, model, icon string, agg *descriptor.Aggregation) descriptor.AnalyticsItem {
	return descriptor.AnalyticsItem{ID: id, Title: title, Model: model, Metric: id, Aggregation: agg, Icon: icon}
}

func growthChart(model string, timeframes ...descriptor.Timeframe) descriptor.AnalyticsItem {
	if len(timeframes) == 0 {
		timeframes = []descriptor.Timeframe{descriptor.Timeframe7d, descriptor.Timeframe30d, descriptor.Timeframe3m, descriptor.Timeframe6m, descriptor.Timeframe1y}
	}
	return descriptor.AnalyticsItem{
		ID:         "growth",
		Title:      i18n.CommonAnalyticsGrowth,
		Model:      model,
		Metric:     "created",
		ChartType:  descriptor.ChartLine,
		Timeframes: timeframes,
	}
}

// pie builds a distribution chart with one series per option of field.
func pie(model, field string, options []descriptor.Option) descriptor.AnalyticsItem {
	series := make([]descriptor.Series, 0, len(options))
	for _, o := range options {
		series = append(series, descriptor.Series{
			ID:          o.Value,
			Title:       o.Label,
			Color:       o.Color,
			Aggregation: descriptor.Aggregation{Field: field, Value: o.Value},
		})
	}
	return descriptor.AnalyticsItem{
		ID:        field + "Distribution",
		Title:     i18n.CommonAnalyticsDistribution,
		Model:     model,
		Metric:    field,
		ChartType: descriptor.ChartPie,
		Series:    series,
	}
}

func eq(field string, value any) *descriptor.Aggregation {
	return &descriptor.Aggregation{Field: field, Value: value}
}
