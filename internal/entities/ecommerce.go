package entities

import (
	d "datatable-backend/internal/descriptor"
	"datatable-backend/internal/i18n"
	"datatable-backend/internal/permission"
)

func Wishlist() *d.Bundle {
	b := newBundle("admin/ext/ecommerce", "wishlist", "ecommerceWishlist", permission.ResourceWishlist,
		i18n.EcommerceWishlistTitle, i18n.EcommerceWishlistDescription)
	b.VirtualKeys = []string{"user"}
	b.Columns = []d.ColumnDefinition{
		idColumn(),
		userCompound("user", i18n.CommonUser),
		{Key: "name", Title: i18n.CommonName, Type: d.ColumnText, Icon: "heart", Sortable: true, Searchable: true, Priority: 1},
		createdAtColumn(),
	}
	name := d.FieldDescriptor{
		Key: "name", Label: i18n.CommonName, Type: d.FieldText, Required: true,
		Rules:   []d.Rule{{Kind: d.RuleMaxLength, Value: 100}},
		Example: "Holiday gifts",
	}
	b.Form = d.FormConfig{
		Create: &d.FormSection{Title: i18n.EcommerceWishlistTitle, Groups: []d.FormGroup{
			{ID: "basic", Title: i18n.CommonGroupsBasic, Icon: "heart", Priority: 1, Fields: []d.FieldDescriptor{
				userSelect("userId", i18n.CommonUser),
				name,
			}},
		}},
		Edit: &d.FormSection{Title: i18n.EcommerceWishlistTitle, Groups: []d.FormGroup{
			{ID: "basic", Title: i18n.CommonGroupsBasic, Icon: "heart", Priority: 1, Fields: []d.FieldDescriptor{name}},
		}},
	}
	b.Analytics = d.AnalyticsConfig{
		{Type: d.GroupKPI, Items: []d.AnalyticsItem{kpi("total", i18n.CommonAnalyticsTotal, "ecommerceWishlist", "heart", nil)}},
		{Type: d.GroupChart, Items: []d.AnalyticsItem{growthChart("ecommerceWishlist")}},
	}
	return b
}

var (
	productTypes = []d.Option{
		opt("DOWNLOADABLE", i18n.CommonStatesDownloadable, "info"),
		opt("PHYSICAL", i18n.CommonStatesPhysical, "primary"),
	}
	walletTypes = []d.Option{
		opt("FIAT", i18n.CommonStatesFiat, "primary"),
		opt("SPOT", i18n.CommonStatesSpot, "info"),
		opt("ECO", i18n.CommonStatesEco, "secondary"),
	}
)

// Product is the store catalog. Downloadable products need a file; physical
// products track inventory instead.
func Product() *d.Bundle {
	b := newBundle("admin/ext/ecommerce", "product", "ecommerceProduct", permission.ResourceProduct,
		i18n.EcommerceProductTitle, i18n.EcommerceProductDescription)
	b.VirtualKeys = []string{"category"}
	b.Columns = []d.ColumnDefinition{
		idColumn(),
		{
			Key: "product", Title: i18n.EcommerceProductTitle, Type: d.ColumnCompound, Icon: "package",
			Sortable: true, Searchable: true, Priority: 1,
			Render: &d.Render{Type: d.RenderCompound, Compound: &d.Compound{
				Image:     &d.CompoundPart{Keys: []string{"image"}, Title: i18n.CommonImage, Type: d.ColumnImage},
				Primary:   &d.CompoundPart{Keys: []string{"name"}, Title: i18n.CommonName},
				Secondary: &d.CompoundPart{Keys: []string{"category.name"}, Title: i18n.EcommerceProductCategory},
			}},
		},
		{Key: "type", Title: i18n.CommonType, Type: d.ColumnSelect, Icon: "tag", Sortable: true, Filterable: true, Priority: 1,
			Render: &d.Render{Type: d.RenderBadge}, Options: productTypes},
		{Key: "price", Title: i18n.CommonPrice, Type: d.ColumnNumber, Icon: "dollar-sign", Sortable: true, Priority: 1,
			Render: &d.Render{Type: d.RenderCurrency}},
		{Key: "walletType", Title: i18n.CommonWalletType, Type: d.ColumnSelect, Filterable: true, Priority: 3, ExpandedOnly: true,
			Render: &d.Render{Type: d.RenderBadge}, Options: walletTypes},
		{Key: "inventoryQuantity", Title: i18n.EcommerceProductInventory, Type: d.ColumnNumber, Icon: "boxes", Sortable: true, Priority: 2},
		{Key: "rating", Title: i18n.EcommerceProductRating, Type: d.ColumnRating, Icon: "star", Sortable: true, Priority: 2},
		statusToggleColumn(),
		createdAtColumn(),
	}
	b.Form = d.FormConfig{
		Create: &d.FormSection{Title: i18n.EcommerceProductTitle, Description: i18n.EcommerceProductDescription, Groups: productGroups()},
		Edit:   &d.FormSection{Title: i18n.EcommerceProductTitle, Description: i18n.EcommerceProductDescription, Groups: productGroups()},
	}
	b.Analytics = d.AnalyticsConfig{
		{Type: d.GroupKPI, Items: []d.AnalyticsItem{
			kpi("total", i18n.CommonAnalyticsTotal, "ecommerceProduct", "package", nil),
			kpi("active", i18n.CommonAnalyticsActive, "ecommerceProduct", "check-circle", eq("status", true)),
		}},
		{Type: d.GroupChart, Items: []d.AnalyticsItem{
			growthChart("ecommerceProduct"),
			pie("ecommerceProduct", "type", productTypes),
		}},
	}
	return b
}

func productGroups() []d.FormGroup {
	return []d.FormGroup{
		{ID: "basic", Title: i18n.CommonGroupsBasic, Icon: "package", Priority: 1, Fields: []d.FieldDescriptor{
			{
				Key: "name", Label: i18n.CommonName, Type: d.FieldText, Required: true,
				Rules:   []d.Rule{{Kind: d.RuleMinLength, Value: 2}, {Kind: d.RuleMaxLength, Value: 191}},
				Example: "Trading 101 (e-book)",
			},
			{Key: "description", Label: i18n.CommonDescription, Type: d.FieldTextarea},
			{
				Key: "categoryId", Label: i18n.EcommerceProductCategory, Type: d.FieldSelect, Required: true,
				APIEndpoint: "/api/admin/ext/ecommerce/category/options",
				Example:     "0d6f4f7e-2b53-4bd8-8f1e-6c1d2a9f3b7a",
			},
			{Key: "image", Label: i18n.CommonImage, Type: d.FieldImage},
		}},
		{ID: "pricing", Title: i18n.CommonGroupsPricing, Icon: "dollar-sign", Priority: 2, Fields: []d.FieldDescriptor{
			{Key: "price", Label: i18n.CommonPrice, Type: d.FieldNumber, Required: true, Rules: []d.Rule{{Kind: d.RuleMin, Value: 0}}, Example: 19.99},
			{Key: "currency", Label: i18n.CommonCurrency, Type: d.FieldText, Required: true, Example: "USD"},
			{Key: "walletType", Label: i18n.CommonWalletType, Type: d.FieldSelect, Required: true, Options: walletTypes, Example: "FIAT"},
		}},
		{ID: "settings", Title: i18n.CommonGroupsSettings, Icon: "settings", Priority: 3, Fields: []d.FieldDescriptor{
			{Key: "type", Label: i18n.CommonType, Type: d.FieldSelect, Required: true, Options: productTypes, Example: "DOWNLOADABLE"},
			{
				Key: "filePath", Label: i18n.EcommerceProductFilePath, Type: d.FieldText, Required: true,
				VisibleWhen: `record.type == "DOWNLOADABLE"`,
				Example:     "/uploads/products/trading-101.pdf",
			},
			{
				Key: "inventoryQuantity", Label: i18n.EcommerceProductInventory, Type: d.FieldNumber,
				VisibleWhen: `record.type == "PHYSICAL"`,
				Rules:       []d.Rule{{Kind: d.RuleMin, Value: 0}},
				Default:     0,
			},
			statusToggleField(),
		}},
	}
}
