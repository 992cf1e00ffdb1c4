package entities

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datatable-backend/internal/descriptor"
	"datatable-backend/internal/i18n"
	"datatable-backend/internal/models"
	"datatable-backend/internal/permission"
)

func loadModels(t *testing.T) *models.Catalog {
	t.Helper()
	cat, err := models.Load("../../config/models.yaml")
	require.NoError(t, err)
	return cat
}

func TestAll_LintClean(t *testing.T) {
	locales, err := i18n.LoadDir("../../locales", "en")
	require.NoError(t, err)

	issues := descriptor.Lint(All(), loadModels(t), locales)
	for _, i := range issues {
		t.Errorf("%s %s: %s (%s)", i.Entity, i.Field, i.Message, i.Code)
	}
}

func TestAll_UniqueIDsAndEndpoints(t *testing.T) {
	seen := map[string]bool{}
	for _, b := range All() {
		assert.False(t, seen[b.ID()], "duplicate %s", b.ID())
		seen[b.ID()] = true
		assert.Equal(t, "/api/"+b.ID(), b.Endpoint)
	}
	assert.Len(t, seen, 15)
}

func TestRole_Columns(t *testing.T) {
	cols := Role().Columns
	require.Len(t, cols, 3)
	assert.Equal(t, "id", cols[0].Key)
	assert.Equal(t, "name", cols[1].Key)

	perms := cols[2]
	assert.Equal(t, "permissions", perms.Key)
	assert.False(t, perms.Sortable)
	assert.False(t, perms.Searchable)
	assert.False(t, perms.Filterable)
}

func TestAll_FormKeysAreDeclared(t *testing.T) {
	cat := loadModels(t)
	for _, b := range All() {
		declared := b.DeclaredKeys()
		model := cat.Get(b.Model)
		require.NotNil(t, model, b.ID())
		for mode, s := range b.Form.Sections() {
			for _, f := range s.Fields() {
				root, _, _ := strings.Cut(f.Key, ".")
				ok := declared[f.Key] || declared[root] || model.HasPath(f.Key)
				assert.True(t, ok, "%s %s: %s", b.ID(), mode, f.Key)
			}
		}
	}
}

func TestAll_BooleanColumnsRenderAsToggleOrBadge(t *testing.T) {
	for _, b := range All() {
		for _, c := range b.Columns {
			if c.Type != descriptor.ColumnBoolean {
				continue
			}
			r := c.RenderType()
			assert.Contains(t, []descriptor.RenderType{descriptor.RenderToggle, descriptor.RenderBadge}, r, "%s.%s", b.ID(), c.Key)
		}
	}
}

func TestAll_PermissionSetsComplete(t *testing.T) {
	for _, b := range All() {
		for _, a := range permission.Actions {
			k := b.Permissions.ByAction(a)
			assert.NotEmpty(t, k.String(), "%s %s", b.ID(), a)
			assert.Regexp(t, permission.Pattern, k.String())
			assert.Equal(t, a, k.Action)
		}
	}
}

func TestAll_ValidatorsAcceptExamplesAndRejectEmptyRequired(t *testing.T) {
	for _, b := range All() {
		for mode, s := range b.Form.Sections() {
			examples := s.Examples()
			for _, f := range s.Fields() {
				name := b.ID() + " " + string(mode) + " " + f.Key
				if f.Example != nil {
					assert.NoError(t, f.Check(f.Example, examples), name)
				}
				if f.Required {
					require.NotNil(t, f.Example, name)
					err := f.Validator()("")
					require.Error(t, err, name)
					assert.NotEmpty(t, err.Error(), name)
				}
			}
		}
	}
}

func TestAll_AnalyticsModelsRegistered(t *testing.T) {
	cat := loadModels(t)
	for _, b := range All() {
		for _, gi := range b.Analytics.Items() {
			assert.True(t, cat.Has(gi.Item.Model), "%s %s: %s", b.ID(), gi.Item.ID, gi.Item.Model)
			for _, s := range gi.Item.Series {
				assert.True(t, cat.Get(gi.Item.Model).HasField(s.Aggregation.Field))
			}
		}
	}
}

func TestBuildersArePure(t *testing.T) {
	first := All()
	first[0].Columns[0].Key = "mutated"
	first[1].Form.Create.Groups[0].Fields[0].Required = false

	again := All()
	assert.Equal(t, "id", again[0].Columns[0].Key)
	assert.True(t, again[1].Form.Create.Groups[0].Fields[0].Required)
	assert.Equal(t, User(), User())
}

func TestP2POffer_MaxLimitBelowMin(t *testing.T) {
	section := P2POffer().Form.Create
	values := map[string]any{
		"type": "SELL", "currency": "USDT", "walletType": "SPOT",
		"priceModel": "MARGIN", "margin": 1.5,
		"amount": 100.0, "minLimit": 50.0, "maxLimit": 10.0,
		"status": "ACTIVE",
	}
	got := descriptor.ValidateSubmission(section, values)
	require.Len(t, got, 1)
	assert.Equal(t, "maxLimit", got[0].Field)
	assert.Equal(t, i18n.P2POfferMaxBelowMin, got[0].Key)
}

func TestProduct_FilePathOnlyForDownloadables(t *testing.T) {
	section := Product().Form.Create
	values := map[string]any{
		"name": "Mug", "categoryId": "c1", "price": 9.5, "currency": "USD",
		"walletType": "FIAT", "type": "PHYSICAL", "inventoryQuantity": 3.0,
	}
	assert.Empty(t, descriptor.ValidateSubmission(section, values))

	values["type"] = "DOWNLOADABLE"
	got := descriptor.ValidateSubmission(section, values)
	require.Len(t, got, 1)
	assert.Equal(t, "filePath", got[0].Field)
}

func TestReferral_SelfReferralRejected(t *testing.T) {
	section := Referral().Form.Create
	got := descriptor.ValidateSubmission(section, map[string]any{
		"referrerId": "u-1", "referredId": "u-1", "status": "PENDING",
	})
	require.Len(t, got, 1)
	assert.Equal(t, i18n.AffiliateReferralSelfReferral, got[0].Key)
}
