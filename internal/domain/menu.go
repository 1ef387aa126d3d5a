package domain

import "github.com/shopspring/decimal"

// MenuItem is a sellable dish as configured by the restaurant. Menu CRUD lives
// elsewhere; this package only reads it for pricing.
type MenuItem struct {
	ID           int64
	TenantID     int64
	RestaurantID int64
	Name         string
	BasePrice    decimal.Decimal
	Available    bool

	// UsesVariantSet selects the restaurant-wide variant set instead of
	// the item's own Variants.
	UsesVariantSet bool
	// UsesAddonSet selects the restaurant-wide add-on groups instead of
	// the item's own AddonGroups.
	UsesAddonSet bool
	// AddonGroupScope restricts the restaurant-wide groups to these ids.
	// Empty means every shared group applies.
	AddonGroupScope []int64
	// MaxAddons caps the add-ons per group when non-nil.
	MaxAddons *int

	Variants    []VariantOption
	AddonGroups []AddonGroup
}

type SelectionType string

const (
	SelectionSingle   SelectionType = "single"
	SelectionMultiple SelectionType = "multiple"
)

type VariantOption struct {
	ID         int64
	Name       string
	PriceDelta decimal.Decimal
	Active     bool
}

type AddonGroup struct {
	ID            int64
	Name          string
	IsRequired    bool
	MinSelections int
	// MaxSelections of 0 means unbounded.
	MaxSelections int
	SelectionType SelectionType
	Active        bool
	Options       []AddonOption
}

type AddonOption struct {
	ID         int64
	Name       string
	PriceDelta decimal.Decimal
	Active     bool
}

// Catalog is the restaurant-wide shared variant and add-on configuration.
type Catalog struct {
	Variants    []VariantOption
	AddonGroups []AddonGroup
}

// EffectiveMin is the number of selections the group demands. A required
// group demands at least one.
func (g AddonGroup) EffectiveMin() int {
	if g.IsRequired && g.MinSelections < 1 {
		return 1
	}
	return g.MinSelections
}

// VariantsFor returns the active variants the item may be ordered with.
func (it MenuItem) VariantsFor(shared Catalog) []VariantOption {
	source := it.Variants
	if it.UsesVariantSet {
		source = shared.Variants
	}
	out := make([]VariantOption, 0, len(source))
	for _, v := range source {
		if v.Active {
			out = append(out, v)
		}
	}
	return out
}

// AddonGroupsFor returns the active add-on groups, each holding only its
// active options.
func (it MenuItem) AddonGroupsFor(shared Catalog) []AddonGroup {
	source := it.AddonGroups
	if it.UsesAddonSet {
		source = scopeGroups(shared.AddonGroups, it.AddonGroupScope)
	}
	out := make([]AddonGroup, 0, len(source))
	for _, g := range source {
		if !g.Active {
			continue
		}
		active := make([]AddonOption, 0, len(g.Options))
		for _, o := range g.Options {
			if o.Active {
				active = append(active, o)
			}
		}
		g.Options = active
		out = append(out, g)
	}
	return out
}

func scopeGroups(groups []AddonGroup, scope []int64) []AddonGroup {
	if len(scope) == 0 {
		return groups
	}
	allowed := make(map[int64]struct{}, len(scope))
	for _, id := range scope {
		allowed[id] = struct{}{}
	}
	out := make([]AddonGroup, 0, len(scope))
	for _, g := range groups {
		if _, ok := allowed[g.ID]; ok {
			out = append(out, g)
		}
	}
	return out
}
