package domain

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Selection is what the customer picked for one cart line.
type Selection struct {
	VariantID *int64
	AddonIDs  []int64
	Quantity  int
}

// VariantSnapshot freezes the chosen variant at order time.
type VariantSnapshot struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	PriceDelta decimal.Decimal `json:"price_delta"`
	// Shared is set when the variant came from the restaurant-wide set.
	Shared bool `json:"shared"`
}

// AddonSnapshot freezes one chosen add-on at order time.
type AddonSnapshot struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	PriceDelta decimal.Decimal `json:"price_delta"`
	GroupID    int64           `json:"group_id"`
}

// PricedLine is the result of pricing one selection.
type PricedLine struct {
	MenuItemID int64
	Variant    *VariantSnapshot
	Addons     []AddonSnapshot
	Quantity   int
	UnitPrice  decimal.Decimal
	LineTotal  decimal.Decimal
}

type addonRef struct {
	group  int
	option AddonOption
}

// PriceLine validates a selection against the item's resolved catalog and
// computes its price. It performs no I/O.
func PriceLine(item MenuItem, shared Catalog, sel Selection) (PricedLine, error) {
	if sel.Quantity < 1 {
		return PricedLine{}, NewSelectionError(ReasonQuantity)
	}
	if !item.Available {
		return PricedLine{}, NewSelectionError(ReasonItemUnavailable)
	}

	var variant *VariantSnapshot
	variantDelta := decimal.Zero
	if sel.VariantID != nil {
		variants := item.VariantsFor(shared)
		idx := slices.IndexFunc(variants, func(v VariantOption) bool {
			return v.ID == *sel.VariantID
		})
		if idx < 0 {
			return PricedLine{}, NewSelectionError(ReasonVariant)
		}
		v := variants[idx]
		variant = &VariantSnapshot{
			ID:         v.ID,
			Name:       v.Name,
			PriceDelta: v.PriceDelta,
			Shared:     item.UsesVariantSet,
		}
		variantDelta = v.PriceDelta
	}

	groups := item.AddonGroupsFor(shared)
	index := make(map[int64]addonRef)
	for gi, g := range groups {
		for _, o := range g.Options {
			if _, seen := index[o.ID]; !seen {
				index[o.ID] = addonRef{group: gi, option: o}
			}
		}
	}

	ids := dedupe(sel.AddonIDs)
	counts := make([]int, len(groups))
	for _, id := range ids {
		if ref, ok := index[id]; ok {
			counts[ref.group]++
		}
	}

	for gi, g := range groups {
		if need := g.EffectiveMin(); counts[gi] < need {
			return PricedLine{}, newGroupSelectionError(ReasonAddonMin, g.Name, need)
		}
		if limit, bounded := effectiveMax(item, g); bounded && counts[gi] > limit {
			return PricedLine{}, newGroupSelectionError(ReasonAddonMax, g.Name, limit)
		}
		if g.SelectionType == SelectionSingle && counts[gi] > 1 {
			return PricedLine{}, newGroupSelectionError(ReasonAddonSingle, g.Name, 1)
		}
	}

	addons := make([]AddonSnapshot, 0, len(ids))
	addonSum := decimal.Zero
	for _, id := range ids {
		ref, ok := index[id]
		if !ok {
			return PricedLine{}, NewSelectionError(ReasonAddonUnavailable)
		}
		addons = append(addons, AddonSnapshot{
			ID:         ref.option.ID,
			Name:       ref.option.Name,
			PriceDelta: ref.option.PriceDelta,
			GroupID:    groups[ref.group].ID,
		})
		addonSum = addonSum.Add(ref.option.PriceDelta)
	}

	unit := Round2(item.BasePrice.Add(variantDelta).Add(Round2(addonSum)))
	return PricedLine{
		MenuItemID: item.ID,
		Variant:    variant,
		Addons:     addons,
		Quantity:   sel.Quantity,
		UnitPrice:  unit,
		LineTotal:  Round2(unit.Mul(decimal.NewFromInt(int64(sel.Quantity)))),
	}, nil
}

func effectiveMax(item MenuItem, g AddonGroup) (int, bool) {
	if item.MaxAddons != nil {
		return *item.MaxAddons, true
	}
	if g.MaxSelections > 0 {
		return g.MaxSelections, true
	}
	return 0, false
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
