package postgres

import (
	"context"
	"fmt"

	"github.com/DanielPopoola/dinepay/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type menuRepository struct {
	q Executor
}

// FindItems loads the requested items with their own variants and add-on
// groups. Ids that do not exist for the restaurant are absent from the map.
func (r *menuRepository) FindItems(ctx context.Context, restaurantID int64, ids []int64) (map[int64]domain.MenuItem, error) {
	tenantID, err := tenantArg(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, tenant_id, restaurant_id, name, base_price, available,
		       uses_variant_set, uses_addon_set, addon_group_scope, max_addons
		FROM menu_items
		WHERE restaurant_id = $1 AND id = ANY($2)
		  AND ($3::bigint IS NULL OR tenant_id = $3)
	`
	rows, err := r.q.Query(ctx, query, restaurantID, ids, tenantID)
	if err != nil {
		return nil, fmt.Errorf("query menu items: %w", err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.MenuItem, error) {
		var (
			it    domain.MenuItem
			price pgtype.Numeric
		)
		err := row.Scan(&it.ID, &it.TenantID, &it.RestaurantID, &it.Name, &price, &it.Available,
			&it.UsesVariantSet, &it.UsesAddonSet, &it.AddonGroupScope, &it.MaxAddons)
		it.BasePrice = toDecimal(price)
		return it, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan menu items: %w", err)
	}

	out := make(map[int64]domain.MenuItem, len(items))
	if len(items) == 0 {
		return out, nil
	}
	found := make([]int64, 0, len(items))
	for _, it := range items {
		found = append(found, it.ID)
	}

	variants, err := r.variants(ctx, `menu_item_id = ANY($1)`, found)
	if err != nil {
		return nil, err
	}
	groups, err := r.groups(ctx, `menu_item_id = ANY($1)`, found)
	if err != nil {
		return nil, err
	}

	for _, it := range items {
		it.Variants = variants[it.ID]
		it.AddonGroups = groups[it.ID]
		out[it.ID] = it
	}
	return out, nil
}

func (r *menuRepository) SharedCatalog(ctx context.Context, restaurantID int64) (domain.Catalog, error) {
	variants, err := r.variants(ctx, `menu_item_id IS NULL AND restaurant_id = $1`, restaurantID)
	if err != nil {
		return domain.Catalog{}, err
	}
	groups, err := r.groups(ctx, `menu_item_id IS NULL AND restaurant_id = $1`, restaurantID)
	if err != nil {
		return domain.Catalog{}, err
	}
	return domain.Catalog{Variants: variants[0], AddonGroups: groups[0]}, nil
}

// variants returns variant options keyed by owning item, 0 for shared.
func (r *menuRepository) variants(ctx context.Context, where string, arg any) (map[int64][]domain.VariantOption, error) {
	tenantID, err := tenantArg(ctx)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT COALESCE(menu_item_id, 0), id, name, price_delta, active
		FROM menu_variants
		WHERE ` + where + ` AND ($2::bigint IS NULL OR tenant_id = $2)
		ORDER BY id
	`
	rows, err := r.q.Query(ctx, query, arg, tenantID)
	if err != nil {
		return nil, fmt.Errorf("query variants: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]domain.VariantOption)
	for rows.Next() {
		var (
			owner int64
			v     domain.VariantOption
			delta pgtype.Numeric
		)
		if err := rows.Scan(&owner, &v.ID, &v.Name, &delta, &v.Active); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		v.PriceDelta = toDecimal(delta)
		out[owner] = append(out[owner], v)
	}
	return out, rows.Err()
}

// groups returns add-on groups with their options keyed by owning item, 0
// for shared.
func (r *menuRepository) groups(ctx context.Context, where string, arg any) (map[int64][]domain.AddonGroup, error) {
	tenantID, err := tenantArg(ctx)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT COALESCE(g.menu_item_id, 0), g.id, g.name, g.is_required, g.min_selections,
		       g.max_selections, g.selection_type, g.active,
		       o.id, o.name, o.price_delta, o.active
		FROM addon_groups g
		LEFT JOIN addon_options o ON o.addon_group_id = g.id
		WHERE g.` + where + ` AND ($2::bigint IS NULL OR g.tenant_id = $2)
		ORDER BY g.position, g.id, o.id
	`
	rows, err := r.q.Query(ctx, query, arg, tenantID)
	if err != nil {
		return nil, fmt.Errorf("query addon groups: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]domain.AddonGroup)
	index := make(map[int64]int)
	for rows.Next() {
		var (
			owner     int64
			g         domain.AddonGroup
			selection string
			optID     *int64
			optName   *string
			optDelta  pgtype.Numeric
			optActive *bool
		)
		if err := rows.Scan(&owner, &g.ID, &g.Name, &g.IsRequired, &g.MinSelections,
			&g.MaxSelections, &selection, &g.Active,
			&optID, &optName, &optDelta, &optActive); err != nil {
			return nil, fmt.Errorf("scan addon group: %w", err)
		}
		g.SelectionType = domain.SelectionType(selection)

		pos, seen := index[g.ID]
		if !seen {
			out[owner] = append(out[owner], g)
			pos = len(out[owner]) - 1
			index[g.ID] = pos
		}
		if optID != nil {
			out[owner][pos].Options = append(out[owner][pos].Options, domain.AddonOption{
				ID:         *optID,
				Name:       *optName,
				PriceDelta: toDecimal(optDelta),
				Active:     *optActive,
			})
		}
	}
	return out, rows.Err()
}
