package sqlite

import (
	"time"

	"github.com/shelfware-labs/partsbin/pkg/types"
)

func bomFromRow(m map[string]any) types.BOM {
	return types.BOM{
		ID:          asInt64(m["id"]),
		Name:        asString(m["name"]),
		Description: asString(m["description"]),
		Items:       bomLines(m["items"]),
		CreatedAt:   asTime(m["createdAt"]),
		UpdatedAt:   asTime(m["updatedAt"]),
	}
}

// bomLines reshapes the parsed items column into typed lines. Malformed
// elements are skipped rather than failing the whole BOM.
func bomLines(v any) []types.BOMLine {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	lines := make([]types.BOMLine, 0, len(raw))
	for _, el := range raw {
		m, ok := el.(map[string]any)
		if !ok {
			continue
		}
		lines = append(lines, types.BOMLine{
			ItemID:   asInt64(m["itemId"]),
			Quantity: asInt64(m["quantity"]),
			Notes:    asString(m["notes"]),
		})
	}
	return lines
}

func bomToRecord(b types.BOM) *Record {
	items := b.Items
	if items == nil {
		items = []types.BOMLine{}
	}
	return NewRecord().
		Set("id", b.ID).
		Set("name", b.Name).
		Set("description", b.Description).
		Set("items", items).
		Set("createdAt", formatTime(b.CreatedAt)).
		Set("updatedAt", formatTime(b.UpdatedAt))
}

// BOMRepo stores bills of materials.
type BOMRepo struct {
	*Repository[types.BOM]
}

// NewBOMRepo returns the BOM repository.
func NewBOMRepo(eng *Engine) *BOMRepo {
	return &BOMRepo{Repository: NewRepository(eng, EntityMeta[types.BOM]{
		Table:      types.TableBOMs,
		JSONFields: []string{"items"},
		FromRow:    bomFromRow,
		ToRecord:   bomToRecord,
	})}
}

// CreateBOM stores a new bill of materials, stamping both timestamps.
func (r *BOMRepo) CreateBOM(b types.BOM) (types.BOM, error) {
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	return r.Create(b)
}

// UpdateBOM applies a partial update and bumps updatedAt.
func (r *BOMRepo) UpdateBOM(id int64, patch *Record) (types.BOM, bool, error) {
	patch.Delete("id")
	if patch.Len() == 0 {
		return r.GetByID(id)
	}
	patch.Set("updatedAt", formatTime(time.Now().UTC()))
	return r.Update(id, patch)
}

// All returns every BOM sorted by name, case-insensitively.
func (r *BOMRepo) All() ([]types.BOM, error) {
	return r.query("SELECT * FROM boms ORDER BY name COLLATE NOCASE")
}

// ContainsItem returns the BOMs that reference itemID on any line. The
// packed items column cannot be queried in SQL, so the scan happens in
// memory.
func (r *BOMRepo) ContainsItem(itemID int64) ([]types.BOM, error) {
	all, err := r.GetAll()
	if err != nil {
		return nil, err
	}
	var hits []types.BOM
	for _, b := range all {
		if b.ContainsItem(itemID) {
			hits = append(hits, b)
		}
	}
	return hits, nil
}

// CostOf prices a BOM against current inventory unit values. Lines whose
// item no longer exists are skipped.
func (r *BOMRepo) CostOf(b types.BOM, items *ItemRepo) (float64, error) {
	var total float64
	for _, line := range b.Items {
		item, ok, err := items.GetByID(line.ItemID)
		if err != nil {
			return 0, err
		}
		if !ok {
			continue
		}
		total += item.UnitValue * float64(line.Quantity)
	}
	return total, nil
}
