package sqlite

import (
	"time"

	"github.com/shelfware-labs/partsbin/pkg/types"
)

func templateFromRow(m map[string]any) types.Template {
	fields, _ := m["defaultFields"].(map[string]any)
	if fields == nil {
		fields = map[string]any{}
	}
	return types.Template{
		ID:            asInt64(m["id"]),
		Name:          asString(m["name"]),
		Category:      asString(m["category"]),
		DefaultFields: fields,
		CreatedAt:     asTime(m["createdAt"]),
		UpdatedAt:     asTime(m["updatedAt"]),
	}
}

func templateToRecord(t types.Template) *Record {
	fields := t.DefaultFields
	if fields == nil {
		fields = map[string]any{}
	}
	return NewRecord().
		Set("id", t.ID).
		Set("name", t.Name).
		Set("category", t.Category).
		Set("defaultFields", fields).
		Set("createdAt", formatTime(t.CreatedAt)).
		Set("updatedAt", formatTime(t.UpdatedAt))
}

// TemplateRepo stores item templates.
type TemplateRepo struct {
	*Repository[types.Template]
}

// NewTemplateRepo returns the template repository.
func NewTemplateRepo(eng *Engine) *TemplateRepo {
	return &TemplateRepo{Repository: NewRepository(eng, EntityMeta[types.Template]{
		Table:      types.TableTemplates,
		JSONFields: []string{"defaultFields"},
		FromRow:    templateFromRow,
		ToRecord:   templateToRecord,
	})}
}

// CreateTemplate stores a new template, stamping both timestamps.
func (r *TemplateRepo) CreateTemplate(t types.Template) (types.Template, error) {
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	return r.Create(t)
}

// UpdateTemplate applies a partial update and bumps updatedAt.
func (r *TemplateRepo) UpdateTemplate(id int64, patch *Record) (types.Template, bool, error) {
	patch.Delete("id")
	if patch.Len() == 0 {
		return r.GetByID(id)
	}
	patch.Set("updatedAt", formatTime(time.Now().UTC()))
	return r.Update(id, patch)
}

// All returns every template sorted by name, case-insensitively.
func (r *TemplateRepo) All() ([]types.Template, error) {
	return r.query("SELECT * FROM item_templates ORDER BY name COLLATE NOCASE")
}

// ByCategory returns the templates for one category, sorted by name.
func (r *TemplateRepo) ByCategory(category string) ([]types.Template, error) {
	return r.query(
		"SELECT * FROM item_templates WHERE category = ? ORDER BY name COLLATE NOCASE", category)
}
