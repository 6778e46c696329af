package sqlite

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// EntityMeta describes one entity type to the generic repository: its
// table, which attributes are JSON-packed, and the struct/attribute-map
// conversions. Each entity supplies its own meta at construction time;
// there is no reflection.
type EntityMeta[T any] struct {
	Table      string
	JSONFields []string
	FromRow    func(entity map[string]any) T
	ToRecord   func(T) *Record
}

// Repository gives an entity table create/read/update/delete/list/count
// and bulk operations, built on the Column Mapper and the Engine. Entity
// repositories compose it with table-specific queries.
type Repository[T any] struct {
	eng  *Engine
	meta EntityMeta[T]
}

// NewRepository returns a repository bound to the entity described by meta.
func NewRepository[T any](eng *Engine, meta EntityMeta[T]) *Repository[T] {
	return &Repository[T]{eng: eng, meta: meta}
}

// Engine exposes the underlying engine for callers composing transactions.
func (r *Repository[T]) Engine() *Engine {
	return r.eng
}

// GetAll returns every row, mapped through the Column Mapper.
func (r *Repository[T]) GetAll() ([]T, error) {
	return r.query("SELECT * FROM " + r.meta.Table + " ORDER BY id")
}

// GetByID returns the entity with the given id, and whether it exists.
func (r *Repository[T]) GetByID(id int64) (T, bool, error) {
	return r.queryOne("SELECT * FROM "+r.meta.Table+" WHERE id = ?", id)
}

// Create assigns the next id, inserts, and returns the freshly read-back
// row so the result reflects exactly what was persisted, including
// storage-level defaults. Id assignment and insert share one transaction.
func (r *Repository[T]) Create(entity T) (T, error) {
	var zero T
	var id int64
	err := r.eng.withTx(func(tx *sqlx.Tx) error {
		var err error
		if id, err = nextIDTx(tx, r.meta.Table); err != nil {
			return err
		}
		rec := r.meta.ToRecord(entity)
		rec.Set("id", id)
		stmt, args := BuildInsert(r.meta.Table, rec, r.meta.JSONFields)
		if _, err := tx.Exec(stmt, args...); err != nil {
			return fmt.Errorf("inserting into %s: %w", r.meta.Table, err)
		}
		return nil
	})
	if err != nil {
		return zero, err
	}

	created, ok, err := r.GetByID(id)
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, fmt.Errorf("reading back %s id %d after insert", r.meta.Table, id)
	}
	return created, nil
}

// Update applies a partial attribute patch. An empty patch is a no-op
// returning the existing entity; any id attribute in the patch is
// stripped. The second return value is false when no row exists for id.
func (r *Repository[T]) Update(id int64, patch *Record) (T, bool, error) {
	var zero T
	patch.Delete("id")
	if patch.Len() == 0 {
		return r.GetByID(id)
	}

	stmt, args := BuildUpdate(r.meta.Table, patch, "id = ?", []any{id}, r.meta.JSONFields)
	n, err := r.eng.Execute(stmt, args...)
	if err != nil {
		return zero, false, err
	}
	if n == 0 {
		return zero, false, nil
	}
	return r.GetByID(id)
}

// Delete removes the row with the given id, reporting whether one was
// removed.
func (r *Repository[T]) Delete(id int64) (bool, error) {
	n, err := r.eng.Execute("DELETE FROM "+r.meta.Table+" WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteMany removes the rows with the given ids, returning the count
// removed. An empty id list is a no-op returning 0 so no statement with
// zero placeholders is ever generated.
func (r *Repository[T]) DeleteMany(ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	marks, args := idPlaceholders(ids)
	return r.eng.Execute("DELETE FROM "+r.meta.Table+" WHERE id IN ("+marks+")", args...)
}

// Count returns the number of rows in the table.
func (r *Repository[T]) Count() (int64, error) {
	row, ok, err := r.eng.QueryOne("SELECT COUNT(*) AS n FROM " + r.meta.Table)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	return asInt64(row["n"]), nil
}

// query runs a SELECT and maps each row to the entity type.
func (r *Repository[T]) query(stmt string, args ...any) ([]T, error) {
	rows, err := r.eng.Query(stmt, args...)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.meta.FromRow(RowToEntity(row, r.meta.JSONFields)))
	}
	return out, nil
}

// queryOne runs a SELECT expected to produce at most one entity.
func (r *Repository[T]) queryOne(stmt string, args ...any) (T, bool, error) {
	var zero T
	row, ok, err := r.eng.QueryOne(stmt, args...)
	if err != nil || !ok {
		return zero, false, err
	}
	return r.meta.FromRow(RowToEntity(row, r.meta.JSONFields)), true, nil
}

// idPlaceholders builds "?, ?, ?" and the matching argument slice.
func idPlaceholders(ids []int64) (string, []any) {
	marks := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		marks[i] = "?"
		args[i] = id
	}
	return strings.Join(marks, ", "), args
}
