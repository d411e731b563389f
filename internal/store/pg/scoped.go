package pg

import (
	"context"
	"strconv"
	"strings"

	"github.com/dropDatabas3/storegate/internal/domain/repository"
	"github.com/dropDatabas3/storegate/internal/tenancy"
)

// =================================================================================
// SCOPED QUERY BUILDER
// =================================================================================

// scopedQuery construye SQL sobre una tabla tenant-scoped. Solo se obtiene con
// newScopedQuery, que exige un Scope emitido por el TenantContext; el predicado
// tenant_id se agrega siempre que el Scope esté resuelto.
type scopedQuery struct {
	table string
	conds []string
	args  []any
}

// scopeFrom obtiene el Scope del request o falla cerrado.
func scopeFrom(ctx context.Context) (tenancy.Scope, error) {
	sc, err := tenancy.ScopeFrom(ctx)
	if err != nil {
		return tenancy.Scope{}, repository.ErrNoScope
	}
	return sc, sc.Check()
}

func newScopedQuery(sc tenancy.Scope, table string) (*scopedQuery, error) {
	if err := sc.Check(); err != nil {
		return nil, err
	}
	q := &scopedQuery{table: table}
	if id, ok := sc.TenantID(); ok {
		q.eq("tenant_id", id)
	}
	return q, nil
}

// eq agrega "col = $n". col es siempre un literal del código, nunca input.
func (q *scopedQuery) eq(col string, v any) *scopedQuery {
	q.args = append(q.args, v)
	q.conds = append(q.conds, col+" = $"+strconv.Itoa(len(q.args)))
	return q
}

func (q *scopedQuery) where() string {
	if len(q.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(q.conds, " AND ")
}

func (q *scopedQuery) selectSQL(cols, orderBy string) (string, []any) {
	sql := "SELECT " + cols + " FROM " + q.table + q.where()
	if orderBy != "" {
		sql += " ORDER BY " + orderBy
	}
	return sql, q.args
}

func (q *scopedQuery) deleteSQL() (string, []any) {
	return "DELETE FROM " + q.table + q.where(), q.args
}

// updateSQL arma "UPDATE t SET c1 = $k, ... WHERE <scope>". Los valores del SET
// se numeran después de los argumentos del WHERE.
func (q *scopedQuery) updateSQL(cols []string, vals []any) (string, []any) {
	args := append([]any(nil), q.args...)
	sets := make([]string, len(cols))
	for i, c := range cols {
		args = append(args, vals[i])
		sets[i] = c + " = $" + strconv.Itoa(len(args))
	}
	return "UPDATE " + q.table + " SET " + strings.Join(sets, ", ") + q.where(), args
}
