// Package pgtest provides a scripted Querier for repository tests, so query
// shapes and scan paths are exercised without a live database.
package pgtest

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Call records one issued query.
type Call struct {
	SQL  string
	Args []any
}

// Result scripts the outcome of one Query or QueryRow call.
type Result struct {
	Rows [][]any
	Err  error
}

// Querier replays scripted results in call order and records every query it
// receives. It satisfies the consumer interfaces the repositories declare.
type Querier struct {
	Results []Result
	Calls   []Call

	next int
}

// Query returns the next scripted result as a row set.
func (q *Querier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	res := q.take(sql, args)
	if res.Err != nil {
		return nil, res.Err
	}
	return &rows{data: res.Rows}, nil
}

// QueryRow returns the next scripted result as a single row.
func (q *Querier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	res := q.take(sql, args)
	return &row{res: res}
}

func (q *Querier) take(sql string, args []any) Result {
	q.Calls = append(q.Calls, Call{SQL: sql, Args: args})
	if q.next >= len(q.Results) {
		return Result{Err: fmt.Errorf("pgtest: unscripted query: %s", sql)}
	}
	res := q.Results[q.next]
	q.next++
	return res
}

type row struct {
	res Result
}

func (r *row) Scan(dest ...any) error {
	if r.res.Err != nil {
		return r.res.Err
	}
	if len(r.res.Rows) == 0 {
		return pgx.ErrNoRows
	}
	return scanInto(r.res.Rows[0], dest)
}

type rows struct {
	data [][]any
	pos  int
	err  error
}

func (r *rows) Next() bool {
	if r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

func (r *rows) Scan(dest ...any) error {
	if r.pos == 0 || r.pos > len(r.data) {
		return fmt.Errorf("pgtest: Scan called without Next")
	}
	if err := scanInto(r.data[r.pos-1], dest); err != nil {
		r.err = err
		return err
	}
	return nil
}

func (r *rows) Err() error                                   { return r.err }
func (r *rows) Close()                                       {}
func (r *rows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *rows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *rows) Values() ([]any, error)                       { return nil, nil }
func (r *rows) RawValues() [][]byte                          { return nil }
func (r *rows) Conn() *pgx.Conn                              { return nil }

func scanInto(vals []any, dest []any) error {
	if len(vals) != len(dest) {
		return fmt.Errorf("pgtest: scanned %d columns into %d destinations", len(vals), len(dest))
	}
	for i, v := range vals {
		if err := assign(dest[i], v); err != nil {
			return fmt.Errorf("column %d: %w", i, err)
		}
	}
	return nil
}

// assign copies a scripted value into a scan destination, promoting values
// to pointer destinations the way nullable columns scan.
func assign(dest, val any) error {
	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Pointer || dv.IsNil() {
		return fmt.Errorf("destination %T is not a non-nil pointer", dest)
	}
	elem := dv.Elem()

	if val == nil {
		elem.Set(reflect.Zero(elem.Type()))
		return nil
	}

	vv := reflect.ValueOf(val)
	switch {
	case vv.Type().AssignableTo(elem.Type()):
		elem.Set(vv)
	case elem.Kind() == reflect.Pointer && vv.Type().AssignableTo(elem.Type().Elem()):
		p := reflect.New(elem.Type().Elem())
		p.Elem().Set(vv)
		elem.Set(p)
	case vv.Type().ConvertibleTo(elem.Type()):
		elem.Set(vv.Convert(elem.Type()))
	default:
		return fmt.Errorf("cannot scan %T into %T", val, dest)
	}
	return nil
}
