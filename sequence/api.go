package sequence

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/patflynngithub/pycnumanal/vector"
	"modernc.org/sqlite/vtab"
)

// ModuleName is the name passed to USING in CREATE VIRTUAL TABLE.
const ModuleName = "sequence"

// Module implements vtab.Module for the sequence virtual table.
type Module struct{}

// Table represents a single sequence virtual table instance.
type Table struct {
	tableName string
}

// Cursor scans the elements of one sequence.
type Cursor struct {
	n    int64
	rows []float64
	pos  int
}

const idxLength = 1

// Register registers the sequence module with db. Registering twice is not
// an error.
func Register(db *sql.DB) error {
	if err := vtab.RegisterModule(db, ModuleName, &Module{}); err != nil {
		if !strings.Contains(err.Error(), "already registered") {
			return fmt.Errorf("sequence: register: %w", err)
		}
	}
	return nil
}

// EnsureTable creates the virtual table name if it does not exist.
func EnsureTable(ctx context.Context, db *sql.DB, name string) error {
	stmt := fmt.Sprintf(`CREATE VIRTUAL TABLE IF NOT EXISTS %s USING %s`, name, ModuleName)
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("sequence: create %s: %w", name, err)
	}
	return nil
}

// SumOfSquares aggregates value*value over the n-element sequence in SQL.
// SQLite's sum() uses compensated summation, so results can differ from
// vector.SumOfSquares in the last bits once partial sums exceed 2^53.
func SumOfSquares(ctx context.Context, db *sql.DB, table string, n int) (float64, error) {
	if n < 0 {
		return 0, fmt.Errorf("%w: %d", vector.ErrInvalidLength, n)
	}
	var sum sql.NullFloat64
	q := fmt.Sprintf(`SELECT sum(value*value) FROM %s WHERE n = ?`, table)
	if err := db.QueryRowContext(ctx, q, n).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sequence: sum of squares: %w", err)
	}
	return sum.Float64, nil
}

// Norm is math.Sqrt(SumOfSquares(...)).
func Norm(ctx context.Context, db *sql.DB, table string, n int) (float64, error) {
	sum, err := SumOfSquares(ctx, db, table, n)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(sum), nil
}

func (m *Module) declare(ctx vtab.Context, args []string) (vtab.Table, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("sequence: expects at least 3 args, got %d", len(args))
	}
	if err := ctx.Declare(fmt.Sprintf("CREATE TABLE %s(value REAL, n INTEGER HIDDEN)", args[2])); err != nil {
		return nil, err
	}
	return &Table{tableName: args[2]}, nil
}

// Create declares a new sequence table.
func (m *Module) Create(ctx vtab.Context, args []string) (vtab.Table, error) {
	return m.declare(ctx, args)
}

// Connect attaches to an existing sequence table.
func (m *Module) Connect(ctx vtab.Context, args []string) (vtab.Table, error) {
	return m.declare(ctx, args)
}

// BestIndex requires an equality constraint on n.
func (t *Table) BestIndex(info *vtab.IndexInfo) error {
	for i := range info.Constraints {
		c := &info.Constraints[i]
		if c.Usable && c.Column == 1 && c.Op == vtab.OpEQ {
			c.ArgIndex = 0
			c.Omit = true
			info.IdxNum = idxLength
			return nil
		}
	}
	return fmt.Errorf("sequence: %s requires a constraint n = ?", t.tableName)
}

// Open allocates a new cursor.
func (t *Table) Open() (vtab.Cursor, error) { return &Cursor{}, nil }

// Disconnect is a no-op; tables hold no per-connection state.
func (t *Table) Disconnect() error { return nil }

// Destroy is a no-op; there is no shadow storage.
func (t *Table) Destroy() error { return nil }

// Filter builds the sequence for the n constraint.
func (c *Cursor) Filter(idxNum int, _ string, vals []vtab.Value) error {
	c.rows, c.pos = nil, 0
	if idxNum != idxLength || len(vals) == 0 {
		return fmt.Errorf("sequence: missing n")
	}
	n, err := asInt(vals[0])
	if err != nil {
		return err
	}
	if n > math.MaxInt32 {
		return fmt.Errorf("sequence: n too large: %d", n)
	}
	rows, err := vector.BuildSequence(int(n))
	if err != nil {
		return err
	}
	c.n, c.rows = n, rows
	return nil
}

// Next advances the cursor.
func (c *Cursor) Next() error {
	if c.pos < len(c.rows) {
		c.pos++
	}
	return nil
}

// Eof reports end-of-rows.
func (c *Cursor) Eof() bool { return c.pos >= len(c.rows) }

// Column returns the element (0) or the hidden length (1).
func (c *Cursor) Column(col int) (vtab.Value, error) {
	if c.pos < 0 || c.pos >= len(c.rows) {
		return nil, fmt.Errorf("sequence: Column out of range (pos=%d,len=%d)", c.pos, len(c.rows))
	}
	switch col {
	case 0:
		return c.rows[c.pos], nil
	case 1:
		return c.n, nil
	}
	return nil, fmt.Errorf("sequence: unsupported column %d", col)
}

// Rowid is the element index.
func (c *Cursor) Rowid() (int64, error) {
	if c.pos < 0 || c.pos >= len(c.rows) {
		return 0, fmt.Errorf("sequence: Rowid out of range (pos=%d,len=%d)", c.pos, len(c.rows))
	}
	return int64(c.pos), nil
}

// Close releases the rows.
func (c *Cursor) Close() error { c.rows = nil; c.pos = 0; return nil }

func asInt(v vtab.Value) (int64, error) {
	switch val := v.(type) {
	case int64:
		return val, nil
	case float64:
		if val != math.Trunc(val) {
			return 0, fmt.Errorf("sequence: n must be an integer, got %v", val)
		}
		return int64(val), nil
	case string:
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("sequence: cannot parse n %q: %w", val, err)
		}
		return n, nil
	case nil:
		return 0, fmt.Errorf("sequence: n is nil")
	default:
		return 0, fmt.Errorf("sequence: unsupported n type %T", v)
	}
}
