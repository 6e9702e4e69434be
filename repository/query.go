package repository

import (
	"strings"

	"github.com/jmoiron/sqlx"
)

// conditions accumulates WHERE clauses. Slice arguments are expanded by
// sqlx.In, so "col IN (?)" takes a slice.
type conditions struct {
	clauses []string
	args    []interface{}
}

func (c *conditions) add(clause string, args ...interface{}) {
	c.clauses = append(c.clauses, clause)
	c.args = append(c.args, args...)
}

func (c *conditions) like(column, value string) {
	if value != "" {
		c.add(column+" LIKE ?", "%"+value+"%")
	}
}

func (c *conditions) equal(column string, value interface{}) {
	c.add(column+" = ?", value)
}

func (c *conditions) where() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.clauses, " AND ")
}

// build appends the clauses to base and expands IN lists.
func (c *conditions) build(db *sqlx.DB, base, suffix string, extra ...interface{}) (string, []interface{}, error) {
	args := append(append([]interface{}{}, c.args...), extra...)
	query, args, err := sqlx.In(base+c.where()+suffix, args...)
	if err != nil {
		return "", nil, err
	}
	return db.Rebind(query), args, nil
}

func offset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}
