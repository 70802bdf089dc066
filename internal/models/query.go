package models

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Table names served by the gateway.
const (
	TableArcaives = "arcaives"
	TableMemos    = "memos"
	TableContacts = "contacts"
)

var ErrBadQuery = errors.New("bad query")

// Order is one ORDER BY term.
type Order struct {
	Column string
	Desc   bool
}

// Filter is an equality predicate, column = value.
type Filter struct {
	Column string
	Value  string
}

// Query describes an ordered select. A zero Limit means no limit.
type Query struct {
	Orders  []Order
	Filters []Filter
	Limit   int
}

// OrderBy appends an ORDER BY term and returns the query for chaining.
func (q Query) OrderBy(column string, desc bool) Query {
	q.Orders = append(append([]Order(nil), q.Orders...), Order{Column: column, Desc: desc})
	return q
}

// Eq appends an equality filter.
func (q Query) Eq(column, value string) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), Filter{Column: column, Value: value})
	return q
}

func (q Query) WithLimit(n int) Query {
	q.Limit = n
	return q
}

// Values encodes q as gateway query parameters:
//
//	order=sort_order.asc,created_at.desc&limit=6&is_secret=eq.false
func (q Query) Values() url.Values {
	v := url.Values{}
	if len(q.Orders) > 0 {
		terms := make([]string, len(q.Orders))
		for i, o := range q.Orders {
			dir := "asc"
			if o.Desc {
				dir = "desc"
			}
			terms[i] = o.Column + "." + dir
		}
		v.Set("order", strings.Join(terms, ","))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	for _, f := range q.Filters {
		v.Add(f.Column, "eq."+f.Value)
	}
	return v
}

// ParseQuery decodes gateway query parameters. Column names are not checked
// here; callers validate them against their own whitelist.
func ParseQuery(v url.Values) (Query, error) {
	var q Query

	if raw := v.Get("order"); raw != "" {
		for _, term := range strings.Split(raw, ",") {
			col, dir, ok := strings.Cut(strings.TrimSpace(term), ".")
			if !ok {
				dir = "asc"
			}
			switch dir {
			case "asc":
				q.Orders = append(q.Orders, Order{Column: col})
			case "desc":
				q.Orders = append(q.Orders, Order{Column: col, Desc: true})
			default:
				return Query{}, fmt.Errorf("%w: order direction %q", ErrBadQuery, dir)
			}
		}
	}

	if raw := v.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return Query{}, fmt.Errorf("%w: limit %q", ErrBadQuery, raw)
		}
		q.Limit = n
	}

	keys := make([]string, 0, len(v))
	for k := range v {
		if k != "order" && k != "limit" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, raw := range v[k] {
			value, ok := strings.CutPrefix(raw, "eq.")
			if !ok {
				return Query{}, fmt.Errorf("%w: unsupported operator in %s=%s", ErrBadQuery, k, raw)
			}
			q.Filters = append(q.Filters, Filter{Column: k, Value: value})
		}
	}

	return q, nil
}
