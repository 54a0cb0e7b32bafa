package supabase

import (
	"net/url"
	"strconv"
	"strings"
)

// Query builds PostgREST query strings: filters, ordering and windowing.
type Query struct {
	values url.Values
	order  []string
}

func NewQuery() *Query {
	return &Query{values: url.Values{}}
}

func (q *Query) Select(columns string) *Query {
	q.values.Set("select", columns)
	return q
}

// Eq adds the filter column=eq.value.
func (q *Query) Eq(column, value string) *Query {
	q.values.Add(column, "eq."+value)
	return q
}

// In adds the filter column=in.(v1,v2,...).
func (q *Query) In(column string, values ...string) *Query {
	q.values.Add(column, "in.("+strings.Join(values, ",")+")")
	return q
}

func (q *Query) Order(column string, desc bool) *Query {
	if desc {
		q.order = append(q.order, column+".desc")
	} else {
		q.order = append(q.order, column+".asc")
	}
	return q
}

func (q *Query) Limit(n int) *Query {
	q.values.Set("limit", strconv.Itoa(n))
	return q
}

func (q *Query) Offset(n int) *Query {
	q.values.Set("offset", strconv.Itoa(n))
	return q
}

func (q *Query) OnConflict(columns string) *Query {
	q.values.Set("on_conflict", columns)
	return q
}

func (q *Query) Values() url.Values {
	out := url.Values{}
	if q == nil {
		return out
	}
	for k, v := range q.values {
		out[k] = append([]string(nil), v...)
	}
	if len(q.order) > 0 {
		out.Set("order", strings.Join(q.order, ","))
	}
	return out
}

func (q *Query) Encode() string {
	return q.Values().Encode()
}
