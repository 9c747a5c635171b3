// Package query translates raw HTTP query parameters into MongoDB filter,
// projection, sort and page windows shared by every list endpoint.
package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"bootcamper/apperrors"
	"bootcamper/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultPage  int64 = 1
	DefaultLimit int64 = 20
)

// reserved keys are extracted before filter construction.
var reserved = map[string]bool{
	"select": true,
	"sort":   true,
	"page":   true,
	"limit":  true,
}

var operators = map[string]string{
	"gt":  "$gt",
	"gte": "$gte",
	"lt":  "$lt",
	"lte": "$lte",
	"in":  "$in",
}

// Query holds the translated filter, projection, sort and paging options.
type Query struct {
	Filter     bson.M
	Projection bson.M
	Sort       bson.D
	Page       int64
	Limit      int64
}

// Populate asks a list query to resolve one reference field inline,
// replaced by the projected subset of the referenced record.
type Populate struct {
	From       string
	LocalField string
	Project    bson.M
}

// Translate builds a Query from raw parameters. Filter field names are
// checked against the caller's allow-list; unknown fields are rejected
// rather than passed through to the store.
func Translate(values url.Values, allowed []string) (*Query, error) {
	q := &Query{
		Filter: bson.M{},
		Page:   DefaultPage,
		Limit:  DefaultLimit,
	}

	allowedSet := make(map[string]bool, len(allowed))
	for _, f := range allowed {
		allowedSet[f] = true
	}

	for key, vals := range values {
		if reserved[key] || len(vals) == 0 {
			continue
		}
		value := vals[0]

		field, op := splitOperator(key)
		if !allowedSet[field] {
			return nil, apperrors.BadRequest(fmt.Sprintf("Cannot filter on field '%s'", field))
		}

		mongoOp, known := operators[op]
		switch {
		case op == "":
			q.Filter[field] = coerce(value)
		case known && mongoOp == "$in":
			parts := strings.Split(value, ",")
			in := make([]interface{}, 0, len(parts))
			for _, p := range parts {
				in = append(in, coerce(p))
			}
			mergeOperator(q.Filter, field, "$in", in)
		case known:
			mergeOperator(q.Filter, field, mongoOp, coerce(value))
		default:
			// Unrecognized operator degrades to literal equality.
			q.Filter[key] = coerce(value)
		}
	}

	if sel := values.Get("select"); sel != "" {
		q.Projection = bson.M{}
		for _, f := range strings.Split(sel, ",") {
			if f = strings.TrimSpace(f); f != "" {
				q.Projection[f] = 1
			}
		}
	}

	q.Sort = parseSort(values.Get("sort"))
	q.Page = parsePositive(values.Get("page"), DefaultPage)
	q.Limit = parsePositive(values.Get("limit"), DefaultLimit)

	return q, nil
}

// splitOperator divides "field[op]" into its parts. A key without brackets
// returns an empty op.
func splitOperator(key string) (field, op string) {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return key, ""
	}
	return key[:open], key[open+1 : len(key)-1]
}

func mergeOperator(filter bson.M, field, op string, value interface{}) {
	if existing, ok := filter[field].(bson.M); ok {
		existing[op] = value
		return
	}
	filter[field] = bson.M{op: value}
}

// coerce turns numeric-looking values into float64 so comparison operators
// behave against numeric fields, and recognizes booleans.
func coerce(value string) interface{} {
	if n, err := strconv.ParseFloat(value, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return value
}

func parseSort(raw string) bson.D {
	if raw == "" {
		return bson.D{{Key: "createdAt", Value: -1}}
	}
	sort := bson.D{}
	for _, f := range strings.Split(raw, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		order := 1
		if strings.HasPrefix(f, "-") {
			order = -1
			f = f[1:]
		}
		sort = append(sort, bson.E{Key: f, Value: order})
	}
	if len(sort) == 0 {
		return bson.D{{Key: "createdAt", Value: -1}}
	}
	return sort
}

// parsePositive is deliberately lenient: anything that is not a positive
// integer falls back to the default, never an error.
func parsePositive(raw string, fallback int64) int64 {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func (q *Query) Skip() int64 {
	return (q.Page - 1) * q.Limit
}

// FindOptions produces the driver options for a plain find.
func (q *Query) FindOptions() *options.FindOptions {
	opts := options.Find().
		SetSort(q.Sort).
		SetSkip(q.Skip()).
		SetLimit(q.Limit)
	if q.Projection != nil {
		opts.SetProjection(q.Projection)
	}
	return opts
}

// Pipeline builds the aggregation equivalent of FindOptions, expanding the
// populate reference inline when one is requested.
func (q *Query) Pipeline(pop *Populate) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: q.Filter}},
		bson.D{{Key: "$sort", Value: q.Sort}},
		bson.D{{Key: "$skip", Value: q.Skip()}},
		bson.D{{Key: "$limit", Value: q.Limit}},
	}
	if q.Projection != nil {
		pipeline = append(pipeline, bson.D{{Key: "$project", Value: q.Projection}})
	}
	if pop != nil {
		pipeline = append(pipeline, LookupStages(pop)...)
	}
	return pipeline
}

// LookupStages resolves a single reference field to the projected subset of
// the referenced record.
func LookupStages(pop *Populate) []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from":         pop.From,
			"localField":   pop.LocalField,
			"foreignField": "_id",
			"as":           pop.LocalField,
			"pipeline":     []bson.M{{"$project": pop.Project}},
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$" + pop.LocalField,
			"preserveNullAndEmptyArrays": true,
		}}},
	}
}

// BuildPagination derives the next/previous window descriptors from the
// total count of matching records, independent of skip and limit.
func BuildPagination(page, limit, total int64) *utils.Pagination {
	p := &utils.Pagination{}
	if page*limit < total {
		p.Next = &utils.Page{Page: page + 1, Limit: limit}
	}
	if page > 1 {
		p.Previous = &utils.Page{Page: page - 1, Limit: limit}
	}
	return p
}
