package query

import (
	"net/url"
	"testing"

	"bootcamper/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

var courseFields = []string{"title", "tuition", "minimumSkill", "bootcamp", "createdAt"}

func TestTranslateEquality(t *testing.T) {
	values := url.Values{"title": {"Go Basics"}}

	q, err := Translate(values, courseFields)
	require.NoError(t, err)

	assert.Equal(t, bson.M{"title": "Go Basics"}, q.Filter)
	assert.Equal(t, DefaultPage, q.Page)
	assert.Equal(t, DefaultLimit, q.Limit)
}

func TestTranslateComparisonOperators(t *testing.T) {
	values := url.Values{"tuition[gt]": {"5"}}

	q, err := Translate(values, courseFields)
	require.NoError(t, err)

	assert.Equal(t, bson.M{"tuition": bson.M{"$gt": float64(5)}}, q.Filter)
}

func TestTranslateMergesOperatorsOnSameField(t *testing.T) {
	values := url.Values{
		"tuition[gte]": {"100"},
		"tuition[lte]": {"5000"},
	}

	q, err := Translate(values, courseFields)
	require.NoError(t, err)

	assert.Equal(t, bson.M{"tuition": bson.M{"$gte": float64(100), "$lte": float64(5000)}}, q.Filter)
}

func TestTranslateInOperator(t *testing.T) {
	values := url.Values{"minimumSkill[in]": {"Beginner,Advanced"}}

	q, err := Translate(values, courseFields)
	require.NoError(t, err)

	assert.Equal(t, bson.M{"minimumSkill": bson.M{"$in": []interface{}{"Beginner", "Advanced"}}}, q.Filter)
}

func TestTranslateUnknownOperatorFallsBackToEquality(t *testing.T) {
	values := url.Values{"tuition[near]": {"10"}}

	q, err := Translate(values, courseFields)
	require.NoError(t, err)

	assert.Equal(t, bson.M{"tuition[near]": float64(10)}, q.Filter)
}

func TestTranslateRejectsUnknownField(t *testing.T) {
	values := url.Values{"password": {"x"}}

	_, err := Translate(values, courseFields)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)
}

func TestTranslateRejectsUnknownFieldWithOperator(t *testing.T) {
	values := url.Values{"secret[gt]": {"1"}}

	_, err := Translate(values, courseFields)
	assert.Error(t, err)
}

func TestTranslateBooleanCoercion(t *testing.T) {
	values := url.Values{"title": {"true"}}

	q, err := Translate(values, courseFields)
	require.NoError(t, err)

	assert.Equal(t, bson.M{"title": true}, q.Filter)
}

func TestTranslateSelect(t *testing.T) {
	values := url.Values{"select": {"title,tuition"}}

	q, err := Translate(values, courseFields)
	require.NoError(t, err)

	assert.Equal(t, bson.M{"title": 1, "tuition": 1}, q.Projection)
	assert.Empty(t, q.Filter)
}

func TestTranslateSortDefaultsToCreatedAtDescending(t *testing.T) {
	q, err := Translate(url.Values{}, courseFields)
	require.NoError(t, err)

	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, q.Sort)
}

func TestTranslateSortWithDescendingPrefix(t *testing.T) {
	values := url.Values{"sort": {"-tuition,title"}}

	q, err := Translate(values, courseFields)
	require.NoError(t, err)

	assert.Equal(t, bson.D{
		{Key: "tuition", Value: -1},
		{Key: "title", Value: 1},
	}, q.Sort)
}

func TestTranslateReservedKeysExcludedFromFilter(t *testing.T) {
	values := url.Values{
		"select": {"title"},
		"sort":   {"title"},
		"page":   {"2"},
		"limit":  {"5"},
	}

	q, err := Translate(values, courseFields)
	require.NoError(t, err)

	assert.Empty(t, q.Filter)
	assert.Equal(t, int64(2), q.Page)
	assert.Equal(t, int64(5), q.Limit)
	assert.Equal(t, int64(5), q.Skip())
}

func TestTranslatePaginationIsLenient(t *testing.T) {
	for _, raw := range []string{"abc", "-3", "0", ""} {
		values := url.Values{"page": {raw}, "limit": {raw}}

		q, err := Translate(values, courseFields)
		require.NoError(t, err)

		assert.Equal(t, DefaultPage, q.Page, "page %q", raw)
		assert.Equal(t, DefaultLimit, q.Limit, "limit %q", raw)
	}
}

func TestFindOptions(t *testing.T) {
	values := url.Values{"page": {"3"}, "limit": {"10"}, "select": {"title"}}

	q, err := Translate(values, courseFields)
	require.NoError(t, err)

	opts := q.FindOptions()
	assert.Equal(t, int64(20), *opts.Skip)
	assert.Equal(t, int64(10), *opts.Limit)
	assert.Equal(t, bson.M{"title": 1}, opts.Projection)
}

func TestBuildPaginationWindows(t *testing.T) {
	tests := []struct {
		name               string
		page, limit, total int64
		wantNext, wantPrev bool
	}{
		{"first page of many", 1, 20, 100, true, false},
		{"middle page", 2, 20, 100, true, true},
		{"last full page", 5, 20, 100, false, true},
		{"single page", 1, 20, 5, false, false},
		{"exact boundary", 1, 20, 20, false, false},
		{"one over boundary", 1, 20, 21, true, false},
		{"empty result beyond end", 3, 20, 10, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BuildPagination(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.wantNext, p.Next != nil, "next")
			assert.Equal(t, tt.wantPrev, p.Previous != nil, "previous")
			if p.Next != nil {
				assert.Equal(t, tt.page+1, p.Next.Page)
				assert.Equal(t, tt.limit, p.Next.Limit)
			}
			if p.Previous != nil {
				assert.Equal(t, tt.page-1, p.Previous.Page)
			}
		})
	}
}

func TestPipelineStageOrder(t *testing.T) {
	values := url.Values{"page": {"2"}, "limit": {"10"}}

	q, err := Translate(values, courseFields)
	require.NoError(t, err)

	pop := &Populate{From: "bootcamps", LocalField: "bootcamp", Project: bson.M{"name": 1, "description": 1}}
	pipeline := q.Pipeline(pop)

	require.Len(t, pipeline, 6)
	assert.Equal(t, "$match", pipeline[0][0].Key)
	assert.Equal(t, "$sort", pipeline[1][0].Key)
	assert.Equal(t, "$skip", pipeline[2][0].Key)
	assert.Equal(t, "$limit", pipeline[3][0].Key)
	assert.Equal(t, "$lookup", pipeline[4][0].Key)
	assert.Equal(t, "$unwind", pipeline[5][0].Key)

	assert.Equal(t, int64(10), pipeline[2][0].Value)
}
