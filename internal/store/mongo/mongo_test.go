package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"saledash/internal/core"
	"saledash/internal/query"
	"saledash/internal/store"
)

func TestFilterEmpty(t *testing.T) {
	assert.Equal(t, bson.D{}, Filter(query.Filter{}))
}

func TestFilterMonthOnly(t *testing.T) {
	f := Filter(query.MonthFilter("3"))
	require.Len(t, f, 1)
	assert.Equal(t, "dateOfSale", f[0].Key)
	assert.Equal(t, primitive.Regex{Pattern: "-03-"}, f[0].Value)
}

func TestFilterSearchWithPrice(t *testing.T) {
	f := Filter(query.BuildFilter("12", "450"))
	require.Len(t, f, 2)
	assert.Equal(t, "$or", f[1].Key)

	or, ok := f[1].Value.(bson.A)
	require.True(t, ok)
	require.Len(t, or, 3)
	assert.Equal(t, bson.D{{Key: "title", Value: primitive.Regex{Pattern: "450", Options: "i"}}}, or[0])
	assert.Equal(t, bson.D{{Key: "description", Value: primitive.Regex{Pattern: "450", Options: "i"}}}, or[1])
	assert.Equal(t, bson.D{{Key: "price", Value: 450.0}}, or[2])
}

func TestFilterSearchQuotesMetacharacters(t *testing.T) {
	f := Filter(query.BuildFilter("", "a.b*"))
	require.Len(t, f, 1)
	or := f[0].Value.(bson.A)
	require.Len(t, or, 2, "non numeric search has no price branch")
	assert.Equal(t, bson.D{{Key: "title", Value: primitive.Regex{Pattern: `a\.b\*`, Options: "i"}}}, or[0])
}

func TestFindOptions(t *testing.T) {
	o := findOptions(store.FindOptions{Skip: 10, Limit: 10})
	require.NotNil(t, o.Skip)
	require.NotNil(t, o.Limit)
	assert.EqualValues(t, 10, *o.Skip)
	assert.EqualValues(t, 10, *o.Limit)

	o = findOptions(store.FindOptions{})
	assert.Nil(t, o.Skip)
	assert.Nil(t, o.Limit)
}

func TestDocumentRoundTrip(t *testing.T) {
	in := core.Transaction{Title: "t", Description: "d", Price: 9.5, Category: "c", Sold: true, DateOfSale: "2021-01-02", Image: "i"}
	d := toDocument(in)
	d.ID = primitive.NewObjectID()
	out := d.transaction()
	assert.Equal(t, d.ID.Hex(), out.ID)
	out.ID = ""
	assert.Equal(t, in, out)
}
