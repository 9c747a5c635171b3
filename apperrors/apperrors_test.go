package apperrors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestConstructorsCarryStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, BadRequest("x").Status)
	assert.Equal(t, http.StatusUnauthorized, Unauthorized("x").Status)
	assert.Equal(t, http.StatusForbidden, Forbidden("x").Status)
	assert.Equal(t, http.StatusNotFound, NotFound("x").Status)
	assert.Equal(t, http.StatusBadRequest, Conflict("x").Status)
	assert.Equal(t, http.StatusInternalServerError, Internal(errors.New("boom")).Status)
}

func TestInternalHidesDetail(t *testing.T) {
	err := Internal(errors.New("connection refused"))
	assert.Equal(t, "Server Error", err.Message)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := Wrap(http.StatusInternalServerError, "outer", inner)
	assert.ErrorIs(t, err, inner)
}

func TestFromMongoNoDocuments(t *testing.T) {
	err := FromMongo(mongo.ErrNoDocuments, "Bootcamp not found")
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Equal(t, "Bootcamp not found", err.Message)
}

func TestFromMongoDuplicateKey(t *testing.T) {
	dup := mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000}},
	}
	err := FromMongo(dup, "unused")
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "Value already exist in database", err.Message)
}

func TestFromMongoUnknownIsInternal(t *testing.T) {
	err := FromMongo(errors.New("socket closed"), "unused")
	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.Equal(t, "Server Error", err.Message)
}
