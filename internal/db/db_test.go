package db

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/cv-builder/internal/versions"
)

func TestKVStore_ImplementsStorage(t *testing.T) {
	var s versions.Storage = NewKVStore(&DB{table: DefaultTable})
	assert.NotNil(t, s)
}

func TestClose_NilPool(t *testing.T) {
	db := &DB{}
	assert.NotPanics(t, db.Close)
}
