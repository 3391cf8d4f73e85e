package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageWindow(t *testing.T) {
	tests := []struct {
		page, size   int
		offset, take int
	}{
		{1, 10, 0, 10},
		{3, 10, 20, 10},
		{0, 10, 0, 10},
		{-4, 5, 0, 5},
		{2, 0, 20, 20},
	}
	for _, tt := range tests {
		offset, take := pageWindow(tt.page, tt.size)
		assert.Equal(t, tt.offset, offset, "page=%d size=%d", tt.page, tt.size)
		assert.Equal(t, tt.take, take, "page=%d size=%d", tt.page, tt.size)
	}
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%seattle%", containsPattern("Seattle"))
	assert.Equal(t, "%100!%!_off!!%", containsPattern("100%_off!"))
}

func TestPropertyOrder(t *testing.T) {
	assert.Equal(t, "id ASC", propertyOrder("", false))
	assert.Equal(t, "id ASC", propertyOrder("bedrooms", true))
	assert.Equal(t, "price DESC, id ASC", propertyOrder("PRICE", true))
	assert.Equal(t, "year ASC, id ASC", propertyOrder(" year ", false))
	assert.Equal(t, "name DESC, id ASC", propertyOrder("Name", true))
}

func TestCodeMatchColumn(t *testing.T) {
	assert.Equal(t, "BINARY code_internal", codeMatchColumn("mysql"))
	assert.Equal(t, "code_internal", codeMatchColumn("postgres"))
	assert.Equal(t, "code_internal", codeMatchColumn("sqlite"))
}
