package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("São Paulo, BR", "são"))
	assert.True(t, ContainsFold("São Paulo, BR", "SÃO PA"))
	assert.True(t, ContainsFold("London, GB", "don"))
	assert.False(t, ContainsFold("London, GB", "paris"))
}

func TestRuneLen(t *testing.T) {
	assert.Equal(t, 1, RuneLen("ã"))
	assert.Equal(t, 2, RuneLen("Sã"))
	assert.Equal(t, 0, RuneLen(""))
}

func TestPlaceQuery(t *testing.T) {
	assert.Equal(t, "London,GB", PlaceQuery("London, GB"))
	assert.Equal(t, "New York,US", PlaceQuery(" New York ,  US "))
	assert.Equal(t, "London", PlaceQuery("  London "))
	assert.Equal(t, "London", PlaceQuery("London,"))
}
