package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerdictLabel(t *testing.T) {
	assert.Equal(t, "effective", verdictLabel(true))
	assert.Equal(t, "deficient", verdictLabel(false))
}
