package satref

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURAIndex(t *testing.T) {
	assert := assert.New(t)
	var ura URAIndexer

	assert.Equal(0, ura.URAIndex(1.0))
	assert.Equal(0, ura.URAIndex(2.4))
	assert.Equal(1, ura.URAIndex(3.0))
	assert.Equal(len(uraTable), ura.URAIndex(10000.0))
}
