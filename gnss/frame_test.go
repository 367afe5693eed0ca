package gnss

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFramerResyncsPastGarbage(t *testing.T) {
	assert := assert.New(t)
	f := &framer{}

	garbage := []byte{0x01, 0x02, 0xAA, 0x00, 0xAA, 0x44, 0x00}
	for _, b := range garbage {
		frame, ok := f.addByte(b)
		assert.False(ok)
		assert.Nil(frame)
	}
	// The synchronizer should be back in stateSync0 after the failed
	// 0xAA 0x44 0x00 attempt, ready to catch a real sync sequence next.
	assert.Equal(stateSync0, f.state)
}

func TestFramerProducesCompleteFrame(t *testing.T) {
	assert := assert.New(t)
	f := &framer{}
	frame := buildFrame(msgIDRange, 2300, 0, []byte{1, 2, 3, 4})

	var got []byte
	var ok bool
	for _, b := range frame {
		got, ok = f.addByte(b)
	}
	assert.True(ok)
	assert.Equal(frame, got)
	assert.True(crcValid(got))
}
