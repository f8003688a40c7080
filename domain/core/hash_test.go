package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeInputHash_OrderMatters(t *testing.T) {
	a := ComputeInputHash("lhs", []string{"A", "B"}, 200, int64(777))
	b := ComputeInputHash("lhs", []string{"B", "A"}, 200, int64(777))
	c := ComputeInputHash("lhs", []string{"A", "B"}, 200, int64(777))

	assert.NotEqual(t, a, b)
	assert.Equal(t, a, c)
	assert.Len(t, a.String(), 64)
	assert.Len(t, a.Short(), 12)
}

func TestTimestampFileStamp(t *testing.T) {
	ts := NewTimestamp(time.Date(2024, time.March, 7, 15, 4, 5, 0, time.UTC))
	assert.Equal(t, "240307", ts.FileStamp())
}
