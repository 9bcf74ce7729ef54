package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequest_Offset(t *testing.T) {
	assert.Equal(t, 0, PageRequest{Page: 0, Size: 20}.Offset())
	assert.Equal(t, 40, PageRequest{Page: 2, Size: 20}.Offset())
	assert.Equal(t, math.MaxInt, PageRequest{Page: math.MaxInt / 2, Size: 4}.Offset())
	assert.Equal(t, math.MaxInt, PageRequest{Page: 4611686018427387904, Size: 2}.Offset())
}

func TestNewPage(t *testing.T) {
	page := NewPage[int](nil, PageRequest{Page: 3, Size: 4}, 10)
	assert.Equal(t, []int{}, page.Content)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 3, page.Number)
}
