package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForVisitsEveryIndexOnce(t *testing.T) {
	for _, workers := range []int{1, 3, 8, 64} {
		var hits [100]int32
		For(0, 100, workers, func(i int) {
			atomic.AddInt32(&hits[i], 1)
		})
		for i, h := range hits {
			assert.EqualValues(t, 1, h, "workers=%d index=%d", workers, i)
		}
	}
}

func TestForDynamicVisitsEveryIndexOnce(t *testing.T) {
	for _, chunk := range []int{0, 1, 7, 200} {
		var hits [50]int32
		ForDynamic(0, 50, chunk, 4, func(i int) {
			atomic.AddInt32(&hits[i], 1)
		})
		for i, h := range hits {
			assert.EqualValues(t, 1, h, "chunk=%d index=%d", chunk, i)
		}
	}
}

func TestEmptyRanges(t *testing.T) {
	called := false
	For(5, 5, 4, func(int) { called = true })
	ForDynamic(3, 2, 1, 4, func(int) { called = true })
	assert.False(t, called)
}

func TestResolve(t *testing.T) {
	assert.Equal(t, 1, Resolve(8, 0))
	assert.Equal(t, 3, Resolve(8, 3))
	assert.Equal(t, 2, Resolve(2, 10))
	assert.Equal(t, min(NumWorkers(), 1000), Resolve(0, 1000))
}
