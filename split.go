package sentimental

import (
	"fmt"
	"math"
	"math/rand"
)

// TrainTestSplit shuffles the indices 0..n-1 with seed and returns the train
// and test partitions. The test partition holds ceil(n*testSize) indices.
func TrainTestSplit(n int, testSize float64, seed int64) ([]int, []int, error) {
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, fmt.Errorf("test size %.2f must be in (0, 1)", testSize)
	}
	nTest := int(math.Ceil(testSize * float64(n)))
	nTrain := n - nTest
	if nTest == 0 || nTrain == 0 {
		return nil, nil, fmt.Errorf("%w: %d examples", ErrDatasetTooSmall, n)
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	return perm[nTest:], perm[:nTest], nil
}
