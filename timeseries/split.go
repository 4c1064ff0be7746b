package timeseries

// TrainPercent is the share of observations assigned to training.
const TrainPercent = 70

// Split is a chronological partition of a series.
type Split struct {
	Training   *Series
	Evaluation *Series
}

// SplitIndex returns the number of training rows for n observations:
// floor(0.7n), clamped so both partitions keep at least one row.
func SplitIndex(n int) int {
	k := n * TrainPercent / 100
	if k < 1 {
		k = 1
	}
	if k > n-1 {
		k = n - 1
	}
	return k
}

// SplitChronological splits a sorted series into a training prefix and an
// evaluation suffix without reordering.
func SplitChronological(s *Series) (*Split, error) {
	n := s.Len()
	if n < 2 {
		return nil, &InsufficientDataError{Op: "train/evaluation split", Need: 2, Got: n}
	}

	k := SplitIndex(n)
	return &Split{
		Training:   s.Slice(0, k),
		Evaluation: s.Slice(k, n),
	}, nil
}
