package stats

import (
	"fmt"
	"math"
)

// DivisionByZeroError reports a zero actual value, for which the
// percentage error is undefined.
type DivisionByZeroError struct {
	Index int
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("MAPE is undefined: actual value at evaluation index %d is zero", e.Index)
}

// Accuracy holds point-forecast accuracy metrics.
type Accuracy struct {
	MAPE float64 // Mean absolute percentage error, in percent
	RMSE float64 // Root mean squared error
}

func checkLengths(actual, predicted []float64) error {
	if len(actual) != len(predicted) {
		return fmt.Errorf("length mismatch: %d actual values, %d predictions", len(actual), len(predicted))
	}
	if len(actual) == 0 {
		return fmt.Errorf("no values to score")
	}
	return nil
}

// MAPE calculates mean(|actual - predicted| / |actual|) * 100.
// Values are aligned by position. A zero actual value fails with
// *DivisionByZeroError.
func MAPE(actual, predicted []float64) (float64, error) {
	if err := checkLengths(actual, predicted); err != nil {
		return 0, err
	}

	sum := 0.0
	for i, a := range actual {
		if a == 0 {
			return 0, &DivisionByZeroError{Index: i}
		}
		sum += math.Abs(a-predicted[i]) / math.Abs(a)
	}
	return sum / float64(len(actual)) * 100, nil
}

// RMSE calculates sqrt(mean((actual - predicted)^2)).
func RMSE(actual, predicted []float64) (float64, error) {
	if err := checkLengths(actual, predicted); err != nil {
		return 0, err
	}

	sum := 0.0
	for i, a := range actual {
		d := a - predicted[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(actual))), nil
}

// Score computes both MAPE and RMSE.
func Score(actual, predicted []float64) (*Accuracy, error) {
	mape, err := MAPE(actual, predicted)
	if err != nil {
		return nil, err
	}
	rmse, err := RMSE(actual, predicted)
	if err != nil {
		return nil, err
	}
	return &Accuracy{MAPE: mape, RMSE: rmse}, nil
}
