package calculator

import (
	"errors"

	"gonum.org/v1/gonum/stat"

	"StockLens/internal/model"
)

var (
	ErrNilSeries = errors.New("nil series")
	ErrNoVolume  = errors.New("series has no Volume column")
	ErrNoBars    = errors.New("series has no bars")
)

// MeanVolume returns the arithmetic mean of Volume over all bars, unweighted.
func MeanVolume(s *model.Series) (float64, error) {
	if s == nil {
		return 0, ErrNilSeries
	}
	if !s.Has(model.ColVolume) {
		return 0, ErrNoVolume
	}
	if s.Len() == 0 {
		return 0, ErrNoBars
	}
	return stat.Mean(s.Volumes(), nil), nil
}
