package indicator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/rxtech-lab/argo-zscore/internal/types"
	"github.com/rxtech-lab/argo-zscore/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ZScoreTestSuite struct {
	suite.Suite
}

func TestZScoreSuite(t *testing.T) {
	suite.Run(t, new(ZScoreTestSuite))
}

func (suite *ZScoreTestSuite) TestInvalidPeriod() {
	_, err := NewZScore(0)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
}

func (suite *ZScoreTestSuite) TestKnownSequence() {
	zscore, err := NewZScore(5)
	suite.Require().NoError(err)

	for _, price := range []float64{1, 2, 3, 4, 5} {
		zscore.Update(price)
	}

	suite.True(zscore.Initialized())
	// (5 - 3) / sqrt(2)
	suite.InDelta(1.41421356, zscore.Value(), 1e-6)
}

func (suite *ZScoreTestSuite) TestBufferBoundAndInitializedLatch() {
	zscore, err := NewZScore(10)
	suite.Require().NoError(err)

	rng := rand.New(rand.NewSource(7))

	for i := 1; i <= 100; i++ {
		zscore.Update(100 + rng.Float64()*10)

		suite.LessOrEqual(zscore.Count(), 10)
		suite.Equal(i >= 10, zscore.Initialized(), "bar %d", i)
	}
}

func (suite *ZScoreTestSuite) TestNotReadyKeepsZero() {
	zscore, err := NewZScore(3)
	suite.Require().NoError(err)

	zscore.Update(1)
	zscore.Update(50)

	suite.False(zscore.Initialized())
	suite.Equal(0.0, zscore.Value())
}

func (suite *ZScoreTestSuite) TestConstantWindowKeepsPreviousValue() {
	zscore, err := NewZScore(3)
	suite.Require().NoError(err)

	for _, price := range []float64{1, 2, 3, 7, 7} {
		zscore.Update(price)
	}

	// window [3, 7, 7]
	previous := zscore.Value()
	suite.NotZero(previous)

	for range 5 {
		zscore.Update(7)

		suite.Equal(previous, zscore.Value())
		suite.False(math.IsNaN(zscore.Value()))
		suite.False(math.IsInf(zscore.Value(), 0))
	}
}

func (suite *ZScoreTestSuite) TestConstantWindowOfInexactPricesKeepsPreviousValue() {
	for _, price := range []float64{0.1, 101.37, 23.33} {
		zscore, err := NewZScore(240)
		suite.Require().NoError(err)

		rng := rand.New(rand.NewSource(11))
		for range 240 {
			zscore.Update(price * (1 + (rng.Float64()-0.5)*0.01))
		}

		// one varying price left in the window
		for range 239 {
			zscore.Update(price)
		}

		previous := zscore.Value()
		suite.NotZero(previous, "price %v", price)

		for range 5 {
			zscore.Update(price)

			suite.Equal(previous, zscore.Value(), "price %v", price)
		}
	}
}

func (suite *ZScoreTestSuite) TestConstantWindowFromStartStaysZero() {
	zscore, err := NewZScore(4)
	suite.Require().NoError(err)

	for range 10 {
		zscore.Update(42)
	}

	suite.True(zscore.Initialized())
	suite.Equal(0.0, zscore.Value())
}

func (suite *ZScoreTestSuite) TestHandleBarUsesClose() {
	zscore, err := NewZScore(2)
	suite.Require().NoError(err)

	zscore.HandleBar(types.Bar{Open: 100, High: 100, Low: 100, Close: 1})
	zscore.HandleBar(types.Bar{Open: 100, High: 100, Low: 100, Close: 3})

	// mean 2, population std 1
	suite.InDelta(1.0, zscore.Value(), 1e-12)
	suite.Equal(types.IndicatorTypeZScore, zscore.Name())
	suite.Equal(2, zscore.Period())
}

func (suite *ZScoreTestSuite) TestReset() {
	zscore, err := NewZScore(2)
	suite.Require().NoError(err)

	zscore.Update(1)
	zscore.Update(3)
	suite.True(zscore.Initialized())

	zscore.Reset()

	suite.False(zscore.Initialized())
	suite.Equal(0.0, zscore.Value())
	suite.Equal(0, zscore.Count())

	zscore.Update(5)
	suite.False(zscore.Initialized())
}
