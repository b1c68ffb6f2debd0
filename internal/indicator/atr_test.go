package indicator

import (
	"testing"

	"github.com/rxtech-lab/argo-zscore/internal/types"
	"github.com/rxtech-lab/argo-zscore/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ATRTestSuite struct {
	suite.Suite
}

func TestATRSuite(t *testing.T) {
	suite.Run(t, new(ATRTestSuite))
}

func (suite *ATRTestSuite) TestInvalidPeriod() {
	_, err := NewATR(-1)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
}

func (suite *ATRTestSuite) TestTrueRangeUsesPreviousClose() {
	atr, err := NewATR(3)
	suite.Require().NoError(err)

	// first bar: high - low = 2
	atr.HandleBar(types.Bar{High: 11, Low: 9, Close: 10})
	suite.False(atr.Initialized())
	suite.InDelta(2.0, atr.Value(), 1e-12)

	// gap up: max(15, 10) - min(14, 10) = 5
	atr.HandleBar(types.Bar{High: 15, Low: 14, Close: 14.5})
	suite.InDelta(3.5, atr.Value(), 1e-12)

	// inside bar: max(15, 14.5) - min(14, 14.5) = 1
	atr.HandleBar(types.Bar{High: 15, Low: 14, Close: 14})
	suite.True(atr.Initialized())
	suite.InDelta(8.0/3.0, atr.Value(), 1e-12)

	// window slides, the first range drops out: (5 + 1 + 1) / 3
	atr.HandleBar(types.Bar{High: 14.5, Low: 13.5, Close: 14})
	suite.InDelta(7.0/3.0, atr.Value(), 1e-12)
}

func (suite *ATRTestSuite) TestReset() {
	atr, err := NewATR(1)
	suite.Require().NoError(err)

	atr.Update(2, 1, 1.5)
	suite.True(atr.Initialized())

	atr.Reset()
	suite.False(atr.Initialized())
	suite.Equal(0.0, atr.Value())

	// previous close was cleared so the range is high - low again
	atr.Update(5, 4, 4.5)
	suite.InDelta(1.0, atr.Value(), 1e-12)
	suite.Equal(types.IndicatorTypeATR, atr.Name())
}
