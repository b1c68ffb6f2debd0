package commission_fee

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type CommissionFeeTestSuite struct {
	suite.Suite
}

func TestCommissionFeeSuite(t *testing.T) {
	suite.Run(t, new(CommissionFeeTestSuite))
}

func (suite *CommissionFeeTestSuite) TestZeroCommissionFee() {
	fee := NewZeroCommissionFee()
	suite.NotNil(fee)

	tests := []struct {
		name     string
		quantity float64
		price    float64
	}{
		{"zero quantity", 0, 100},
		{"small quantity", 10, 100},
		{"large quantity", 10000, 100},
		{"negative quantity", -100, 100},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.Equal(0.0, fee.Calculate(tc.quantity, tc.price))
		})
	}
}

func (suite *CommissionFeeTestSuite) TestInteractiveBrokerCommissionFee() {
	fee := NewInteractiveBrokerCommissionFee()
	suite.NotNil(fee)

	tests := []struct {
		name     string
		quantity float64
		price    float64
		expected float64
	}{
		{"small quantity - min fee", 10, 50, 1.0},      // 0.005 * 10 = 0.05 < 1.0
		{"quantity at threshold", 200, 50, 1.0},        // 0.005 * 200 = 1.0
		{"large quantity", 1000, 50, 5.0},              // 0.005 * 1000 = 5.0
		{"short fill uses absolute quantity", -1000, 50, 5.0},
		{"capped at one percent of value", 10, 5, 0.5}, // 1% of $50
		{"penny stock cap", 10000, 0.02, 2.0},          // 1% of $200
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.InDelta(tc.expected, fee.Calculate(tc.quantity, tc.price), 1e-9)
		})
	}
}

func (suite *CommissionFeeTestSuite) TestGetCommissionFeeHandler() {
	tests := []struct {
		name           string
		broker         Broker
		expectedResult float64
	}{
		{"interactive broker", BrokerInteractiveBroker, 5.0},
		{"zero commission", BrokerZero, 0.0},
		{"unknown broker defaults to zero", Broker("unknown"), 0.0},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			handler := GetCommissionFeeHandler(tc.broker)
			suite.NotNil(handler)
			suite.Equal(tc.expectedResult, handler.Calculate(1000, 100))
		})
	}
}

func (suite *CommissionFeeTestSuite) TestAllBrokers() {
	suite.Len(AllBrokers, 2)
	suite.Contains(AllBrokers, BrokerInteractiveBroker)
	suite.Contains(AllBrokers, BrokerZero)
}
