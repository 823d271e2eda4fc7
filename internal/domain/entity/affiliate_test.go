package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAffiliateCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "jay20", want: "JAY20"},
		{in: " Jay-20 ", want: "JAY20"},
		{in: "FIT_2024!", want: "FIT2024"},
		{in: "", want: ""},
		{in: "---", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeAffiliateCode(tt.in))
	}
}

func TestAffiliate_Validate_RateBounds(t *testing.T) {
	affiliate := &Affiliate{Code: "JAY20", CommissionRate: 0.1}
	assert.NoError(t, affiliate.Validate())

	affiliate.CommissionRate = 0
	assert.NoError(t, affiliate.Validate())

	affiliate.CommissionRate = 1
	assert.NoError(t, affiliate.Validate())

	affiliate.CommissionRate = 1.01
	assert.ErrorIs(t, affiliate.Validate(), ErrCommissionRateInvalid)

	affiliate.CommissionRate = -0.1
	assert.ErrorIs(t, affiliate.Validate(), ErrCommissionRateInvalid)
}
