package enquiry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceTypeValid(t *testing.T) {
	for _, s := range []ServiceType{ServiceLocalMove, ServiceInternationalMove, ServiceCarExport, ServiceStorageServices, ServiceLogistics} {
		assert.True(t, s.Valid(), "%s should be valid", s)
	}
	assert.False(t, ServiceType("houseSitting").Valid())
	assert.False(t, ServiceType("").Valid())
}

func TestServiceTypeLabel(t *testing.T) {
	assert.Equal(t, "International Move", ServiceInternationalMove.Label())
	assert.Equal(t, "Car Export", ServiceCarExport.Label())
	assert.Equal(t, "weird", ServiceType("weird").Label())
}
