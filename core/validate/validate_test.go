package validate_test

import (
	"testing"

	"dsikea/core/validate"

	"github.com/stretchr/testify/assert"
)

func TestDNI(t *testing.T) {
	// 12345678 mod 23 = 14 -> Z
	assert.True(t, validate.DNI("12345678Z"))
	assert.True(t, validate.DNI("00000000T"))

	assert.False(t, validate.DNI("12345678A"), "wrong control letter")
	assert.False(t, validate.DNI("1234567Z"), "too short")
	assert.False(t, validate.DNI("123456789Z"), "too long")
	assert.False(t, validate.DNI("12345678z"), "lowercase control")
	assert.False(t, validate.DNI(""), "empty")
}

func TestCIF(t *testing.T) {
	assert.True(t, validate.CIF("A58818501"))
	assert.True(t, validate.CIF("B12345674"))

	assert.False(t, validate.CIF("A58818502"), "wrong control digit")
	assert.False(t, validate.CIF("A5881850"), "too short")
	assert.False(t, validate.CIF("158818501"), "digit organization code")
	assert.False(t, validate.CIF("I5881850J"), "invalid organization letter")
	assert.False(t, validate.CIF(""), "empty")
}

func TestCIFControlForm(t *testing.T) {
	// A-organizations require the digit form of the control.
	assert.False(t, validate.CIF("A5881850A"))
	// K-organizations require the letter form.
	assert.False(t, validate.CIF("K58818501"))
}

func TestPhone(t *testing.T) {
	assert.True(t, validate.Phone("612345678"))
	assert.True(t, validate.Phone("912345678"))

	assert.False(t, validate.Phone("512345678"), "bad prefix")
	assert.False(t, validate.Phone("61234567"), "too short")
	assert.False(t, validate.Phone("6123456789"), "too long")
	assert.False(t, validate.Phone("61234567a"), "non-digit")
}

func TestPostalCode(t *testing.T) {
	assert.True(t, validate.PostalCode("28001"))
	assert.True(t, validate.PostalCode("01001"))
	assert.True(t, validate.PostalCode("52001"))

	assert.False(t, validate.PostalCode("00001"), "province 00")
	assert.False(t, validate.PostalCode("53001"), "province above 52")
	assert.False(t, validate.PostalCode("2800"), "too short")
	assert.False(t, validate.PostalCode("2800a"), "non-digit")
}
