package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskTIN(t *testing.T) {
	assert.Equal(t, "***-**-1234", MaskTIN(TINTypeSSN, "1234"))
	assert.Equal(t, "**-***5678", MaskTIN(TINTypeEIN, "5678"))
	assert.Equal(t, "", MaskTIN(TINTypeSSN, ""))
}
