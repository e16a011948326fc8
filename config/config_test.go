package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidateRejectsBadTabSize(t *testing.T) {
	c := Default()
	c.TabSize = 0
	require.Error(t, c.Validate())
}

func TestValidateRejectsBadMaxCharPerLine(t *testing.T) {
	c := Default()
	c.MaxCharPerLine = 0
	require.Error(t, c.Validate())
}

func TestValidateRejectsBadCase(t *testing.T) {
	c := Default()
	c.KeywordCase = Case("sideways")
	require.Error(t, c.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	data := []byte(`{"keyword_case":"upper","tab_size":2}`)
	c, err := Load(data)
	require.NoError(t, err)
	require.Equal(t, CaseUpper, c.KeywordCase)
	require.Equal(t, 2, c.TabSize)
	// fields left unspecified keep Default()'s values.
	require.Equal(t, CasePreserve, c.IdentifierCase)
}

func TestLoadRejectsUnknownField(t *testing.T) {
	data := []byte(`{"not_a_real_field":true}`)
	_, err := Load(data)
	require.Error(t, err)
}

func TestLoadRejectsInvalidAfterDecode(t *testing.T) {
	data := []byte(`{"tab_size":-1}`)
	_, err := Load(data)
	require.Error(t, err)
}
