package ai

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewProviderUnknown(t *testing.T) {
	_, err := NewProvider("no-such-provider", nil)
	require.Error(t, err)
	_, err = NewProvider("", nil)
	require.Error(t, err)
}

func TestNewProviderGemini(t *testing.T) {
	p, err := NewProvider("gemini", map[string]interface{}{"api_key": "k"})
	require.NoError(t, err)
	require.Equal(t, "gemini", p.Name())
}

func TestNewProviderOpenAI(t *testing.T) {
	p, err := NewProvider("OpenAI", map[string]interface{}{"api_key": "k"})
	require.NoError(t, err)
	require.Equal(t, "openai", p.Name())
}

func TestNewProviderNilConfig(t *testing.T) {
	_, err := NewProvider("gemini", nil)
	require.Error(t, err)
}
