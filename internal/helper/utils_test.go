package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUUID(t *testing.T) {
	a, err := GenerateUUID()
	require.NoError(t, err)
	assert.Len(t, a, 36)

	b, err := GenerateUUID()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestPrettyPrintUnserializableValue(t *testing.T) {
	// channels cannot be marshalled; the dump is skipped, not printed
	assert.NotPanics(t, func() { PrettyPrint(make(chan int)) })
}
