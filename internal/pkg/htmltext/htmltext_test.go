package htmltext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"апостроф", "What&#039;s the capital?", "What's the capital?"},
		{"амперсанд и кавычки", "&quot;Tom &amp; Jerry&quot;", `"Tom & Jerry"`},
		{"угловые скобки", "2 &lt; 3 &gt; 1", "2 < 3 > 1"},
		{"без сущностей", "Plain question", "Plain question"},
		{"пустая строка", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Decode(tc.input))
		})
	}
}

func TestDecodeAll(t *testing.T) {
	// Arrange
	input := []string{"Caf&eacute;", "R&amp;B", "Plain"}

	// Act
	decoded := DecodeAll(input)

	// Assert: возвращается новый слайс, исходный не мутируется
	assert.Equal(t, []string{"Café", "R&B", "Plain"}, decoded)
	assert.Equal(t, "Caf&eacute;", input[0])

	assert.Nil(t, DecodeAll(nil))
}
