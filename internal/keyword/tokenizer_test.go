package keyword

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize_LowercasesAndStrips(t *testing.T) {
	tokens := Tokenize("GenServer State, Handling!", 3, nil)
	assert.Equal(t, []string{"genserver", "state", "handling"}, tokens)
}

func TestTokenize_KeepsHyphens(t *testing.T) {
	tokens := Tokenize("fault-tolerance matters", 3, nil)
	assert.Equal(t, []string{"fault-tolerance", "matters"}, tokens)
}

func TestTokenize_DropsShortTokens(t *testing.T) {
	tokens := Tokenize("an ok fix is to do it", 3, nil)
	assert.Equal(t, []string{"fix"}, tokens)
}

func TestTokenize_DropsStopwords(t *testing.T) {
	stop := BuildStopwordMap([]string{"the", "And"})
	tokens := Tokenize("the process and the supervisor", 3, stop)
	assert.Equal(t, []string{"process", "supervisor"}, tokens)
}

func TestTokenize_Empty(t *testing.T) {
	assert.Empty(t, Tokenize("", 3, nil))
	assert.Empty(t, Tokenize("?!.,", 3, nil))
}

func TestBuildStopwordMap_Lowercases(t *testing.T) {
	m := BuildStopwordMap([]string{"The", "AND"})
	_, ok := m["the"]
	assert.True(t, ok)
	_, ok = m["and"]
	assert.True(t, ok)
}
