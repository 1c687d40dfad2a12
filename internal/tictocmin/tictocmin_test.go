package tictocmin

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ddmin/internal/algorithm"
	"ddmin/internal/configuration"
	"ddmin/internal/outcome"
)

// digitsOracle fails iff every digit 0-9 appears in the candidate.
func digitsOracle(cfg configuration.Configuration[byte]) outcome.Outcome {
	s := string(cfg.Elements())
	for _, d := range "0123456789" {
		found := false
		for _, r := range s {
			if r == d {
				found = true
				break
			}
		}
		if !found {
			return outcome.Pass
		}
	}
	return outcome.Fail
}

func TestTicTocMinReducesToDigits(t *testing.T) {
	input := configuration.New([]byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz1234567890ABCDEFGHI"))

	tt := New[byte]()
	result := tt.Run(input, digitsOracle, nil)

	assert.Equal(t, "1234567890", string(result.Elements()))
}

// bOracle fails iff 'b' is present.
func bOracle(cfg configuration.Configuration[byte]) outcome.Outcome {
	for _, e := range cfg.Elements() {
		if e == 'b' {
			return outcome.Fail
		}
	}
	return outcome.Pass
}

func TestTicTocMinTrailingEdge(t *testing.T) {
	input := configuration.New([]byte("abc"))

	tt := New[byte]()
	result := tt.Run(input, bOracle, nil)

	assert.Equal(t, "b", string(result.Elements()))
}

func TestTicTocMinPreservesFail(t *testing.T) {
	input := configuration.New([]byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz1234567890ABCDEFGHI"))
	tt := New[byte]()
	result := tt.Run(input, digitsOracle, nil)
	assert.Equal(t, outcome.Fail, digitsOracle(result))
	assert.LessOrEqual(t, result.Len(), input.Len())
}

func TestTicTocMinDeterministic(t *testing.T) {
	input := configuration.New([]byte("abc"))
	r1 := New[byte]().Run(input, bOracle, nil)
	r2 := New[byte]().Run(input, bOracle, nil)
	assert.True(t, r1.Equal(r2))
}

func TestTicTocMinSingleElement(t *testing.T) {
	input := configuration.New([]byte("b"))
	result := New[byte]().Run(input, bOracle, nil)
	assert.Equal(t, "b", string(result.Elements()))
}

func TestTicTocMinEmptyInput(t *testing.T) {
	var empty configuration.Configuration[byte]
	result := New[byte]().Run(empty, bOracle, nil)
	assert.Equal(t, 0, result.Len())
}

func TestTicTocMinImplementsAlgorithm(t *testing.T) {
	var _ algorithm.Algorithm[byte] = New[byte]()
}
