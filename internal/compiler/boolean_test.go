package compiler

import (
	"strings"
	"sync"
	"testing"
	"unicode"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestBoolean(t *testing.T) {
	tests := []struct {
		text string
		def  bool
		want bool
	}{
		{"true", false, true},
		{"TRUE", false, true},
		{"True", false, true},
		{"false", true, false},
		{"FaLsE", true, false},
		{"", true, true},
		{"", false, false},
		{"yes", false, false},
		{"1", false, false},
		{"0", true, true},
		{" true", false, false},
		{"truex", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Boolean(tt.text, tt.def))
		})
	}
}

func TestBoolean_ConcurrentCallers(t *testing.T) {
	inputs := []string{"TRUE", "False", "tRuE", "yes", ""}
	want := []bool{true, false, true, true, true}

	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				for j, in := range inputs {
					if got := Boolean(in, true); got != want[j] {
						t.Errorf("Boolean(%q, true) = %v, want %v", in, got, want[j])
						return
					}
				}
			}
		}()
	}
	wg.Wait()
}

func TestBooleanProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// mixedCase upper-cases the letters selected by mask.
	mixedCase := func(word string) gopter.Gen {
		return gen.UInt8().Map(func(mask uint8) string {
			var b strings.Builder
			for i, r := range word {
				if mask&(1<<uint(i%8)) != 0 {
					r = unicode.ToUpper(r)
				}
				b.WriteRune(r)
			}
			return b.String()
		})
	}

	properties.Property("any casing of true is true", prop.ForAll(
		func(text string, def bool) bool {
			return Boolean(text, def)
		},
		mixedCase("true"),
		gen.Bool(),
	))

	properties.Property("any casing of false is false", prop.ForAll(
		func(text string, def bool) bool {
			return !Boolean(text, def)
		},
		mixedCase("false"),
		gen.Bool(),
	))

	properties.Property("other text yields the default", prop.ForAll(
		func(text string, def bool) bool {
			lower := strings.ToLower(text)
			if lower == "true" || lower == "false" {
				return true
			}
			return Boolean(text, def) == def
		},
		gen.AlphaString(),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestLeadingNumbers(t *testing.T) {
	ints := map[string]int64{
		"4444":  4444,
		" 12ab": 12,
		"-7":    -7,
		"+3":    3,
		"abc":   0,
		"":      0,
		"1.9":   1,
	}
	for in, want := range ints {
		assert.Equal(t, want, leadingInt(in), "leadingInt(%q)", in)
	}
	assert.Equal(t, int64(1<<63-1), leadingInt("99999999999999999999"))

	floats := map[string]float64{
		"1.5":    1.5,
		".5":     0.5,
		"2e3":    2000,
		"3.25px": 3.25,
		"x":      0,
		"-0.75":  -0.75,
	}
	for in, want := range floats {
		assert.Equal(t, want, leadingFloat(in), "leadingFloat(%q)", in)
	}
}
