package validator_test

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/inkpress/inkpress/internal/platform/validator"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple title",
			input: "Hello World",
			want:  "hello-world",
		},
		{
			name:  "punctuation stripped",
			input: "Hello, World! (Again)",
			want:  "hello-world-again",
		},
		{
			name:  "whitespace runs collapse",
			input: "too   many    spaces",
			want:  "too-many-spaces",
		},
		{
			name:  "leading and trailing separators trimmed",
			input: "  --edges--  ",
			want:  "edges",
		},
		{
			name:  "already url safe",
			input: "plain-slug-42",
			want:  "plain-slug-42",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validator.GenerateSlug(tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateSlug_Deterministic(t *testing.T) {
	input := "Some Fairly Long Title With Mixed CASE"
	first := validator.GenerateSlug(input)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, validator.GenerateSlug(input))
	}
}

func TestGenerateSlug_OutputIsURLSafe(t *testing.T) {
	inputs := []string{
		"Hello World",
		"Ünïcödé Tïtlé",
		"symbols & ampersands / slashes",
		"tabs\tand\nnewlines",
	}

	for _, input := range inputs {
		slug := validator.GenerateSlug(input)
		if slug == "" {
			continue
		}
		assert.NoError(t, validator.ValidateSlugFormat(slug, 250), "input %q produced %q", input, slug)
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		n     int
		want  string
	}{
		{
			name:  "shorter than limit",
			input: "short",
			n:     26,
			want:  "short",
		},
		{
			name:  "exactly at limit",
			input: "abcdefghijklmnopqrstuvwxyz",
			n:     26,
			want:  "abcdefghijklmnopqrstuvwxyz",
		},
		{
			name:  "truncated",
			input: "abcdefghijklmnopqrstuvwxyz0123456789",
			n:     26,
			want:  "abcdefghijklmnopqrstuvwxyz",
		},
		{
			name:  "multibyte characters counted not bytes",
			input: "ééééé",
			n:     3,
			want:  "ééé",
		},
		{
			name:  "zero",
			input: "anything",
			n:     0,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validator.TruncateRunes(tt.input, tt.n)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got), "truncation split a multi-byte character")
		})
	}
}

func TestMakeSlugUnique(t *testing.T) {
	assert.Equal(t, "base", validator.MakeSlugUnique("base", 0))
	assert.Equal(t, "base-1", validator.MakeSlugUnique("base", 1))
	assert.Equal(t, "base-7", validator.MakeSlugUnique("base", 7))
}

func TestValidateSlugFormat(t *testing.T) {
	assert.ErrorIs(t, validator.ValidateSlugFormat("", 250), validator.ErrSlugEmpty)
	assert.ErrorIs(t, validator.ValidateSlugFormat("UPPER", 250), validator.ErrInvalidSlugFormat)
	assert.ErrorIs(t, validator.ValidateSlugFormat("has space", 250), validator.ErrInvalidSlugFormat)
	assert.ErrorIs(t, validator.ValidateSlugFormat("abcdef", 3), validator.ErrSlugTooLong)
	assert.NoError(t, validator.ValidateSlugFormat("hello-world-2024-03-05", 250))
}
