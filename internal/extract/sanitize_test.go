package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses whitespace", "  Ilica 1,\n\t Zagreb  ", "Ilica 1, Zagreb"},
		{"trims separators", ": Aktivan ;", "Aktivan"},
		{"placeholder", "-", ""},
		{"empty", "   ", ""},
		{"login wall", "Prijavite se za prikaz podataka", ""},
		{"masked value", "HR12********", ""},
		{"show more", "Prikaži više", ""},
		{"cookie banner", "Koristimo kolačiće", ""},
		{"no data", "Nema podataka", ""},
		{"markup", "<span>", ""},
		{"two label words", "OIB 12345678901 MBS 080012345", ""},
		{"one label word", "Direktor uprave", "Direktor uprave"},
		{"exactly max length", strings.Repeat("a", MaxCandidateLength), strings.Repeat("a", MaxCandidateLength)},
		{"too long", strings.Repeat("a", MaxCandidateLength+1), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestSanitize_LongCandidatesAlwaysRejected(t *testing.T) {
	for _, n := range []int{141, 200, 1000} {
		assert.Empty(t, Sanitize(strings.Repeat("ž", n)), "length %d", n)
	}
}

func TestSanitizeLong(t *testing.T) {
	desc := strings.Repeat("Tvrtka se bavi razvojem softvera. ", 8)
	assert.Equal(t, strings.TrimSpace(desc), sanitizeLong(desc))
	assert.Empty(t, sanitizeLong(strings.Repeat("x ", maxDescriptionLength)))
	assert.Empty(t, sanitizeLong("Registrirajte se za puni opis"))
}

func TestCutAtLabelWord(t *testing.T) {
	assert.Equal(t, "Ana Marić", cutAtLabelWord("Ana Marić Status aktivan"))
	assert.Equal(t, "Ivan Horvat", cutAtLabelWord("Ivan Horvat"))
	assert.Equal(t, "", cutAtLabelWord("OIB: 123"))
}

func TestIsBareLabel(t *testing.T) {
	assert.True(t, isBareLabel("MBS"))
	assert.True(t, isBareLabel("Adresa:"))
	assert.False(t, isBareLabel("Ilica 1"))
	assert.False(t, isBareLabel("Direktor uprave"))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1.234.567,89", 1234567.89},
		{"1234,5", 1234.5},
		{"1.234", 1234},
		{"-12.345,00", -12345},
		{"−250,5", -250.5},
		{"1 234,50", 1234.5},
		{"120", 120},
		{"0", 0},
		{"", 0},
		{"n/a", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseAmount(tt.in), 1e-9)
		})
	}
}
