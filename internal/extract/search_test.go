package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const searchFixture = "Shipping Bill Summary\n" +
	"Invoice Number: SINV/2024789\n" +
	"LEO DATE: 12/04/2024\n" +
	"HAWB Number: 987654321012\n" +
	"References: ARR-1001 ARR-1002 ARR-1001\n"

func TestSearchText_FirstPatternWins(t *testing.T) {
	s := NewSearcher(searchFixture)

	got := s.SearchText(
		`Invoice\s*Number\s*:\s*([A-Z]+/\d+)`,
		`HAWB\s*Number\s*:\s*(\d+)`,
	)
	assert.Equal(t, "SINV/2024789", got)
}

func TestSearchText_FallsThroughOnNoMatch(t *testing.T) {
	s := NewSearcher(searchFixture)

	got := s.SearchText(
		`Vessel\s*Name\s*:\s*(\w+)`,
		`LEO\s*DATE\s*:\s*([\d/]+)`,
	)
	assert.Equal(t, "12/04/2024", got)
}

func TestSearchText_CaseInsensitiveMultiline(t *testing.T) {
	s := NewSearcher(searchFixture)

	assert.Equal(t, "987654321012", s.SearchText(`hawb\s*number\s*:\s*(\d+)`))
	// ^ anchors to line starts under multi-line mode.
	assert.Equal(t, "12/04/2024", s.SearchText(`^LEO\s*DATE\s*:\s*([\d/]+)`))
}

func TestSearchText_SkipsInvalidPattern(t *testing.T) {
	s := NewSearcher(searchFixture)

	got := s.SearchText(`([unclosed`, `LEO\s*DATE\s*:\s*([\d/]+)`)
	assert.Equal(t, "12/04/2024", got)
}

func TestSearchText_NoMatch(t *testing.T) {
	s := NewSearcher(searchFixture)
	assert.Equal(t, "", s.SearchText(`Vessel\s*Name\s*:\s*(\w+)`))
}

func TestSearchAllText_DedupesInOrder(t *testing.T) {
	s := NewSearcher(searchFixture)

	got := s.SearchAllText(`\b(ARR-\d+)\b`)
	assert.Equal(t, []string{"ARR-1001", "ARR-1002"}, got)
}

func TestSearchAllText_WholeMatchWithoutGroup(t *testing.T) {
	s := NewSearcher(searchFixture)

	got := s.SearchAllText(`ARR-\d+`)
	assert.Equal(t, []string{"ARR-1001", "ARR-1002"}, got)
}
