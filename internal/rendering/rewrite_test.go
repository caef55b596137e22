package rendering

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/jonathan/powercards/internal/types"
)

func TestRewriteFragment_SetsIdentityAndClass(t *testing.T) {
	record := types.PowerRecord{
		Name:   "Cleave",
		Usage:  "Encounter",
		Markup: "<div id='detail'>Cleave text</div>",
	}

	out, err := RewriteFragment(record, DefaultSentinelID)
	require.NoError(t, err)
	assert.Equal(t, `<div id="Cleave" class="Power Encounter">Cleave text</div>`, out)
}

func TestRewriteFragment_ReplacesExistingClass(t *testing.T) {
	record := types.PowerRecord{
		Name:   "Fireball",
		Usage:  "Daily",
		Markup: `<div class="old stale" id="detail"><h1>Fireball</h1></div>`,
	}

	out, err := RewriteFragment(record, DefaultSentinelID)
	require.NoError(t, err)
	assert.Equal(t, `<div class="Power Daily" id="Fireball"><h1>Fireball</h1></div>`, out)
}

func TestRewriteFragment_EmptySentinelUsesDefault(t *testing.T) {
	record := types.PowerRecord{Name: "Cleave", Usage: "At-Will", Markup: `<p id="detail">x</p>`}

	out, err := RewriteFragment(record, "")
	require.NoError(t, err)
	assert.Equal(t, `<p id="Cleave" class="Power At-Will">x</p>`, out)
}

func TestRewriteFragment_CustomSentinel(t *testing.T) {
	record := types.PowerRecord{
		Name:   "Cleave",
		Usage:  "At-Will",
		Markup: `<div id="detail">wrong</div><div id="power:card">right</div>`,
	}

	out, err := RewriteFragment(record, "power:card")
	require.NoError(t, err)
	assert.Equal(t, `<div id="Cleave" class="Power At-Will">right</div>`, out)
}

func TestRewriteFragment_SerializesOnlyDesignatedSubtree(t *testing.T) {
	record := types.PowerRecord{
		Name:  "Second Wind",
		Usage: "Encounter",
		Markup: `<html><body><div class="wrapper"><span>before</span>` +
			`<div id="detail"><h1 class="encounterpower">Second Wind<span>Human Feature</span></h1><p class="flavor">Breathe.</p></div>` +
			`<span>after</span></div></body></html>`,
	}

	out, err := RewriteFragment(record, DefaultSentinelID)
	require.NoError(t, err)
	assert.Equal(t,
		`<div id="Second Wind" class="Power Encounter"><h1 class="encounterpower">Second Wind<span>Human Feature</span></h1><p class="flavor">Breathe.</p></div>`,
		out)
	assert.NotContains(t, out, "wrapper")
	assert.NotContains(t, out, "before")
	assert.NotContains(t, out, "after")
}

func TestRewriteFragment_FirstSentinelWins(t *testing.T) {
	record := types.PowerRecord{
		Name:   "Cleave",
		Usage:  "At-Will",
		Markup: `<div id="detail">first</div><div id="detail">second</div>`,
	}

	out, err := RewriteFragment(record, DefaultSentinelID)
	require.NoError(t, err)
	assert.Equal(t, `<div id="Cleave" class="Power At-Will">first</div>`, out)
}

func TestRewriteFragment_MissingSentinel(t *testing.T) {
	tests := []struct {
		name   string
		markup string
	}{
		{name: "no id", markup: `<div>Cleave text</div>`},
		{name: "other id", markup: `<div id="details">Cleave text</div>`},
		{name: "sentinel as class", markup: `<div class="detail">Cleave text</div>`},
		{name: "empty markup", markup: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := RewriteFragment(types.PowerRecord{Name: "Cleave", Usage: "At-Will", Markup: tt.markup}, DefaultSentinelID)
			require.Error(t, err)
			assert.Empty(t, out)

			var structErr *FragmentStructureError
			require.True(t, errors.As(err, &structErr), "expected FragmentStructureError, got %T", err)
			assert.Equal(t, "Cleave", structErr.Power)
		})
	}
}

func TestRewriteFragment_Idempotent(t *testing.T) {
	record := types.PowerRecord{
		Name:   "Tide of Iron",
		Usage:  "At-Will",
		Markup: `<div id="detail" class="x"><h1>Tide of Iron</h1><p>Push 1.</p></div>`,
	}

	first, err := RewriteFragment(record, DefaultSentinelID)
	require.NoError(t, err)
	second, err := RewriteFragment(record, DefaultSentinelID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRewriteFragment_RoundTrip(t *testing.T) {
	records := []types.PowerRecord{
		{Name: "Cleave", Usage: "Encounter", Markup: `<div id="detail">a</div>`},
		{Name: `Hack & "Slash"`, Usage: "Daily", Markup: `<div id="detail" class="Power At-Will">b</div>`},
		{Name: "Flèche <Advanced>", Usage: "At-Will", Markup: `<section id="detail" class="">c</section>`},
		{Name: "Mystery", Usage: "", Markup: `<div id="detail">d</div>`},
	}

	for _, record := range records {
		t.Run(record.Name, func(t *testing.T) {
			out, err := RewriteFragment(record, DefaultSentinelID)
			require.NoError(t, err)

			doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
			require.NoError(t, err)
			card := doc.Find("body").Children().First()
			require.Equal(t, 1, card.Length())

			id, ok := card.Attr("id")
			require.True(t, ok)
			assert.Equal(t, record.Name, id)

			class, ok := card.Attr("class")
			require.True(t, ok)
			assert.Equal(t, "Power "+record.Usage, class)
		})
	}
}

func TestClassList(t *testing.T) {
	assert.Equal(t, "Power At-Will", ClassList("At-Will"))
	assert.Equal(t, "Power ", ClassList(""))
}

func TestSerializeNode_RenderFailure(t *testing.T) {
	br := &html.Node{Type: html.ElementNode, Data: "br"}
	br.AppendChild(&html.Node{Type: html.TextNode, Data: "not allowed"})

	out, err := serializeNode("Cleave", br)
	require.Error(t, err)
	assert.Empty(t, out)

	var serErr *SerializationError
	require.True(t, errors.As(err, &serErr))
	assert.Equal(t, "Cleave", serErr.Power)
	assert.Contains(t, err.Error(), "void element")
}
