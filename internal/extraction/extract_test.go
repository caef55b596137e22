package extraction

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPowerNames_PreservesOrderAndDuplicates(t *testing.T) {
	doc := `<?xml version="1.0" encoding="utf-8"?>
<D20Character>
	<CharacterSheet>
		<PowerStats>
			<Power name="Cleave"><specific name="Power Usage">At-Will</specific></Power>
			<Power name="Shield Block"/>
			<Power name="Cleave"/>
			<Power name="Second Wind"></Power>
		</PowerStats>
	</CharacterSheet>
</D20Character>`

	names, err := ExtractPowerNames(strings.NewReader(doc))
	require.NoError(t, err)

	want := []string{"Cleave", "Shield Block", "Cleave", "Second Wind"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("ExtractPowerNames() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractPowerNames_SkipsPowersWithoutName(t *testing.T) {
	doc := `<Character>
		<Power id="1"/>
		<Power name="Cleave"/>
		<Power></Power>
	</Character>`

	names, err := ExtractPowerNames(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"Cleave"}, names)
}

func TestExtractPowerNames_IgnoresOtherElements(t *testing.T) {
	doc := `<Character>
		<Feat name="Power Attack"/>
		<power name="lowercase"/>
		<PowerStats name="stats"/>
		<Power name="Cleave"/>
	</Character>`

	names, err := ExtractPowerNames(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"Cleave"}, names)
}

func TestExtractPowerNames_FirstNameAttributeWins(t *testing.T) {
	doc := `<Character><Power label="x" name="First" xml:name="Other"/></Character>`

	names, err := ExtractPowerNames(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"First"}, names)
}

func TestExtractPowerNames_DecodesEntities(t *testing.T) {
	doc := `<Character><Power name="Hack &amp; Slash"/><Power name="Fl&#232;che"/></Character>`

	names, err := ExtractPowerNames(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"Hack & Slash", "Flèche"}, names)
}

func TestExtractPowerNames_MatchesPowerInAnyNamespace(t *testing.T) {
	doc := `<Character xmlns:x="urn:example:ext">
		<x:Power name="Cleave"/>
		<Power xmlns="urn:example:default" name="Second Wind"/>
		<power name="lowercase"/>
		<x:Powers name="plural"/>
		<Power x:name="qualified"/>
	</Character>`

	names, err := ExtractPowerNames(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"Cleave", "Second Wind"}, names)
}

func TestExtractPowerNames_EmptyDocument(t *testing.T) {
	names, err := ExtractPowerNames(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestExtractPowerNames_NoPowers(t *testing.T) {
	names, err := ExtractPowerNames(strings.NewReader(`<Character><Name>Thog</Name></Character>`))
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)
}

func TestExtractPowerNames_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "mismatched tags", doc: `<Character><Power name="Cleave"></Character>`},
		{name: "unterminated", doc: `<Character><Power name="Cleave"/>`},
		{name: "unquoted attribute", doc: `<Character><Power name=Cleave/></Character>`},
		{name: "invalid utf-8 in attribute", doc: "<Character><Power name=\"Cl\xffeave\"/></Character>"},
		{name: "unsupported charset", doc: `<?xml version="1.0" encoding="windows-1252"?><Character/>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			names, err := ExtractPowerNames(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Nil(t, names)

			var malformed *MalformedInputError
			assert.True(t, errors.As(err, &malformed), "expected MalformedInputError, got %T", err)
		})
	}
}

func TestExtractPowerNamesFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "thog.dnd4e")
	require.NoError(t, os.WriteFile(path, []byte(`<Character><Power name="Cleave"/></Character>`), 0644))

	names, err := ExtractPowerNamesFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cleave"}, names)
}

func TestExtractPowerNamesFromFile_MalformedCarriesPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.dnd4e")
	require.NoError(t, os.WriteFile(path, []byte(`<Character>`), 0644))

	_, err := ExtractPowerNamesFromFile(path)
	require.Error(t, err)

	var malformed *MalformedInputError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, path, malformed.Path)
	assert.Contains(t, err.Error(), "broken.dnd4e")
}

func TestExtractPowerNamesFromFile_Missing(t *testing.T) {
	_, err := ExtractPowerNamesFromFile(filepath.Join(t.TempDir(), "nope.dnd4e"))
	require.Error(t, err)

	var malformed *MalformedInputError
	assert.False(t, errors.As(err, &malformed), "a missing file is not malformed input")
}
