package candidatelist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Properties(t *testing.T) {
	input := `# comment
! also a comment

pkg.EmptyClass = Empty class
pkg.Colon: With colon
pkg.Space   Separated by space
pkg.NoDescription
pkg.Continued = first \
    second
pkg.Escaped\=Key = escaped
`
	entries, err := Parse(strings.NewReader(input), FormatProperties)
	require.NoError(t, err)

	want := []Entry{
		{Name: "pkg.EmptyClass", Description: "Empty class"},
		{Name: "pkg.Colon", Description: "With colon"},
		{Name: "pkg.Space", Description: "Separated by space"},
		{Name: "pkg.NoDescription"},
		{Name: "pkg.Continued", Description: "first second"},
		{Name: "pkg.Escaped=Key", Description: "escaped"},
	}
	assert.Equal(t, want, entries)
}

func TestParse_YAML_AcceptsScalarsAndMappings(t *testing.T) {
	input := `
- pkg.A
- name: pkg.B
  description: The B type
- name: ""
`
	entries, err := Parse(strings.NewReader(input), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Name: "pkg.A"}, {Name: "pkg.B", Description: "The B type"}}, entries)
}

func TestParse_YAML_Empty(t *testing.T) {
	entries, err := Parse(strings.NewReader(""), FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParse_YAML_Invalid(t *testing.T) {
	_, err := Parse(strings.NewReader("name: [unclosed"), FormatYAML)
	assert.Error(t, err)
}

func TestParse_Text(t *testing.T) {
	entries, err := Parse(strings.NewReader("pkg.A\n\n# skip\n  pkg.B  \n"), FormatText)
	require.NoError(t, err)
	assert.Equal(t, []string{"pkg.A", "pkg.B"}, Names(entries))
}

func TestParse_UnknownFormat(t *testing.T) {
	_, err := Parse(strings.NewReader(""), Format("xml"))
	assert.Error(t, err)
}

func TestReadFile_PicksFormatFromExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "list.yml")
	require.NoError(t, os.WriteFile(path, []byte("- pkg.A\n"), 0o600))

	entries, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"pkg.A"}, Names(entries))

	assert.Equal(t, FormatProperties, FormatFor("x.properties"))
	assert.Equal(t, FormatText, FormatFor("x.txt"))

	_, err = ReadFile(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}
