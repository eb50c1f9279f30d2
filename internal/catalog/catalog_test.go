package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	t.Parallel()

	c, err := Default()
	require.NoError(t, err)
	require.Equal(t, "Achutha S", c.Profile.Name)
	require.Len(t, c.Projects, 4)
	require.Len(t, c.Certificates, 3)

	cert, ok := c.Certificate(2)
	require.True(t, ok)
	require.Equal(t, "Futures Trading", cert.Title)
	require.True(t, c.Contains(cert))

	_, ok = c.Certificate(7)
	require.False(t, ok)
}

func TestContainsRejectsAlteredEntries(t *testing.T) {
	t.Parallel()

	c, err := Default()
	require.NoError(t, err)

	forged := c.Certificates[0]
	forged.Title = "Something else"
	require.False(t, c.Contains(forged))
}

func TestProjectLookup(t *testing.T) {
	t.Parallel()

	c, err := Default()
	require.NoError(t, err)

	p, ok := c.Project(0)
	require.True(t, ok)
	require.Equal(t, "Reddit NLP Project", p.Name)

	_, ok = c.Project(-1)
	require.False(t, ok)
	_, ok = c.Project(len(c.Projects))
	require.False(t, ok)
}

func TestValidateRejectsBrokenCatalogs(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"missing name": `
profile: {}
`,
		"duplicate certificate": `
profile: {name: X}
certificates:
  - {id: 1, title: A, image: /a.jpg}
  - {id: 1, title: B, image: /b.jpg}
`,
		"zero id": `
profile: {name: X}
certificates:
  - {id: 0, title: A, image: /a.jpg}
`,
		"project without link": `
profile: {name: X}
projects:
  - {name: P}
`,
		"certificate without image": `
profile: {name: X}
certificates:
  - {id: 3, title: A}
`,
	}
	for name, doc := range cases {
		_, err := Parse([]byte(doc))
		require.ErrorIs(t, err, ErrInvalid, name)
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.yml")
	doc := `
profile:
  name: émile
certificates:
  - {id: 5, title: Go, issuer: Me, date: today, image: /images/go.png}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "É", c.Profile.Initial)
	require.Len(t, c.Certificates, 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)

	c, err = Load("")
	require.NoError(t, err)
	require.Equal(t, "Achutha S", c.Profile.Name)
}

func TestAboutHTMLIsSanitised(t *testing.T) {
	t.Parallel()

	p := Profile{About: "Hello **world**\n\n<script>alert(1)</script>\n\n[gh](https://github.com/x)"}
	html, err := p.AboutHTML()
	require.NoError(t, err)

	out := string(html)
	require.Contains(t, out, "<strong>world</strong>")
	require.NotContains(t, out, "<script>")
	require.True(t, strings.Contains(out, `rel="nofollow`), out)
}
