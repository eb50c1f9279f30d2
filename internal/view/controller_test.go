package view

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Achutha2207/portfolio/internal/catalog"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(c.Certificates), 2)
	return c
}

// allStates drives a fresh controller into every combination of page, menu
// and selection.
func allStates(t *testing.T, c *catalog.Catalog) []*Controller {
	t.Helper()
	var out []*Controller
	for _, p := range Pages() {
		for _, menu := range []bool{false, true} {
			for _, sel := range []bool{false, true} {
				ctrl := New(c)
				ctrl.NavigateTo(p)
				if menu {
					ctrl.ToggleMenu()
				}
				if sel {
					ctrl.SelectCertificate(c.Certificates[0])
				}
				require.Equal(t, p, ctrl.Page())
				require.Equal(t, menu, ctrl.MenuOpen())
				_, ok := ctrl.SelectedCertificate()
				require.Equal(t, sel, ok)
				out = append(out, ctrl)
			}
		}
	}
	return out
}

func TestInitialState(t *testing.T) {
	t.Parallel()

	ctrl := New(testCatalog(t))
	st := ctrl.State()
	require.Equal(t, Home, st.Page)
	require.False(t, st.MenuOpen)
	require.False(t, st.HasCertificate())
}

func TestNavigateToAlwaysLandsWithMenuClosed(t *testing.T) {
	t.Parallel()

	c := testCatalog(t)
	for _, p := range Pages() {
		for _, ctrl := range allStates(t, c) {
			ctrl.NavigateTo(p)
			require.Equal(t, p, ctrl.Page())
			require.False(t, ctrl.MenuOpen(), "menu must collapse after navigating to %s", p)
		}
	}
}

func TestToggleMenuIsAnInvolution(t *testing.T) {
	t.Parallel()

	for _, ctrl := range allStates(t, testCatalog(t)) {
		before := ctrl.State()
		ctrl.ToggleMenu()
		require.Equal(t, !before.MenuOpen, ctrl.MenuOpen())
		ctrl.ToggleMenu()
		require.Equal(t, before, ctrl.State())
	}
}

func TestSelectThenCloseClearsSelection(t *testing.T) {
	t.Parallel()

	c := testCatalog(t)
	for _, cert := range c.Certificates {
		ctrl := New(c)
		ctrl.SelectCertificate(cert)
		got, ok := ctrl.SelectedCertificate()
		require.True(t, ok)
		require.Equal(t, cert, got)

		ctrl.CloseCertificate()
		_, ok = ctrl.SelectedCertificate()
		require.False(t, ok)
	}
}

func TestCloseCertificateIsIdempotent(t *testing.T) {
	t.Parallel()

	ctrl := New(testCatalog(t))
	ctrl.NavigateTo(Resume)
	ctrl.ToggleMenu()
	before := ctrl.State()

	ctrl.CloseCertificate()
	require.Equal(t, before, ctrl.State())
	ctrl.CloseCertificate()
	require.Equal(t, before, ctrl.State())
}

func TestMenuCollapsesOnNavigation(t *testing.T) {
	t.Parallel()

	ctrl := New(testCatalog(t))
	ctrl.ToggleMenu()
	require.True(t, ctrl.MenuOpen())

	ctrl.NavigateTo(Projects)
	require.Equal(t, Projects, ctrl.Page())
	require.False(t, ctrl.MenuOpen())
}

func TestNavigationKeepsCertificateSelection(t *testing.T) {
	t.Parallel()

	c := testCatalog(t)
	second := c.Certificates[1]

	ctrl := New(c)
	ctrl.SelectCertificate(second)
	ctrl.NavigateTo(Contact)

	require.Equal(t, Contact, ctrl.Page())
	got, ok := ctrl.SelectedCertificate()
	require.True(t, ok, "navigation must not clear the certificate selection")
	require.Equal(t, second, got)
}

func TestStateIsASnapshot(t *testing.T) {
	t.Parallel()

	c := testCatalog(t)
	ctrl := New(c)
	ctrl.SelectCertificate(c.Certificates[0])
	st := ctrl.State()

	ctrl.SelectCertificate(c.Certificates[1])
	require.Equal(t, c.Certificates[0].ID, st.Certificate.ID)
}

func TestInvalidInputPanics(t *testing.T) {
	t.Parallel()

	ctrl := New(testCatalog(t))
	require.Panics(t, func() { ctrl.NavigateTo(Page(42)) })
	require.Panics(t, func() { ctrl.NavigateTo(Page(-1)) })
	require.Panics(t, func() { ctrl.SelectCertificate(catalog.Certificate{ID: 999, Title: "forged"}) })

	altered := ctrl.catalog.Certificates[0]
	altered.Title = "Altered"
	altered.Image = "/elsewhere.jpg"
	require.Panics(t, func() { ctrl.SelectCertificate(altered) }, "an entry must match the catalog, not just its id")

	require.Equal(t, Home, ctrl.Page(), "rejected calls leave state unchanged")
	_, ok := ctrl.SelectedCertificate()
	require.False(t, ok)
}

func TestNilCatalogAcceptsNoCertificates(t *testing.T) {
	t.Parallel()

	ctrl := New(nil)
	ctrl.NavigateTo(Certificates)
	require.Panics(t, func() { ctrl.SelectCertificate(catalog.Certificate{ID: 1}) })
}
