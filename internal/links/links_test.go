package links

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRelativeLink_DepthPrefix(t *testing.T) {
	require.Equal(t, "documentation/acme/index.html", RelativeLink("/documentation/acme", 0))
	require.Equal(t, "../documentation/acme/index.html", RelativeLink("/documentation/acme", 1))
	require.Equal(t, "../../../documentation/acme/index.html", RelativeLink("documentation/acme", 3))
}

func TestRelativeLink_LowercasesAndTrims(t *testing.T) {
	require.Equal(t, "../documentation/acme/widget/index.html", RelativeLink("/Documentation/Acme/Widget/", 1))
}

func TestRelativeAsset_NoIndexSuffix(t *testing.T) {
	require.Equal(t, "../../images/hero.png", RelativeAsset("/images/hero.png", 2))
	require.Equal(t, "images/hero.png", RelativeAsset("images/hero.png", 0))
}

func TestNormalize(t *testing.T) {
	require.Equal(t, "documentation/acmekit/widget", Normalize("/Documentation/AcmeKit/Widget/"))
	require.Equal(t, Normalize("/documentation/acmekit"), Normalize("documentation/AcmeKit/"))
	require.Equal(t, "", Normalize("/"))
}

func TestDepthOf(t *testing.T) {
	require.Equal(t, 0, DepthOf(""))
	require.Equal(t, 0, DepthOf("/"))
	require.Equal(t, 2, DepthOf("/documentation/acme"))
	require.Equal(t, 3, DepthOf("documentation/acme/widget/"))
	require.Equal(t, 2, DepthOf("//documentation//acme"))
}
