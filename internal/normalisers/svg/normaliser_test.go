package svg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GLADI8R/landscape2/internal/core/domain"
)

func TestNormaliser_Extension(t *testing.T) {
	assert.Equal(t, "svg", New().Extension())
}

func TestNormaliser_Normalise(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "already canonical",
			in:   `<svg>1</svg>`,
			want: `<svg>1</svg>`,
		},
		{
			name: "declaration comments and whitespace",
			in:   "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<!-- exported -->\n<svg >\n  1\n</svg>\n",
			want: `<svg>1</svg>`,
		},
		{
			name: "doctype",
			in:   `<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd"><svg/>`,
			want: `<svg/>`,
		},
		{
			name: "attributes sorted",
			in:   `<svg width="10" viewBox="0 0 10 10" height="10"><rect y="1" x="2"></rect></svg>`,
			want: `<svg height="10" viewBox="0 0 10 10" width="10"><rect x="2" y="1"/></svg>`,
		},
		{
			name: "editor metadata dropped",
			in: `<svg xmlns="http://www.w3.org/2000/svg" xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape" inkscape:version="1.0">` +
				`<metadata><rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"/></metadata>` +
				`<sodipodi:namedview/><path d="M0 0"/></svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg"><path d="M0 0"/></svg>`,
		},
		{
			name: "text escaped",
			in:   `<svg><text>a &amp; b</text></svg>`,
			want: `<svg><text>a &amp; b</text></svg>`,
		},
		{
			name: "space between text and tspan kept",
			in:   `<svg><text>Cloud <tspan>Native</tspan></text></svg>`,
			want: `<svg><text>Cloud <tspan>Native</tspan></text></svg>`,
		},
		{
			name: "text whitespace collapsed",
			in:   "<svg><text>\n  Cloud\n\t\tNative  </text></svg>",
			want: `<svg><text>Cloud Native</text></svg>`,
		},
		{
			name: "text split by comment",
			in:   `<svg><text>Cloud<!-- x --> Native</text></svg>`,
			want: `<svg><text>Cloud Native</text></svg>`,
		},
		{
			name: "doctype entities",
			in: "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n" +
				"<!DOCTYPE svg PUBLIC \"-//W3C//DTD SVG 1.1//EN\" \"http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd\" [\n" +
				"\t<!ENTITY ns_svg \"http://www.w3.org/2000/svg\">\n" +
				"\t<!ENTITY ns_xlink 'http://www.w3.org/1999/xlink'>\n" +
				"]>\n" +
				`<svg version="1.1" xmlns="&ns_svg;" xmlns:xlink="&ns_xlink;"><path d="M0 0"/></svg>`,
			want: `<svg version="1.1" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink"><path d="M0 0"/></svg>`,
		},
		{
			name: "latin1 encoding",
			in:   "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><svg><title>caf\xe9</title></svg>",
			want: `<svg><title>café</title></svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := New().Normalise([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestNormaliser_SameLogoDifferentFormatting(t *testing.T) {
	a, err := New().Normalise([]byte(`<svg viewBox="0 0 1 1"><circle r="1"/></svg>`))
	require.NoError(t, err)
	b, err := New().Normalise([]byte("<svg\n  viewBox=\"0 0 1 1\"\n>\n\t<circle r=\"1\"></circle>\n</svg>"))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, domain.NewLogoAsset(a).Digest, domain.NewLogoAsset(b).Digest)
}

func TestNormaliser_TextSpacingChangesDigest(t *testing.T) {
	spaced, err := New().Normalise([]byte(`<svg><text>Cloud <tspan>Native</tspan></text></svg>`))
	require.NoError(t, err)
	joined, err := New().Normalise([]byte(`<svg><text>Cloud<tspan>Native</tspan></text></svg>`))
	require.NoError(t, err)

	assert.NotEqual(t, domain.NewLogoAsset(spaced).Digest, domain.NewLogoAsset(joined).Digest)
}

func TestNormaliser_UndeclaredEntity(t *testing.T) {
	_, err := New().Normalise([]byte(`<svg xmlns="&ns_svg;"/>`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormaliser_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "empty", in: "  "},
		{name: "not xml", in: "GIF89a"},
		{name: "not svg", in: "<html><body/></html>"},
		{name: "unclosed", in: "<svg><g></svg>"},
		{name: "truncated", in: "<svg><g>"},
		{name: "two roots", in: "<svg/><svg/>"},
		{name: "text before root", in: "hello<svg/>"},
		{name: "text after root", in: "<svg/>hello"},
		{name: "unknown encoding", in: `<?xml version="1.0" encoding="x-made-up"?><svg/>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Normalise([]byte(tt.in))
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
