package acquire

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProxyFunc(t *testing.T) {
	proxy := NewProxyFunc("http://proxy.local:3128", "http://secure.local:3129", "internal.example, .corp")

	tests := []struct {
		url  string
		want string
	}{
		{"http://www.defense.gov/news", "http://proxy.local:3128"},
		{"https://www.gov.uk/news", "http://secure.local:3129"},
		{"https://wiki.internal.example/page", ""},
		{"https://internal.example/page", ""},
		{"http://hr.corp/x", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, tt.url, nil)
			require.NoError(t, err)

			got, err := proxy(req)
			require.NoError(t, err)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestNewProxyFunc_HTTPSFallsBackToHTTPProxy(t *testing.T) {
	proxy := NewProxyFunc("http://proxy.local:3128", "", "")
	req, err := http.NewRequest(http.MethodGet, "https://www.gov.pl/", nil)
	require.NoError(t, err)

	got, err := proxy(req)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "http://proxy.local:3128", got.String())
}
