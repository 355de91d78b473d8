package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOriginalURL(t *testing.T) {
	tests := []struct {
		name    string
		rawURL  string
		wantErr error
	}{
		{
			name:    "valid https url",
			rawURL:  "https://example.com",
			wantErr: nil,
		},
		{
			name:    "valid http url",
			rawURL:  "http://example.com",
			wantErr: nil,
		},
		{
			name:    "valid url with path",
			rawURL:  "https://example.com/path/to/page",
			wantErr: nil,
		},
		{
			name:    "valid url with query",
			rawURL:  "https://example.com?foo=bar&baz=qux",
			wantErr: nil,
		},
		{
			name:    "valid url with port",
			rawURL:  "https://example.com:8080/path",
			wantErr: nil,
		},
		{
			name:    "empty url",
			rawURL:  "",
			wantErr: ErrInvalidURL,
		},
		{
			name:    "invalid url - no scheme",
			rawURL:  "example.com",
			wantErr: ErrInvalidURL,
		},
		{
			name:    "invalid url - ftp scheme",
			rawURL:  "ftp://example.com",
			wantErr: ErrInvalidURL,
		},
		{
			name:    "invalid url - no host",
			rawURL:  "https://",
			wantErr: ErrInvalidURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ou, err := NewOriginalURL(tt.rawURL)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, ou.IsEmpty())
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.rawURL, ou.String())
				assert.False(t, ou.IsEmpty())
			}
		})
	}
}

func TestOriginalURL_Parts(t *testing.T) {
	ou, err := NewOriginalURL("https://example.com:8080/path")
	require.NoError(t, err)

	assert.Equal(t, "https", ou.Scheme())
	assert.Equal(t, "example.com:8080", ou.Host())
	assert.Equal(t, "example.com", ou.Hostname())
}

func TestOriginalURL_Equals(t *testing.T) {
	ou1, _ := NewOriginalURL("https://example.com")
	ou2, _ := NewOriginalURL("https://example.com")
	ou3, _ := NewOriginalURL("https://other.com")

	assert.True(t, ou1.Equals(ou2))
	assert.False(t, ou1.Equals(ou3))
}
