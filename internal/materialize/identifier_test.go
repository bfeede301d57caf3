package materialize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerivePackageIdentifier(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "mixed case", in: "MyApp", want: "com.example.myapp"},
		{name: "already lower", in: "acme", want: "com.example.acme"},
		{name: "underscores kept", in: "My_App", want: "com.example.my_app"},
		{name: "spaces kept", in: "My Awesome App", want: "com.example.my awesome app"},
		// ASCII fold only, so the Turkish dotted capital I stays as is
		{name: "non-ascii untouched", in: "İnci", want: "com.example.İnci"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DerivePackageIdentifier(tt.in))
		})
	}
}

func TestValidatePackageIdentifier(t *testing.T) {
	tests := []struct {
		id      string
		wantErr string
	}{
		{id: "com.acme.app"},
		{id: "com.example.my_app"},
		{id: "io._private.App2"},
		{id: "", wantErr: "empty"},
		{id: "acme", wantErr: "at least two"},
		{id: "com..app", wantErr: "empty segment"},
		{id: "com.acme.", wantErr: "empty segment"},
		{id: "com.example.my awesome app", wantErr: "must start with a letter"},
		{id: "com.1acme.app", wantErr: "must start with a letter"},
		{id: "com.acme-corp.app", wantErr: "must start with a letter"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			err := ValidatePackageIdentifier(tt.id)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestSuggestPackageIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "com.example.my awesome app", want: "com.example.myawesomeapp"},
		{in: "com.Acme-Corp.App", want: "com.acmecorp.app"},
		{in: "com.1acme.app", want: "com._1acme.app"},
		{in: "com..app", want: "com.app"},
		{in: "Acme!", want: "com.example.acme"},
		{in: "!!!", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := SuggestPackageIdentifier(tt.in)
			assert.Equal(t, tt.want, got)
			if got != "" {
				assert.NoError(t, ValidatePackageIdentifier(got))
			}
		})
	}
}
