package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolver_URL(t *testing.T) {
	r := NewResolver("https://shop.example.com/")

	tests := []struct {
		in, want string
	}{
		{"uploads/a.jpg", "https://shop.example.com/uploads/a.jpg"},
		{"/uploads/a.jpg", "https://shop.example.com/uploads/a.jpg"},
		{`uploads\win\a.jpg`, "https://shop.example.com/uploads/win/a.jpg"},
		{"https://cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.URL(tt.in), tt.in)
	}
}

func TestResolver_EmptyBase(t *testing.T) {
	assert.Equal(t, "uploads/a.jpg", NewResolver("").URL("uploads/a.jpg"))

	var r *Resolver
	assert.Equal(t, "x.png", r.URL("x.png"))
}

func TestResolver_URLsCopies(t *testing.T) {
	in := []string{"a.png"}
	out := NewResolver("http://h").URLs(in)
	assert.Equal(t, []string{"http://h/a.png"}, out)
	assert.Equal(t, "a.png", in[0])
}
