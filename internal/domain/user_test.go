package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.openly.dev/pointy"
)

func TestProfileImageURL(t *testing.T) {
	tests := []struct {
		name      string
		imagePath string
		want      string
	}{
		{name: "empty", imagePath: "", want: ""},
		{name: "absolute http", imagePath: "http://cdn.example.com/a.png", want: "http://cdn.example.com/a.png"},
		{name: "absolute https", imagePath: "https://cdn.example.com/a.png", want: "https://cdn.example.com/a.png"},
		{name: "rooted path", imagePath: "/uploads/a.png", want: "http://localhost:3000/uploads/a.png"},
		{name: "relative path", imagePath: "uploads/a.png", want: "http://localhost:3000/uploads/a.png"},
		{name: "relative path starting with http", imagePath: "httpimages/a.png", want: "http://localhost:3000/httpimages/a.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProfileImageURL("http://localhost:3000/", tt.imagePath))
		})
	}
}

func TestProfileUpdateApplyAndFields(t *testing.T) {
	update := ProfileUpdate{FirstName: pointy.String("Jane"), Email: pointy.String("")}

	assert.False(t, update.IsEmpty())
	assert.Equal(t, map[string]string{"firstName": "Jane", "email": ""}, update.Fields())

	got := update.Apply(UserProfile{ID: "1", FirstName: "John", LastName: "Doe", Email: "john@example.com"})
	assert.Equal(t, UserProfile{ID: "1", FirstName: "Jane", LastName: "Doe", Email: ""}, got)
	assert.True(t, ProfileUpdate{}.IsEmpty())
}
