package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldExclude(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		dirName  string
		patterns []string
		want     bool
	}{
		{
			name:     "exact name match",
			path:     "/home/dev/project/node_modules",
			dirName:  "node_modules",
			patterns: []string{"node_modules"},
			want:     true,
		},
		{
			name:     "substring of path",
			path:     "/home/dev/archive/old/project",
			dirName:  "project",
			patterns: []string{"archive"},
			want:     true,
		},
		{
			name:     "no match",
			path:     "/home/dev/project",
			dirName:  "project",
			patterns: []string{"node_modules", "venv"},
			want:     false,
		},
		{
			name:     "empty pattern never matches",
			path:     "/home/dev/project",
			dirName:  "project",
			patterns: []string{""},
			want:     false,
		},
		{
			name:     "case sensitive",
			path:     "/home/dev/Project",
			dirName:  "Project",
			patterns: []string{"project"},
			want:     false,
		},
		{
			name:    "no patterns",
			path:    "/home/dev/project",
			dirName: "project",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldExclude(tt.path, tt.dirName, tt.patterns))
		})
	}
}
