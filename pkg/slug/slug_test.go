// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yomishelf/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Solo Leveling", "solo-leveling"},
		{"Thám Tử Lừng Danh Conan", "tham-tu-lung-danh-conan"},
		{"  One--Piece!! ", "one-piece"},
		{"Re:Zero 2", "re-zero-2"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, slug.From(tt.input), tt.input)
	}
}
