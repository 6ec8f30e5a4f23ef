package student

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAgeAt(t *testing.T) {
	ref := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		birth time.Time
		want  int
	}{
		{"birthday already passed", time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC), 15},
		{"birthday later in the year", time.Date(2010, time.May, 1, 0, 0, 0, 0, time.UTC), 14},
		{"day after reference", time.Date(2010, time.January, 2, 0, 0, 0, 0, time.UTC), 14},
		{"december birthday", time.Date(2009, time.December, 31, 0, 0, 0, 0, time.UTC), 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AgeAt(tt.birth, ref))
		})
	}
}
