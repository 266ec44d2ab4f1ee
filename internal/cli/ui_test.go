package cli

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/matzehuels/labyrinth/pkg/errors"
)

func TestPrintError(t *testing.T) {
	offGrid := errors.New(errors.ErrCodeOutOfBounds, "cell (4, 0) is outside the grid")

	tests := []struct {
		name     string
		err      error
		want     []string
		wantHint bool
	}{
		{
			name: "coded message",
			err:  errors.New(errors.ErrCodeInvalidColor, `invalid color "teal"`),
			want: []string{`invalid color "teal"`, "INVALID_COLOR"},
		},
		{
			name:     "carve off the grid",
			err:      fmt.Errorf("load maze.toml: %w", errors.Wrap(errors.ErrCodeInvalidDefinition, offGrid, "passage 2")),
			want:     []string{"passage 2", "load maze.toml", "outside the grid"},
			wantHint: true,
		},
		{
			name: "plain error",
			err:  stderrors.New("disk full"),
			want: []string{"disk full"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			PrintError(&buf, tt.err)
			out := buf.String()

			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output %q missing %q", out, w)
				}
			}
			if got := strings.Contains(out, "hint:"); got != tt.wantHint {
				t.Errorf("hint shown = %v, want %v\n%s", got, tt.wantHint, out)
			}
		})
	}
}

func TestPrintErrorPlainIsOneLine(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, stderrors.New("disk full"))
	if n := strings.Count(buf.String(), "\n"); n != 1 {
		t.Errorf("plain error printed %d lines, want 1:\n%s", n, buf.String())
	}
}
