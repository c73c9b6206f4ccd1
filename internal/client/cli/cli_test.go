package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iudanet/edukeeper/internal/client/iocli"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func joinArgs(args []any) string {
	str := ""
	for i, a := range args {
		if i > 0 {
			str += " "
		}
		str += fmt.Sprintf("%v", a)
	}
	return str
}

// captureIO возвращает мок IO, собирающий весь вывод, и функцию чтения вывода.
// input отдается на каждый ReadInput
func captureIO(input string) (*iocli.IOMock, func() string) {
	var mu sync.Mutex
	var sb strings.Builder

	mockIO := &iocli.IOMock{
		PrintlnFunc: func(a ...any) {
			mu.Lock()
			defer mu.Unlock()
			sb.WriteString(joinArgs(a) + "\n")
		},
		PrintfFunc: func(format string, a ...any) {
			mu.Lock()
			defer mu.Unlock()
			sb.WriteString(fmt.Sprintf(format, a...))
		},
		WriteFunc: func(p []byte) (int, error) {
			mu.Lock()
			defer mu.Unlock()
			sb.Write(p)
			return len(p), nil
		},
		ReadInputFunc: func(prompt string) (string, error) {
			return input, nil
		},
	}

	return mockIO, func() string {
		mu.Lock()
		defer mu.Unlock()
		return sb.String()
	}
}

func TestResolveKind(t *testing.T) {
	kind, err := resolveKind("minigame")
	assert.NoError(t, err)
	assert.Equal(t, "minigame", kind.Name)

	_, err = resolveKind("quiz")
	assert.Error(t, err)
}

func TestCli_encode(t *testing.T) {
	value := map[string]any{"id": "t1", "order": 2}

	tests := []struct {
		name    string
		format  string
		want    string
		wantErr bool
	}{
		{name: "yaml", format: FormatYAML, want: "id: t1\norder: 2\n"},
		{name: "json", format: FormatJSON, want: "{\n  \"id\": \"t1\",\n  \"order\": 2\n}\n"},
		{name: "unknown", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockIO, output := captureIO("")
			c := &Cli{io: mockIO}

			err := c.encode(tt.format, value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, output())
		})
	}
}

func TestCli_confirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "y", want: true},
		{input: "yes", want: true},
		{input: "Y", want: true},
		{input: "", want: false},
		{input: "n", want: false},
	}

	for _, tt := range tests {
		t.Run("answer "+tt.input, func(t *testing.T) {
			mockIO, _ := captureIO(tt.input)
			c := &Cli{io: mockIO}

			ok, err := c.confirm("Sure?")
			assert.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.Equal(t, "Sure? [y/N]: ", mockIO.ReadInputCalls()[0].Prompt)
		})
	}
}
