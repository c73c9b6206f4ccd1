package iocli

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Проверяем что NewStdio возвращает валидный объект
func TestNewStdio(t *testing.T) {
	stdio := NewStdio()
	assert.NotNil(t, stdio)
}

func TestPrintlnAndPrintf(t *testing.T) {
	var out bytes.Buffer
	stream := NewStream(strings.NewReader(""), &out)

	stream.Println("hello", "world")
	stream.Printf("test %d %s", 1, "abc")

	assert.Equal(t, "hello world\ntest 1 abc", out.String())
}

func TestReadInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "line", input: "user input\n", want: "user input"},
		{name: "trims spaces", input: "  yes \n", want: "yes"},
		{name: "last line without newline", input: "no", want: "no"},
		{name: "empty stream", input: "", wantErr: io.EOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			stream := NewStream(strings.NewReader(tt.input), &out)

			got, err := stream.ReadInput("Prompt: ")
			assert.Equal(t, "Prompt: ", out.String())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Тест ReadInput через настоящий os.Stdin
func TestReadInput_Stdin(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)

	go func() {
		_, _ = w.Write([]byte("user input\n"))
		_ = w.Close()
	}()

	oldStdin := os.Stdin
	defer func() { os.Stdin = oldStdin }()
	os.Stdin = r

	stdio := NewStdio()
	result, err := stdio.ReadInput("")
	assert.NoError(t, err)
	assert.Equal(t, "user input", result)
}

func TestWrite(t *testing.T) {
	var out bytes.Buffer
	n, err := NewStream(nil, &out).Write([]byte("raw"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "raw", out.String())
}
