package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	assert.Error(t, err)
}

func TestGetMultiline_DoubleEnter(t *testing.T) {
	var out bytes.Buffer
	got, err := GetMultiline(rdr("a\nb\n\nnot read\n"), "Enter text", &out)
	require.NoError(t, err)
	assert.Equal(t, "a\nb", got)
}

func TestGetMultiline_EOFWithoutBlankLine(t *testing.T) {
	var out bytes.Buffer
	got, err := GetMultiline(rdr("only line"), "Enter text", &out)
	require.NoError(t, err)
	assert.Equal(t, "only line", got)
}

func TestGetFields(t *testing.T) {
	var out bytes.Buffer

	got, err := GetFields(rdr("name = CA3 cell\nalias=ca3\nalias=ca3-pyr\n\n"), "New model", &out)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"name": "CA3 cell", "alias": "ca3-pyr"}, got)

	got, err = GetFields(rdr("\n"), "Edit", &out)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = GetFields(rdr("no separator\n\n"), "Edit", &out)
	assert.Error(t, err)
}

func TestGetToken(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	readPassword = func(int) ([]byte, error) { return []byte("tok"), nil }
	var out bytes.Buffer
	tok, err := GetToken(&out)
	require.NoError(t, err)
	assert.Equal(t, []byte("tok"), tok)

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = GetToken(&out)
	assert.Error(t, err)
}
