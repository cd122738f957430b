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

func stubTerm(t *testing.T, tty bool, pw []byte, err error) {
	t.Helper()
	oldTTY, oldRead := isTerminal, readPassword
	isTerminal = func(int) bool { return tty }
	readPassword = func(int) ([]byte, error) { return pw, err }
	t.Cleanup(func() { isTerminal, readPassword = oldTTY, oldRead })
}

func TestGetSecret_NotATerminalReadsLine(t *testing.T) {
	stubTerm(t, false, nil, errors.New("must not be called"))

	var out bytes.Buffer
	got, err := GetSecret(rdr("1234\n"), "Code", &out)
	require.NoError(t, err)
	assert.Equal(t, "1234", got)
}

func TestGetSecret_TerminalHidesInput(t *testing.T) {
	stubTerm(t, true, []byte(" 4321 "), nil)

	var out bytes.Buffer
	got, err := GetSecret(rdr(""), "Code", &out)
	require.NoError(t, err)
	assert.Equal(t, "4321", got)
	assert.Equal(t, "Code: \n", out.String())
}

func TestGetSecret_Error(t *testing.T) {
	stubTerm(t, true, nil, errors.New("boom"))

	var out bytes.Buffer
	_, err := GetSecret(rdr(""), "Code", &out)
	assert.Error(t, err)
}
