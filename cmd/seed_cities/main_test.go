package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func latin1(t *testing.T, s string) []byte {
	t.Helper()
	b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return b
}

func TestParseCities_Latin1(t *testing.T) {
	in := latin1(t, "codigo;nombre;uf\n"+
		"3550308;São Paulo;sp\n"+
		"3304557;Rio de Janeiro;RJ\n"+
		";sin código;MG\n"+
		"3550308;São Paulo;SP\n"+
		"5300108;Brasília\n")

	cities, err := parseCities(bytes.NewReader(in))
	require.NoError(t, err)
	require.Len(t, cities, 2)
	assert.Equal(t, city{code: "3304557", name: "Rio de Janeiro", state: "RJ"}, cities[0])
	assert.Equal(t, city{code: "3550308", name: "São Paulo", state: "SP"}, cities[1])
}

func TestWriteSQL_Escapa(t *testing.T) {
	var out strings.Builder
	require.NoError(t, writeSQL(&out, []city{{code: "2927408", name: "Santa Bárbara d'Oeste", state: "SP"}}))

	sql := out.String()
	assert.Contains(t, sql, "VALUES ('2927408', '2927408', 'Santa Bárbara d''Oeste', 'SP')")
	assert.Contains(t, sql, "ON CONFLICT (id) DO UPDATE")
}
