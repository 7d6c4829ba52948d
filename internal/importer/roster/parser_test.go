package roster_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/rmaldonado/obrix/internal/importer/roster"
)

func TestParser_Planilla(t *testing.T) {
	csv := `Planilla de clientes - exportada 12/03/2024

Nombre;Apellido;Teléfono;Email;Dirección;Ciudad;Provincia;CP;DNI;Medio de referencia;Notas
Ana;García;11-5555-0001;ana@example.com;Av. Rivadavia 1234;CABA;Buenos Aires;1406;28111222;Instagram;Cliente frecuente
Juan;Pérez;11-5555-0002;;Calle Falsa 123;Lanús;Buenos Aires;1824;30333444;Recomendado;
`

	p := roster.NewParser()
	clients, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, clients, 2)

	assert.Equal(t, "Ana", clients[0].FirstName)
	assert.Equal(t, "García", clients[0].LastName)
	assert.Equal(t, "11-5555-0001", clients[0].Phone)
	assert.Equal(t, "ana@example.com", clients[0].Email)
	assert.Equal(t, "Av. Rivadavia 1234", clients[0].Address)
	assert.Equal(t, "CABA", clients[0].City)
	assert.Equal(t, "Buenos Aires", clients[0].State)
	assert.Equal(t, "1406", clients[0].Zip)
	assert.Equal(t, "28111222", clients[0].DNI)
	assert.Equal(t, "Instagram", clients[0].ReferenceMedium)
	assert.Equal(t, "Cliente frecuente", clients[0].Notes)
	assert.False(t, clients[0].CreatedAt.IsZero())

	assert.Equal(t, "Juan", clients[1].FirstName)
	assert.Empty(t, clients[1].Email)
}

func TestParser_Agenda(t *testing.T) {
	csv := `Cliente;Teléfono;Email;Ciudad;DNI
Ana María García López;11-5555-0001;ana@example.com;CABA;28111222
Pedro;11-5555-0003;;Quilmes;
`

	p := roster.NewParser()
	clients, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, clients, 2)

	assert.Equal(t, "Ana", clients[0].FirstName)
	assert.Equal(t, "María García López", clients[0].LastName)
	assert.Equal(t, "CABA", clients[0].City)

	// One-word names land entirely in the first name.
	assert.Equal(t, "Pedro", clients[1].FirstName)
	assert.Empty(t, clients[1].LastName)
}

func TestParser_Latin1Encoding(t *testing.T) {
	utf8CSV := "Cliente;Teléfono\nJosé Núñez;11-5555-0004\n"

	encoder := charmap.Windows1252.NewEncoder()
	latin1Bytes, err := encoder.Bytes([]byte(utf8CSV))
	require.NoError(t, err)

	p := roster.NewParser()
	clients, err := p.Parse(bytes.NewReader(latin1Bytes))
	require.NoError(t, err)
	require.Len(t, clients, 1)

	assert.Equal(t, "José", clients[0].FirstName)
	assert.Equal(t, "Núñez", clients[0].LastName)
}

func TestParser_SkipsBlankRows(t *testing.T) {
	csv := `Nombre;Apellido;Teléfono
Ana;García;11-5555-0001
;;
Juan;Pérez;11-5555-0002
`

	p := roster.NewParser()
	clients, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, clients, 2)
}

func TestParser_MissingName(t *testing.T) {
	csv := `Nombre;Apellido;Teléfono
Ana;García;11-5555-0001
;García;11-5555-0005
`

	p := roster.NewParser()
	_, err := p.Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3: missing client name")
}

func TestParser_UnknownLayout(t *testing.T) {
	csv := `Producto;Precio
Cemento;12000
`

	p := roster.NewParser()
	_, err := p.Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no matching roster layout")
}

func TestParser_HeaderOnly(t *testing.T) {
	csv := `Nombre;Apellido;Teléfono;Email`

	p := roster.NewParser()
	clients, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Empty(t, clients)
}
