package blueprint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SMillerDev/drafter/blueprint"
)

func TestSymbolTable_RegisterAndLookup(t *testing.T) {
	t.Parallel()

	st := blueprint.NewSymbolTable()

	msg := &blueprint.Payload{Name: "Message", Body: []byte("AAA\n")}
	st.Register("Message", msg)

	got, ok := st.Lookup("Message")
	require.True(t, ok)
	assert.Same(t, msg, got)

	_, ok = st.Lookup("Nope")
	assert.False(t, ok)
}

func TestSymbolTable_RegisterEmptyNameIsNoop(t *testing.T) {
	t.Parallel()

	st := blueprint.NewSymbolTable()
	st.Register("", &blueprint.Payload{Name: "ignored"})

	_, ok := st.Lookup("")
	assert.False(t, ok)
}

func TestSymbolTable_RegisterOverwritesPreviousEntry(t *testing.T) {
	t.Parallel()

	st := blueprint.NewSymbolTable()

	first := &blueprint.Payload{Body: []byte("first")}
	second := &blueprint.Payload{Body: []byte("second")}

	st.Register("Widget", first)
	st.Register("Widget", second)

	got, ok := st.Lookup("Widget")
	require.True(t, ok)
	assert.Same(t, second, got)
}
