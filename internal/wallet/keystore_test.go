package wallet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileKeystore returns a file-backed Keystore isolated to a temp directory.
// The file backend avoids OS keychain prompts in CI.
func fileKeystore(t *testing.T) *Keystore {
	t.Helper()
	ring, err := keyring.Open(keyring.Config{
		ServiceName:      "whitelist-test",
		AllowedBackends:  []keyring.BackendType{keyring.FileBackend},
		FileDir:          t.TempDir(),
		FilePasswordFunc: keyring.FixedStringPrompt("testpass"),
	})
	require.NoError(t, err)
	return NewKeystore(ring)
}

// ---------------------------------------------------------------------------
// normaliseHexKey
// ---------------------------------------------------------------------------

func TestNormaliseHexKey(t *testing.T) {
	cases := map[string]string{
		"0xabc123":  "abc123",
		"0Xabc123":  "abc123",
		"abc123":    "abc123",
		"  0xabc  ": "abc",
		"0x":        "",
		"":          "",
	}
	for in, want := range cases {
		assert.Equal(t, want, normaliseHexKey(in), "input %q", in)
	}
}

// ---------------------------------------------------------------------------
// Keystore (file backend)
// ---------------------------------------------------------------------------

func TestKeystoreStoreRetrieveDelete(t *testing.T) {
	ks := fileKeystore(t)

	ref, err := ks.Store("alice", "deadbeef")
	require.NoError(t, err)
	assert.Equal(t, "whitelist.alice", ref)

	got, err := ks.Retrieve(ref)
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", got)

	require.NoError(t, ks.Delete(ref))
	_, err = ks.Retrieve(ref)
	assert.Error(t, err)
}

func TestKeystoreDeleteMissingIsNoop(t *testing.T) {
	ks := fileKeystore(t)
	assert.NoError(t, ks.Delete("whitelist.never-stored"))
}

func TestOpenKeystoreFileFallback(t *testing.T) {
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") != "" {
		t.Skip("a desktop keyring is reachable; the file fallback is not exercised")
	}
	dir := filepath.Join(t.TempDir(), "keys")
	ks, err := OpenKeystore(dir, keyring.FixedStringPrompt("pw"))
	require.NoError(t, err)

	ref, err := ks.Store("bob", "cafe")
	require.NoError(t, err)
	got, err := ks.Retrieve(ref)
	require.NoError(t, err)
	assert.Equal(t, "cafe", got)
}

// ---------------------------------------------------------------------------
// InMemoryKeystore
// ---------------------------------------------------------------------------

func TestInMemoryKeystore(t *testing.T) {
	ks := NewInMemoryKeystore()

	ref, err := ks.Store("carol", "beef")
	require.NoError(t, err)

	got, err := ks.Retrieve(ref)
	require.NoError(t, err)
	assert.Equal(t, "beef", got)

	require.NoError(t, ks.Delete(ref))
	_, err = ks.Retrieve(ref)
	assert.Error(t, err)
}
