package wallet

import (
	"errors"
	"fmt"
	"io/fs"
	"runtime"
	"sync"

	"github.com/99designs/keyring"
)

const keychainService = "whitelist"

// KeyStore keeps private keys out of wallets.json.
type KeyStore interface {
	Store(name, hexKey string) (ref string, err error)
	Retrieve(ref string) (string, error)
	Delete(ref string) error
}

// Keystore wraps OS keychain access.
type Keystore struct {
	ring keyring.Keyring
}

// OpenKeystore returns a keystore backed by the OS keychain. When no
// keychain is reachable it falls back to an encrypted file keyring in
// fileDir, unlocked through prompt.
func OpenKeystore(fileDir string, prompt keyring.PromptFunc) (*Keystore, error) {
	if prompt == nil {
		prompt = keyring.TerminalPrompt
	}
	cfg := keyring.Config{
		ServiceName:              keychainService,
		KeychainTrustApplication: true,
		FileDir:                  fileDir,
		FilePasswordFunc:         prompt,
	}

	// On Linux without a desktop session, fall back to file-based storage.
	if runtime.GOOS == "linux" {
		cfg.AllowedBackends = []keyring.BackendType{
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.FileBackend,
		}
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		ring, err = keyring.Open(keyring.Config{
			ServiceName:      keychainService,
			AllowedBackends:  []keyring.BackendType{keyring.FileBackend},
			FileDir:          fileDir,
			FilePasswordFunc: prompt,
		})
		if err != nil {
			return nil, fmt.Errorf("opening keyring: %w", err)
		}
	}
	return &Keystore{ring: ring}, nil
}

// NewKeystore wraps an already opened keyring.
func NewKeystore(ring keyring.Keyring) *Keystore {
	return &Keystore{ring: ring}
}

// Store saves a private key for a wallet name and returns a reference key.
func (k *Keystore) Store(name, hexKey string) (string, error) {
	ref := keyRef(name)
	err := k.ring.Set(keyring.Item{
		Key:         ref,
		Data:        []byte(hexKey),
		Label:       "whitelist wallet " + name,
		Description: "EVM private key",
	})
	if err != nil {
		return "", fmt.Errorf("keychain store: %w", err)
	}
	return ref, nil
}

// Retrieve fetches a private key by its reference.
func (k *Keystore) Retrieve(ref string) (string, error) {
	item, err := k.ring.Get(ref)
	if err != nil {
		return "", fmt.Errorf("keychain retrieve %s: %w", ref, err)
	}
	return string(item.Data), nil
}

// Delete removes a stored key. A missing key is not an error.
func (k *Keystore) Delete(ref string) error {
	err := k.ring.Remove(ref)
	if errors.Is(err, keyring.ErrKeyNotFound) || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// InMemoryKeystore stores keys in memory (for tests and ephemeral wallets).
type InMemoryKeystore struct {
	mu   sync.Mutex
	data map[string]string
}

// NewInMemoryKeystore creates an in-memory keystore.
func NewInMemoryKeystore() *InMemoryKeystore {
	return &InMemoryKeystore{data: make(map[string]string)}
}

func (k *InMemoryKeystore) Store(name, hexKey string) (string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	ref := keyRef(name)
	k.data[ref] = hexKey
	return ref, nil
}

func (k *InMemoryKeystore) Retrieve(ref string) (string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	v, ok := k.data[ref]
	if !ok {
		return "", fmt.Errorf("key not found: %s", ref)
	}
	return v, nil
}

func (k *InMemoryKeystore) Delete(ref string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.data, ref)
	return nil
}

func keyRef(name string) string { return keychainService + "." + name }
