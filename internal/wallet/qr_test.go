package wallet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentURI(t *testing.T) {
	addr := "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	assert.Equal(t, "ethereum:"+addr+"@5", PaymentURI(addr, 5))
	assert.Equal(t, "ethereum:"+addr, PaymentURI(addr, 0))
}

func TestQRText(t *testing.T) {
	qr, err := QRText(PaymentURI("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", 5))
	require.NoError(t, err)
	assert.Greater(t, len(qr), 100)
	assert.Contains(t, qr, "\n")
}

func TestWriteQRPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.png")
	require.NoError(t, WriteQRPNG(path, "ethereum:0x0000000000000000000000000000000000000001@5", 128))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), data[:4])
}
