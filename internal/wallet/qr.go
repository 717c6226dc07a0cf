package wallet

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// PaymentURI builds an EIP-681 style URI so mobile wallets pick the right
// chain when scanning.
func PaymentURI(address string, chainID int64) string {
	if chainID <= 0 {
		return "ethereum:" + address
	}
	return fmt.Sprintf("ethereum:%s@%d", address, chainID)
}

// QRText renders content as a QR code made of terminal block characters.
func QRText(content string) (string, error) {
	qr, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}
	return qr.ToSmallString(false), nil
}

// WriteQRPNG writes content as a size×size PNG QR code to path.
func WriteQRPNG(path, content string, size int) error {
	if err := qrcode.WriteFile(content, qrcode.Medium, size, path); err != nil {
		return fmt.Errorf("writing QR code: %w", err)
	}
	return nil
}
