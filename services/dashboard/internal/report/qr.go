package report

import qrcode "github.com/skip2/go-qrcode"

// QRPNG encodes a URL as a PNG QR code, sized for on-screen scanning.
func QRPNG(url string) ([]byte, error) {
	return qrcode.Encode(url, qrcode.Medium, 256)
}
