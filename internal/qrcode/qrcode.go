package qrcode

import (
	"fmt"
	"net/url"
	"strings"

	qr "github.com/skip2/go-qrcode"
)

// Generate creates a QR code PNG image for the given URL.
func Generate(link string) ([]byte, error) {
	return qr.Encode(link, qr.Medium, 256)
}

// JoinURL is the link a phone opens to take a seat in game gameID.
func JoinURL(baseURL, gameID string) string {
	return fmt.Sprintf("%s/join?game=%s", strings.TrimRight(baseURL, "/"), url.QueryEscape(gameID))
}

// JoinPNG renders the join link of a game as a QR code.
func JoinPNG(baseURL, gameID string) ([]byte, error) {
	return Generate(JoinURL(baseURL, gameID))
}
