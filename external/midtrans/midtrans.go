package midtrans

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// NewSnapClient returns a Snap client for env ("production" or "sandbox").
func NewSnapClient(serverKey, env string) *snap.Client {
	var client snap.Client

	mEnv := midtrans.Sandbox
	if env == "production" {
		mEnv = midtrans.Production
	}
	client.New(serverKey, mEnv)

	return &client
}

// Signature computes the signature_key Midtrans attaches to notifications.
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	hash := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(hash[:])
}

func VerifySignature(
	orderID string,
	statusCode string,
	grossAmount string,
	signature string,
	serverKey string,
) bool {
	expected := Signature(orderID, statusCode, grossAmount, serverKey)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
