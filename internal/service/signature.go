package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// signaturePayloadSeparator ровно такой канонический формат подписывает шлюз:
// orderID + "|" + paymentID, без пробелов.
const signaturePayloadSeparator = "|"

// VerifyCheckoutSignature проверяет подпись колбека чекаута: HMAC-SHA256 от
// канонического пейлоада, ключ - серверный секрет шлюза, hex в нижнем регистре.
// Сравнение константное по времени (hmac.Equal). Пустой секрет или пустая
// подпись означают "не проверено": функция закрывается в false, не паникует.
func VerifyCheckoutSignature(orderID, paymentID, receivedSignature, secret string) bool {
	if secret == "" || receivedSignature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + signaturePayloadSeparator + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(receivedSignature))
}
