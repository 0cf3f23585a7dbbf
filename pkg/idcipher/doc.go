// Package idcipher provides reversible obfuscation of tenant identifiers.
//
// Long-lived tenant identifiers sometimes travel through URLs, headers and
// client-side storage where the raw value should not be exposed. The cipher
// turns an identifier into an opaque token and back again. AES-256-GCM is
// used deliberately: the decrypted value flows into an access-control
// comparison, so the scheme must be authenticated, not merely reversible.
//
//	c, err := idcipher.New(masterKey)
//	token, err := c.Encrypt("temple1")
//	id, err := c.Decrypt(token) // "temple1"
//
// Decryption failures are typed and recoverable; callers log them at low
// severity and treat the token as matching nothing.
package idcipher
