// Package cookie sets and reads HTTP cookies whose values are encrypted with
// AES-256-GCM.
//
// The session package stores its opaque token through this manager, so a
// client can neither read nor forge it:
//
//	mgr, err := cookie.New([]string{os.Getenv("COOKIE_SECRETS")})
//	if err != nil {
//		return err
//	}
//	_ = mgr.SetEncrypted(w, "sid", token, cookie.WithMaxAge(1800))
//	token, err := mgr.GetEncrypted(r, "sid")
//
// Several secrets may be configured for key rotation: the first one encrypts,
// every one of them is tried when decrypting.
package cookie
