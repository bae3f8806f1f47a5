// Package session keeps small pieces of per-visitor state between requests
// from anonymous clients, such as the time of their last form submission.
//
// A Manager ties together a Transport, which carries an opaque random token
// between client and server, and a Store, which persists the Session the token
// points to. Tokens travel in an encrypted cookie by default; API clients that
// cannot keep cookies may send the same token in a header; MultiTransport
// accepts either.
//
//	cookieMgr, _ := cookie.New([]string{secret})
//	manager := session.New(
//		session.WithCookieManager(cookieMgr),
//		session.WithStore(session.NewRedisStore(redisClient)),
//	)
//	defer manager.Close()
//
//	r.Use(manager.EnsureSession)
//
//	func handle(w http.ResponseWriter, r *http.Request) {
//		sess, _ := session.FromContext(r.Context())
//		sess.Set("last_seen", time.Now().Unix())
//		_ = manager.Save(r.Context(), sess)
//	}
//
// Two stores are provided: MemoryStore for single-instance deployments and
// tests, and RedisStore for deployments running several replicas. Sessions
// expire after an idle timeout, capped by a maximum lifetime.
package session
