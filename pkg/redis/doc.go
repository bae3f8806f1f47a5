// Package redis wraps go-redis with a retrying Connect and a health check
// closure. The client backs the Redis session store.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//	store := session.NewRedisStore(client)
package redis
