// Package streamcache is a disk-backed, content-addressed cache of opaque
// byte streams. Values are hashed as they are written so the same content
// is never stored twice; keys are left to the caller (K comparable), and
// eviction is delegated to a pluggable Policy chosen at construction.
//
// A minimal cache looks like:
//
//	pol := policy.LRU[string]()
//	c, err := streamcache.New(streamcache.Config[string]{
//		RootDir:  "/var/cache/mything",
//		Policy:   pol,
//		Capacity: 10 << 30, // 10 GiB
//	})
//	if err != nil {
//		// ...
//	}
//	defer c.Close()
//
//	if err := c.Set("key", bytes.NewReader(data)); err != nil {
//		// ...
//	}
//	r, err := c.Get("key")
//
// The root directory is treated as disposable: New purges it on
// construction, and Close clears it on shutdown. There is no durability
// across restarts and no coordination across processes sharing a root.
package streamcache
