// Package cacheproxy implements a transparent caching proxy over an external
// TTL key-value store. A Proxy wraps a producer function and a store handle;
// callers treat the proxy like the produced value while the proxy decides
// when to recompute, how to serialize across the process boundary, and how
// to rehydrate stored structures into schema-free Records.
//
// Components:
//   - Store: byte store with fetch-or-populate and TTL (e.g. Redis, memory,
//     Ristretto, BigCache).
//   - Codec: (de)serializes structural trees (mappings/sequences/scalars)
//     <-> []byte.
//   - Record: ordered, schema-free mapping with attribute-style access that
//     survives any structure-preserving serialization medium. Stored
//     payloads never reference Go type identity, so entries written by an
//     older build stay readable after the producing type changes.
//
// Resolve flow:
//
//	p, _ := cacheproxy.New(cacheproxy.Options{
//	    Store:    st,
//	    Producer: loadCities,
//	    Key:      "cities",
//	    TTL:      12 * time.Hour,
//	})
//	v, _ := p.Resolve(ctx)                     // hit: decode + rehydrate; miss: produce + store
//	name, _ := p.Invoke(ctx, "get", "name")    // forwarded to the resolved value
//	_ = p.Invalidate(ctx)                      // next Resolve recomputes
//
// The proxy keeps no state between calls. Every Resolve queries the store,
// so Invalidate takes effect across long-lived proxy bindings without a
// process restart. Concurrent misses may each run the producer; last write
// wins in the store.
package cacheproxy
