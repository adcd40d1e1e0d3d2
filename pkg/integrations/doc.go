// Package integrations provides the shared HTTP client used by upstream API
// integrations.
//
// [Client] adds default headers, response caching through pkg/cache and
// request events on the observability HTTP hooks. Integrations embed it:
//
//	type Client struct {
//	    *integrations.Client
//	    endpoint string
//	}
//
// Subpackages:
//   - coingecko: market categories shown next to the address graph
//
// Upstream failures are reported as [ErrNotFound] or [ErrNetwork]. There is
// no retry; callers decide how to degrade.
package integrations
