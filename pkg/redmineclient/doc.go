// Package redmineclient provides the primary entry point for constructing a
// Redmine REST API client that implements the redmine.Client interface.
//
// It layers configuration and HTTP transport on top of the resource
// interfaces and types defined in the redmine package. Most applications
// should import redmineclient to build a client, then use the returned
// redmine.Client to access resource-specific clients, for example Issues(),
// Projects(), Users(), etc.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/redmine-client/pkg/redmine"
//	  "github.com/fivetwenty-io/redmine-client/pkg/redmineclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Minimal: a base URL and an API key.
//	  cli, err := redmineclient.NewWithAPIKey("redmine.example.com", "0123456789abcdef")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with the full configuration, e.g. to log through your own logger
//	  // and act on behalf of another user:
//	  cli, err = redmineclient.New(&redmine.Config{
//	    BaseURL:      "https://example.com/redmine",
//	    APIKey:       "0123456789abcdef",
//	    Logger:       myLogger,
//	    Interceptors: redmine.NewInterceptorChain().
//	      AddRequestInterceptor(redmine.ImpersonateInterceptor("jsmith")),
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  me, err := cli.Users().GetCurrent(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = me
//	}
//
// The base URL may omit the scheme, in which case https is assumed, and may
// point at a sub-path install. Requests are never retried; wrap the
// HTTPClient in Config if you need retries.
package redmineclient
