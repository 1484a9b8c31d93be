// Package redmine provides types, interfaces, and helpers for working with the
// Redmine REST API.
//
// # Overview
//
// The redmine package defines the resource client interfaces (e.g.
// IssuesClient, ProjectsClient, UsersClient), the typed models those
// resources decode into, and the shared building blocks used by every
// resource: query parameters, payload whitelists, pagination and errors. A
// concrete implementation is provided by the redmineclient package, which
// wires configuration and transport. Most consumers should import
// redmineclient to construct a client and then use the interfaces here.
//
// Getting a client
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
//	  cli, err := redmineclient.New(&redmine.Config{
//	    BaseURL: "https://redmine.example.com",
//	    APIKey:  "0123456789abcdef",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // First page of open issues of project 5
//	  issues, err := cli.Issues().List(ctx, &redmine.ListOptions{
//	    Filters: redmine.NewGroup().Set("project_id", 5).Set("status_id", "open"),
//	  })
//	  if err != nil { log.Fatal(err) }
//	  _ = issues
//	}
//
// Resource clients are created on first use and cached, so repeated calls to
// an accessor (or to Client.Resource with the same ResourceType) return the
// same instance.
//
// # Queries and pagination
//
// Query parameters are built from ordered Groups. BuildQueryParameters merges
// groups left to right, joins slices with "," and skips nil values, so the
// wire order always matches the order the caller set the keys in.
//
// List operations return the raw collection envelope and request offset 0,
// limit 25 unless told otherwise. ListAll operations, or All for any
// ListFunc, drain a collection page by page:
//
//	all, err := cli.Issues().ListAll(ctx, redmine.NewGroup().Set("status_id", "*"))
//	if err != nil { /* handle error */ }
//	issues, err := redmine.DecodeAll[redmine.Issue](all)
//
// # Payloads
//
// Create and update operations filter caller data through a Permitted
// whitelist (see SanitizeData) before wrapping it in the singular envelope
// the API expects, e.g. {"issue": {...}}. Unknown fields are silently dropped.
//
// # Errors
//
// Every error can be classified with KindOf. RequestError carries the HTTP
// status and the upstream body; ResponseError reports a body that is not a
// JSON object; ValidationError reports a problem found before or after the
// call. Helpers such as IsNotFound and IsUnprocessable branch on common
// statuses.
//
// # Interceptors
//
// An InterceptorChain can be attached through Config to observe or amend
// requests and responses. The package ships interceptors for logging, static
// headers, user impersonation and per-endpoint metrics.
package redmine
