// Package crunchbase collects organization metadata from the Crunchbase v4
// REST API.
//
// Organizations are addressed by their Crunchbase URL
// (https://www.crunchbase.com/organization/<permalink>). The client requests
// the organization entity together with its raised funding rounds card and
// maps the response onto [domain.CrunchbaseData].
//
// Requests are throttled with a token bucket. A 429 response puts the client
// into backoff for the duration advertised by Retry-After.
package crunchbase
