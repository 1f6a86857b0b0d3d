// Package output writes the generated landscape website.
//
// Layout of the output directory:
//
//	data/      base.json and full.json datasets
//	docs/      items.csv export
//	images/    settings images (favicon, header and footer logos)
//	logos/     content-addressed logos, one file per digest
//	index.html rendered from the web bundle
//	assets/    static web application files
//
// None of these writers coordinate concurrency or isolate failures
// themselves; the only shared writer is the logo store, whose writes are
// idempotent per digest.
package output
