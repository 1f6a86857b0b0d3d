// Package memory provides a process-local cache backend. Entries do not
// survive the process, which makes it suitable for one-off builds that must
// not reuse or pollute the durable cache.
package memory
